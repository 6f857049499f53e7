package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// SortOrder selects the ordering of the review list.
type SortOrder string

const (
	SortDateDesc   SortOrder = "date_desc"
	SortDateAsc    SortOrder = "date_asc"
	SortRatingDesc SortOrder = "rating_desc"
	SortRatingAsc  SortOrder = "rating_asc"

	DefaultSortOrder = SortDateDesc
)

// sortKeys is the only source of valid sort orders. Rating orders break ties
// newest first. created_at has millisecond precision, so _id (insertion order)
// settles reviews created within the same millisecond.
var sortKeys = map[SortOrder]bson.D{
	SortDateDesc:   {{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	SortDateAsc:    {{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	SortRatingDesc: {{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	SortRatingAsc:  {{Key: "rating", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
}

var sortOrders = []SortOrder{SortDateDesc, SortDateAsc, SortRatingDesc, SortRatingAsc}

// ParseSortOrder accepts exactly one of the known values.
func ParseSortOrder(raw string) (SortOrder, error) {
	order := SortOrder(raw)
	if _, ok := sortKeys[order]; !ok {
		names := make([]string, 0, len(sortOrders))
		for _, o := range sortOrders {
			names = append(names, "'"+string(o)+"'")
		}
		return "", NewValidationError(
			[]string{"query", "sort"},
			"enum",
			"sort must be one of "+strings.Join(names, ", "),
		)
	}
	return order, nil
}

// Keys returns the Mongo sort document for the order.
func (s SortOrder) Keys() bson.D {
	return sortKeys[s]
}
