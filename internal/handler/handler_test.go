package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"lacongolaise/review-service/internal/models"
	"lacongolaise/review-service/internal/services"
)

// memoryReviews orders reviews by interpreting the Mongo sort keys.
type memoryReviews struct {
	mu       sync.Mutex
	reviews  []models.Review
	err      error
	listCall int
}

func (m *memoryReviews) Create(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memoryReviews) List(_ context.Context, order models.SortOrder) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCall++
	if m.err != nil {
		return nil, m.err
	}

	// seq stands in for the ObjectID, which grows with insertion order.
	seq := make([]int, len(m.reviews))
	for i := range seq {
		seq[i] = i
	}
	keys := order.Keys()
	sort.SliceStable(seq, func(i, j int) bool {
		a, b := m.reviews[seq[i]], m.reviews[seq[j]]
		for _, k := range keys {
			dir := k.Value.(int)
			var cmp int
			switch k.Key {
			case "rating":
				cmp = a.Rating - b.Rating
			case "created_at":
				cmp = a.CreatedAt.Compare(b.CreatedAt.Time)
			case "_id":
				cmp = seq[i] - seq[j]
			}
			if cmp != 0 {
				return cmp*dir < 0
			}
		}
		return false
	})

	out := make([]models.Review, 0, len(seq))
	for _, idx := range seq {
		out = append(out, m.reviews[idx])
	}
	return out, nil
}

func (m *memoryReviews) Stats(_ context.Context) (float64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, 0, m.err
	}
	if len(m.reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, r := range m.reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(m.reviews)), int64(len(m.reviews)), nil
}

type memoryStatus struct {
	checks []models.StatusCheck
}

func (m *memoryStatus) Create(_ context.Context, check *models.StatusCheck) error {
	m.checks = append(m.checks, *check)
	return nil
}

func (m *memoryStatus) List(_ context.Context) ([]models.StatusCheck, error) {
	return append([]models.StatusCheck{}, m.checks...), nil
}

func newTestRouter(reviews *memoryReviews, status *memoryStatus) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(
		r.Group("/api"),
		NewReviewHandler(services.NewReviewService(reviews, nil, time.Minute)),
		NewStatusHandler(services.NewStatusService(status)),
	)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type validationResponse struct {
	Detail []models.FieldError `json:"detail"`
}

func TestRoot(t *testing.T) {
	r := newTestRouter(&memoryReviews{err: errors.New("store down")}, &memoryStatus{})

	w := doJSON(t, r, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"La Congolaise API"}`, w.Body.String())
}

func TestCreateReview(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})

	w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"Joël","rating":5,"comment":"Le saka-saka était parfait"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Joël", got["name"])
	require.Equal(t, float64(5), got["rating"])
	require.Equal(t, "Le saka-saka était parfait", got["comment"])
	require.NotEmpty(t, got["id"])
	require.NotContains(t, got, "_id")

	createdAt, err := time.Parse(time.RFC3339Nano, got["created_at"].(string))
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), createdAt, time.Minute)
	require.Len(t, store.reviews, 1)
}

func TestCreateReview_WithoutComment(t *testing.T) {
	r := newTestRouter(&memoryReviews{}, &memoryStatus{})

	w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"Kofi","rating":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Contains(t, got, "comment")
	require.Nil(t, got["comment"])
}

func TestCreateReview_ValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"rating zero", `{"name":"A","rating":0}`, "rating"},
		{"rating six", `{"name":"A","rating":6}`, "rating"},
		{"rating missing", `{"name":"A"}`, "rating"},
		{"empty name", `{"name":"","rating":3}`, "name"},
		{"long name", `{"name":"` + strings.Repeat("n", 101) + `","rating":3}`, "name"},
		{"long comment", `{"name":"A","rating":3,"comment":"` + strings.Repeat("c", 501) + `"}`, "comment"},
		{"rating as string", `{"name":"A","rating":"five"}`, "rating"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memoryReviews{}
			r := newTestRouter(store, &memoryStatus{})

			w := doJSON(t, r, http.MethodPost, "/api/reviews", tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp validationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Detail)
			require.Equal(t, []string{"body", tc.field}, resp.Detail[0].Loc)
			require.Empty(t, store.reviews)
		})
	}
}

func TestCreateReview_MalformedBody(t *testing.T) {
	r := newTestRouter(&memoryReviews{}, &memoryStatus{})

	for _, body := range []string{"", "{", "[1,2]"} {
		w := doJSON(t, r, http.MethodPost, "/api/reviews", body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
	}
}

func TestCreateReview_IntegralFloatRating(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})

	w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"A","rating":4.0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, float64(4), got["rating"])
	require.Len(t, store.reviews, 1)
	require.Equal(t, 4, store.reviews[0].Rating)
}

func TestCreateReview_ReportsEveryInvalidField(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})

	w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"","rating":"five"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Detail, 2)

	locs := [][]string{resp.Detail[0].Loc, resp.Detail[1].Loc}
	require.ElementsMatch(t, [][]string{{"body", "name"}, {"body", "rating"}}, locs)
	require.Empty(t, store.reviews)
}

func TestCreateReview_StoreFailure(t *testing.T) {
	r := newTestRouter(&memoryReviews{err: errors.New("no reachable servers")}, &memoryStatus{})

	w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"A","rating":3}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "no reachable servers")
}

func seedRatings(t *testing.T, r http.Handler, store *memoryReviews, ratings []int) {
	t.Helper()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, rating := range ratings {
		w := doJSON(t, r, http.MethodPost, "/api/reviews", `{"name":"Guest","rating":`+strconv.Itoa(rating)+`}`)
		require.Equal(t, http.StatusOK, w.Code)
		// Spread creation times so ordering is deterministic.
		store.reviews[i].CreatedAt = models.NewTimestamp(base.Add(time.Duration(i) * time.Minute))
	}
}

func listRatings(t *testing.T, r http.Handler, query string) []models.Review {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/reviews"+query, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	return reviews
}

func TestGetReviews_Sorting(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})
	seedRatings(t, r, store, []int{5, 4, 3, 5, 2})
	firstFive, secondFive := store.reviews[0].ID, store.reviews[3].ID

	byRatingDesc := listRatings(t, r, "?sort=rating_desc")
	ratings := make([]int, 0, len(byRatingDesc))
	for _, rv := range byRatingDesc {
		ratings = append(ratings, rv.Rating)
	}
	require.Equal(t, []int{5, 5, 4, 3, 2}, ratings)
	require.Equal(t, secondFive, byRatingDesc[0].ID)
	require.Equal(t, firstFive, byRatingDesc[1].ID)

	byRatingAsc := listRatings(t, r, "?sort=rating_asc")
	require.Equal(t, 2, byRatingAsc[0].Rating)
	require.Equal(t, secondFive, byRatingAsc[3].ID)

	newest := listRatings(t, r, "")
	require.Equal(t, store.reviews[4].ID, newest[0].ID)

	oldest := listRatings(t, r, "?sort=date_asc")
	require.Equal(t, store.reviews[0].ID, oldest[0].ID)
}

func TestGetReviews_SameMillisecondFallsBackToInsertionOrder(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})
	seedRatings(t, r, store, []int{4, 4, 4})
	same := models.NewTimestamp(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	for i := range store.reviews {
		store.reviews[i].CreatedAt = same
	}

	newest := listRatings(t, r, "")
	require.Equal(t, store.reviews[2].ID, newest[0].ID)
	require.Equal(t, store.reviews[0].ID, newest[2].ID)

	oldest := listRatings(t, r, "?sort=date_asc")
	require.Equal(t, store.reviews[0].ID, oldest[0].ID)
	require.Equal(t, store.reviews[2].ID, oldest[2].ID)

	byRating := listRatings(t, r, "?sort=rating_desc")
	require.Equal(t, store.reviews[2].ID, byRating[0].ID)
}

func TestGetReviews_UnknownSort(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})

	for _, q := range []string{"?sort=popular", "?sort="} {
		w := doJSON(t, r, http.MethodGet, "/api/reviews"+q, "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, q)

		var resp validationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, []string{"query", "sort"}, resp.Detail[0].Loc)
	}
	require.Zero(t, store.listCall)
}

func TestGetReviews_Empty(t *testing.T) {
	r := newTestRouter(&memoryReviews{}, &memoryStatus{})

	w := doJSON(t, r, http.MethodGet, "/api/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestGetReviewStats(t *testing.T) {
	store := &memoryReviews{}
	r := newTestRouter(store, &memoryStatus{})

	w := doJSON(t, r, http.MethodGet, "/api/reviews/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"average_rating":0,"total_reviews":0}`, w.Body.String())

	seedRatings(t, r, store, []int{5, 4, 3, 5, 2})

	w = doJSON(t, r, http.MethodGet, "/api/reviews/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"average_rating":3.8,"total_reviews":5}`, w.Body.String())
}

func TestStatusChecks(t *testing.T) {
	status := &memoryStatus{}
	r := newTestRouter(&memoryReviews{}, status)

	w := doJSON(t, r, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/status", `{"client_name":"smoke-test"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.StatusCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "smoke-test", created.ClientName)
	require.NotEmpty(t, created.ID)
	require.False(t, created.Timestamp.IsZero())

	w = doJSON(t, r, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.StatusCheck
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)

	w = doJSON(t, r, http.MethodPost, "/api/status", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, status.checks, 1)
}
