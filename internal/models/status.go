package models

import (
	"time"

	"github.com/google/uuid"
)

type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  Timestamp `json:"timestamp" bson:"timestamp"`
}

type StatusCheckCreate struct {
	ClientName string `json:"client_name" validate:"required"`
}

func (sc StatusCheckCreate) Validate() error {
	return validateBody(sc)
}

func NewStatusCheck(sc StatusCheckCreate, now time.Time) StatusCheck {
	return StatusCheck{
		ID:         uuid.NewString(),
		ClientName: sc.ClientName,
		Timestamp:  NewTimestamp(now),
	}
}
