// FILE: internal/entity/review_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is unique per (reviewer, reviewee, travel). Both sides must have been
// participants of a COMPLETED plan.
type Review struct {
	Id         uuid.UUID
	ReviewerId uuid.UUID
	RevieweeId uuid.UUID
	TravelId   uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
