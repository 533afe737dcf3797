package domain

import "time"

// Timestamps holds the creation and last mutation times of a record.
type Timestamps struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
