package models

import "time"

// Review is a score left by a user on a housing.
type Review struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	HousingID int64           `json:"housingId"`
	Score     int             `json:"score"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *UserSummary    `json:"user,omitempty"`
	Housing   *HousingSummary `json:"housing,omitempty"`
}

// OwnerOf returns the author.
func (r *Review) OwnerOf() int64 {
	return r.UserID
}

// ReviewInput carries a review to be created.
type ReviewInput struct {
	UserID    int64
	HousingID int64
	Score     int
	Comment   string
}

// ReviewPatch is a partial update of score and comment.
type ReviewPatch struct {
	Score   *int
	Comment *string
}
