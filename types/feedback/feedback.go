package feedback

import (
	"parking-management/types"
)

// FeedbackCreateRequest records a rating against an owned booking. Rating
// bounds are enforced again by the service before any write.
type FeedbackCreateRequest struct {
	BookingID uint    `json:"booking_id" validate:"required"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

func (r FeedbackCreateRequest) Validate() string {
	return types.ValidateStruct(r)
}

// FeedbackFilter narrows feedback listings. All fields are optional; the
// admin manage variant additionally honours the rating and date bounds.
type FeedbackFilter struct {
	Floor     *int    `json:"floor,omitempty"`
	Label     *string `json:"label,omitempty"`
	BookingID *uint   `json:"booking_id,omitempty"`
	MinRating *int    `json:"min_rating,omitempty"`
	MaxRating *int    `json:"max_rating,omitempty"`
	From      *string `json:"from,omitempty"`
	To        *string `json:"to,omitempty"`
}
