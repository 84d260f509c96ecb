package feedback

import (
	"time"

	bookingModel "parking-management/models/booking"
	userModel "parking-management/models/user"
)

// Feedback is a post-booking rating left by the booking's owner. Rows are
// written once and never updated or deleted.
type Feedback struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID uint           `gorm:"not null;index" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	BookingID uint                 `gorm:"not null;index" json:"booking_id"`
	Booking   bookingModel.Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	Rating  int     `gorm:"not null" json:"rating"`
	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
