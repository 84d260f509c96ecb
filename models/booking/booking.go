package booking

import (
	"time"

	userModel "parking-management/models/user"
)

// Booking represents a user's claim on a parking slot. The slot is referenced
// by its (floor, label) natural key stored as a value pair rather than a
// foreign key to the slot's surrogate id; a stricter schema would use a proper
// FK and guard slot deletion, this mirrors how the product behaves today.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship
	UserID uint           `gorm:"not null;index" json:"user_id"`
	User   userModel.User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Floor int    `gorm:"not null" json:"floor"`
	Label string `gorm:"type:varchar(50);not null" json:"label"`

	Status    BookingStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartTime time.Time     `gorm:"not null" json:"start_time"`
	EndTime   *time.Time    `json:"end_time,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
