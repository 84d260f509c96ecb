package slot

import (
	"time"
)

// ParkingSlot represents one physical parking space. Business logic keys on
// the (floor, label) pair; the surrogate ID only exists for row identity.
type ParkingSlot struct {
	ID     uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Floor  int        `gorm:"not null;uniqueIndex:idx_slots_floor_label" json:"floor"`
	Label  string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_slots_floor_label" json:"label"`
	Status SlotStatus `gorm:"type:varchar(20);not null;default:'free'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
