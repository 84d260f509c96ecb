package booking

import (
	"parking-management/types"
)

// BookingCreateRequest claims a slot by its (floor, label) natural key.
type BookingCreateRequest struct {
	Floor int    `json:"floor"`
	Label string `json:"label" validate:"required,min=1,max=50"`
}

func (r BookingCreateRequest) Validate() string {
	return types.ValidateStruct(r)
}
