package slot

import (
	"fmt"

	slotModel "parking-management/models/slot"
	"parking-management/types"
)

// SlotRequest identifies a slot by natural key and optionally carries a
// target status. Used for create, status update and bulk operations.
type SlotRequest struct {
	Floor  int    `json:"floor"`
	Label  string `json:"label" validate:"required,min=1,max=50"`
	Status string `json:"status" validate:"omitempty,max=20"`
}

func (r SlotRequest) Validate() string {
	if msg := types.ValidateStruct(r); msg != "" {
		return msg
	}
	if r.Status != "" && !slotModel.SlotStatus(r.Status).IsValid() {
		return fmt.Sprintf("invalid slot status %q", r.Status)
	}
	return ""
}

// SlotStatusOrFree resolves the requested status, defaulting to free.
func (r SlotRequest) SlotStatusOrFree() slotModel.SlotStatus {
	if r.Status == "" {
		return slotModel.SlotStatusFree
	}
	return slotModel.SlotStatus(r.Status)
}

// BulkSlotRequest carries a batch of slots for bulk create/update.
type BulkSlotRequest struct {
	Slots []SlotRequest `json:"slots" validate:"required,min=1,dive"`
}

func (r BulkSlotRequest) Validate() string {
	if len(r.Slots) == 0 {
		return "slots list cannot be empty"
	}
	for i, s := range r.Slots {
		if msg := s.Validate(); msg != "" {
			return fmt.Sprintf("slot %d: %s", i, msg)
		}
	}
	return ""
}

// MaintenanceRequest selects slots for a maintenance toggle. Nil filters
// match every slot.
type MaintenanceRequest struct {
	Floor       *int    `json:"floor,omitempty"`
	Label       *string `json:"label,omitempty"`
	Maintenance bool    `json:"maintenance"`
}
