package slot

// SlotStatus is the lifecycle state of a parking slot.
type SlotStatus string

const (
	SlotStatusFree        SlotStatus = "free"
	SlotStatusOccupied    SlotStatus = "occupied"
	SlotStatusReserved    SlotStatus = "reserved"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

func (ss SlotStatus) String() string {
	return string(ss)
}

func (ss SlotStatus) IsValid() bool {
	switch ss {
	case SlotStatusFree, SlotStatusOccupied, SlotStatusReserved, SlotStatusMaintenance:
		return true
	default:
		return false
	}
}

// IsBookable reports whether the booking engine may claim a slot in this state.
func (ss SlotStatus) IsBookable() bool {
	return ss == SlotStatusFree
}

// GetAllSlotStatuses returns all valid slot statuses.
func GetAllSlotStatuses() []SlotStatus {
	return []SlotStatus{
		SlotStatusFree,
		SlotStatusOccupied,
		SlotStatusReserved,
		SlotStatusMaintenance,
	}
}
