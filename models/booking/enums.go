package booking

// BookingStatus is the lifecycle state of a booking. Active is the initial
// state; Completed and Cancelled are terminal.
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further transitions are allowed.
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCompleted || bs == BookingStatusCancelled
}

// GetAllBookingStatuses returns all valid booking statuses.
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusActive,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}
