package booking

import (
	"errors"
	"time"

	"parking-management/apperror"
	bookingModel "parking-management/models/booking"
	slotModel "parking-management/models/slot"
	"parking-management/services"
	authTypes "parking-management/types/auth"

	"gorm.io/gorm"
)

// BookingService is the only component that mutates a booking together with
// its slot. Both writes always share one transaction: either the booking row
// and the slot status land together or neither does.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// Create claims a free slot for the current user. The free->occupied flip is
// a conditional update whose affected-row count is verified inside the
// transaction, so two concurrent claims on the same slot cannot both win:
// the loser observes zero affected rows and fails with a conflict.
func (s *BookingService) Create(currentUser authTypes.CurrentUser, floor int, label string) (*bookingModel.Booking, error) {
	if currentUser.IsAdmin() {
		return nil, apperror.Forbiddenf("Admins cannot create bookings")
	}

	var created bookingModel.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var claimed slotModel.ParkingSlot
		err := tx.Where("floor = ? AND label = ?", floor, label).First(&claimed).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("Parking slot not found")
			}
			return err
		}

		if !claimed.Status.IsBookable() {
			return apperror.Conflictf("Parking slot is not available")
		}

		// Guarded flip: only succeeds if the slot is still free at write time.
		flip := tx.Model(&slotModel.ParkingSlot{}).
			Where("floor = ? AND label = ? AND status = ?", floor, label, slotModel.SlotStatusFree).
			Update("status", slotModel.SlotStatusOccupied)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return apperror.Conflictf("Parking slot is not available")
		}

		created = bookingModel.Booking{
			UserID:    currentUser.ID,
			Floor:     floor,
			Label:     label,
			Status:    bookingModel.BookingStatusActive,
			StartTime: time.Now(),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns bookings visible to the current user: admins see everything,
// regular users only their own.
func (s *BookingService) List(currentUser authTypes.CurrentUser) ([]bookingModel.Booking, error) {
	query := s.DB.Model(&bookingModel.Booking{})
	if !currentUser.IsAdmin() {
		query = query.Where("user_id = ?", currentUser.ID)
	}

	var bookings []bookingModel.Booking
	if err := query.Order("id").Find(&bookings).Error; err != nil {
		return nil, err
	}
	if services.EmptyResult(len(bookings)) {
		return nil, apperror.NotFoundf("No bookings found")
	}
	return bookings, nil
}

// Cancel terminates an active booking and frees its slot in one transaction.
// Only the owner or an admin may cancel. A booking whose slot has vanished
// indicates corrupted linkage and is surfaced as a server fault.
func (s *BookingService) Cancel(currentUser authTypes.CurrentUser, bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var target bookingModel.Booking
		err := tx.First(&target, bookingID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFoundf("Booking not found")
			}
			return err
		}

		if target.UserID != currentUser.ID && !currentUser.IsAdmin() {
			return apperror.Forbiddenf("Not authorized to cancel this booking")
		}

		if target.Status != bookingModel.BookingStatusActive {
			return apperror.Conflictf("Booking is not active")
		}

		now := time.Now()
		// Guarded transition: a concurrent cancel loses here instead of
		// double-writing the terminal state.
		terminate := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", bookingID, bookingModel.BookingStatusActive).
			Updates(map[string]interface{}{
				"status":   bookingModel.BookingStatusCancelled,
				"end_time": &now,
			})
		if terminate.Error != nil {
			return terminate.Error
		}
		if terminate.RowsAffected == 0 {
			return apperror.Conflictf("Booking is not active")
		}

		var claimed slotModel.ParkingSlot
		err = tx.Where("floor = ? AND label = ?", target.Floor, target.Label).First(&claimed).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Internalf("Booking %d references a parking slot that no longer exists", bookingID)
			}
			return err
		}

		return tx.Model(&claimed).Update("status", slotModel.SlotStatusFree).Error
	})
}
