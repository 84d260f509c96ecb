package slot

import (
	"errors"
	"fmt"

	"parking-management/apperror"
	slotModel "parking-management/models/slot"
	"parking-management/services"
	slotTypes "parking-management/types/slot"

	"gorm.io/gorm"
)

const defaultListLimit = 100

// SlotService owns the parking slot inventory. Status transitions driven by
// bookings belong to the booking service; everything here is admin-driven.
type SlotService struct {
	DB *gorm.DB
}

func NewSlotService(db *gorm.DB) *SlotService {
	return &SlotService{DB: db}
}

// BulkCreateResult reports the outcome of a bulk creation batch.
type BulkCreateResult struct {
	Created      int      `json:"created"`
	Skipped      int      `json:"skipped"`
	SkippedSlots []string `json:"skipped_slots"`
}

// BulkUpdateResult reports the outcome of a bulk status update batch.
type BulkUpdateResult struct {
	Updated       int      `json:"updated"`
	NotFound      int      `json:"not_found"`
	NotFoundSlots []string `json:"not_found_slots"`
}

// MaintenanceResult reports which slots a maintenance toggle touched.
type MaintenanceResult struct {
	Updated      int      `json:"updated"`
	UpdatedSlots []string `json:"updated_slots"`
}

func slotKey(floor int, label string) string {
	return fmt.Sprintf("Floor %d, Label %s", floor, label)
}

// Create registers a new slot under its (floor, label) natural key.
func (s *SlotService) Create(floor int, label string, status slotModel.SlotStatus) (*slotModel.ParkingSlot, error) {
	if floor < 0 {
		return nil, apperror.Validationf("Floor number cannot be negative")
	}
	if !status.IsValid() {
		return nil, apperror.Validationf("invalid slot status %q", status)
	}

	var existing slotModel.ParkingSlot
	err := s.DB.Where("floor = ? AND label = ?", floor, label).First(&existing).Error
	if err == nil {
		return nil, apperror.Conflictf("Parking slot with floor '%d' and label '%s' already exists", floor, label)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := slotModel.ParkingSlot{Floor: floor, Label: label, Status: status}
	if err := s.DB.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// Get fetches a slot by natural key.
func (s *SlotService) Get(floor int, label string) (*slotModel.ParkingSlot, error) {
	var found slotModel.ParkingSlot
	if err := s.DB.Where("floor = ? AND label = ?", floor, label).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Parking slot with floor '%d' and label '%s' not found", floor, label)
		}
		return nil, err
	}
	return &found, nil
}

// List returns up to limit slots.
func (s *SlotService) List(limit int) ([]slotModel.ParkingSlot, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var slots []slotModel.ParkingSlot
	if err := s.DB.Limit(limit).Find(&slots).Error; err != nil {
		return nil, err
	}
	if services.EmptyResult(len(slots)) {
		return nil, apperror.NotFoundf("No parking slots found")
	}
	return slots, nil
}

// UpdateStatus writes a new status to a slot. Writing the status the slot
// already has is rejected, not silently accepted.
func (s *SlotService) UpdateStatus(floor int, label string, newStatus slotModel.SlotStatus) (*slotModel.ParkingSlot, error) {
	if !newStatus.IsValid() {
		return nil, apperror.Validationf("invalid slot status %q", newStatus)
	}

	var current slotModel.ParkingSlot
	if err := s.DB.Where("floor = ? AND label = ?", floor, label).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("Parking slot with floor '%d' and label '%s' not found", floor, label)
		}
		return nil, err
	}

	if current.Status == newStatus {
		return nil, apperror.Validationf("Parking slot with floor '%d' and label '%s' is already in '%s' status", floor, label, newStatus)
	}

	current.Status = newStatus
	if err := s.DB.Save(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}

// Delete removes a slot row. Bookings keep their (floor, label) value pair,
// so history survives the delete.
func (s *SlotService) Delete(floor int, label string) error {
	result := s.DB.Where("floor = ? AND label = ?", floor, label).Delete(&slotModel.ParkingSlot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFoundf("Parking slot with floor '%d' and label '%s' not found", floor, label)
	}
	return nil
}

// BulkCreate inserts a batch of slots, skipping keys that already exist. The
// existence check is one tuple-IN query inside the same transaction as the
// inserts, so the batch cannot race against itself.
func (s *SlotService) BulkCreate(reqs []slotTypes.SlotRequest) (*BulkCreateResult, error) {
	for _, req := range reqs {
		if req.Floor < 0 {
			return nil, apperror.Validationf("Floor number cannot be negative")
		}
	}

	result := &BulkCreateResult{SkippedSlots: []string{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		seen, err := existingKeys(tx, reqs)
		if err != nil {
			return err
		}

		var newSlots []slotModel.ParkingSlot
		for _, req := range reqs {
			key := slotKey(req.Floor, req.Label)
			if seen[key] {
				result.Skipped++
				result.SkippedSlots = append(result.SkippedSlots, key)
				continue
			}
			seen[key] = true
			newSlots = append(newSlots, slotModel.ParkingSlot{
				Floor:  req.Floor,
				Label:  req.Label,
				Status: req.SlotStatusOrFree(),
			})
		}

		if len(newSlots) > 0 {
			if err := tx.Create(&newSlots).Error; err != nil {
				return err
			}
		}
		result.Created = len(newSlots)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkUpdate writes new statuses for a batch of slots, reporting keys that do
// not exist. Partial success is reported, not fatal.
func (s *SlotService) BulkUpdate(reqs []slotTypes.SlotRequest) (*BulkUpdateResult, error) {
	result := &BulkUpdateResult{NotFoundSlots: []string{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		seen, err := existingKeys(tx, reqs)
		if err != nil {
			return err
		}

		for _, req := range reqs {
			key := slotKey(req.Floor, req.Label)
			if !seen[key] {
				result.NotFound++
				result.NotFoundSlots = append(result.NotFoundSlots, key)
				continue
			}
			err := tx.Model(&slotModel.ParkingSlot{}).
				Where("floor = ? AND label = ?", req.Floor, req.Label).
				Update("status", req.SlotStatusOrFree()).Error
			if err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetMaintenance flips every slot matching the filter into or out of
// maintenance. A nil filter matches the whole inventory.
func (s *SlotService) SetMaintenance(floor *int, label *string, on bool) (*MaintenanceResult, error) {
	target := slotModel.SlotStatusMaintenance
	if !on {
		target = slotModel.SlotStatusFree
	}

	result := &MaintenanceResult{UpdatedSlots: []string{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&slotModel.ParkingSlot{})
		if floor != nil {
			query = query.Where("floor = ?", *floor)
		}
		if label != nil {
			query = query.Where("label = ?", *label)
		}

		var matched []slotModel.ParkingSlot
		if err := query.Find(&matched).Error; err != nil {
			return err
		}
		if len(matched) == 0 {
			return apperror.NotFoundf("No parking slots found matching the criteria")
		}

		ids := make([]uint, 0, len(matched))
		for _, m := range matched {
			ids = append(ids, m.ID)
			result.UpdatedSlots = append(result.UpdatedSlots, slotKey(m.Floor, m.Label))
		}

		err := tx.Model(&slotModel.ParkingSlot{}).
			Where("id IN ?", ids).
			Update("status", target).Error
		if err != nil {
			return err
		}
		result.Updated = len(matched)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// existingKeys runs the single batched existence check shared by the bulk
// operations and returns the set of (floor, label) keys already present.
func existingKeys(tx *gorm.DB, reqs []slotTypes.SlotRequest) (map[string]bool, error) {
	pairs := make([][]interface{}, 0, len(reqs))
	for _, req := range reqs {
		pairs = append(pairs, []interface{}{req.Floor, req.Label})
	}

	var existing []slotModel.ParkingSlot
	if len(pairs) > 0 {
		if err := tx.Where("(floor, label) IN ?", pairs).Find(&existing).Error; err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[slotKey(e.Floor, e.Label)] = true
	}
	return seen, nil
}
