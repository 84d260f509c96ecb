package slot

import (
	"fmt"
	"strconv"

	"parking-management/apperror"
	"parking-management/logger"
	slotService "parking-management/services/slot"
	"parking-management/types"
	slotTypes "parking-management/types/slot"
	"parking-management/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SlotController handles the admin-facing slot inventory endpoints plus the
// authenticated slot listing.
type SlotController struct {
	DB      *gorm.DB
	Service *slotService.SlotService
	Logger  *logger.AsyncLogger
}

func NewSlotController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *SlotController {
	return &SlotController{
		DB:      db,
		Service: slotService.NewSlotService(db),
		Logger:  asyncLogger,
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Slot operation failed", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
	})
}

// Index lists slots, bounded by the optional limit query parameter.
func (sc *SlotController) Index(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	slots, err := sc.Service.List(limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Parking slots fetched successfully",
		Status:  fiber.StatusOK,
		Data:    slots,
	})
}

// Store creates one slot from its natural key.
func (sc *SlotController) Store(c *fiber.Ctx) error {
	var req slotTypes.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	created, err := sc.Service.Create(req.Floor, req.Label, req.SlotStatusOrFree())
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Parking slot created: floor %d label %s", created.Floor, created.Label))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: fmt.Sprintf("Parking slot with floor '%d' and label '%s' created successfully", created.Floor, created.Label),
		Status:  fiber.StatusCreated,
		Data:    created,
	})
}

// Update writes a new status to one slot.
func (sc *SlotController) Update(c *fiber.Ctx) error {
	var req slotTypes.SlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	updated, err := sc.Service.UpdateStatus(req.Floor, req.Label, req.SlotStatusOrFree())
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("Parking slot with floor '%d' and label '%s' is updated to '%s' status", updated.Floor, updated.Label, updated.Status),
		Status:  fiber.StatusOK,
		Data:    updated,
	})
}

// Destroy hard-deletes one slot addressed by path parameters.
func (sc *SlotController) Destroy(c *fiber.Ctx) error {
	floor, err := strconv.Atoi(c.Params("floor"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Floor must be an integer",
			Status:  fiber.StatusBadRequest,
		})
	}
	label := c.Params("label")

	if err := sc.Service.Delete(floor, label); err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("Parking slot with floor '%d' and label '%s' deleted successfully", floor, label),
		Status:  fiber.StatusOK,
	})
}

// BulkStore creates a batch of slots, reporting per-key conflicts.
func (sc *SlotController) BulkStore(c *fiber.Ctx) error {
	var req slotTypes.BulkSlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	result, err := sc.Service.BulkCreate(req.Slots)
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Bulk slot creation: %d created, %d skipped", result.Created, result.Skipped))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bulk creation completed",
		Status:  fiber.StatusOK,
		Data:    result,
	})
}

// BulkUpdate writes statuses for a batch of slots, reporting missing keys.
func (sc *SlotController) BulkUpdate(c *fiber.Ctx) error {
	var req slotTypes.BulkSlotRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	result, err := sc.Service.BulkUpdate(req.Slots)
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bulk update completed",
		Status:  fiber.StatusOK,
		Data:    result,
	})
}

// SetMaintenance toggles maintenance mode for every slot matching the filter.
func (sc *SlotController) SetMaintenance(c *fiber.Ctx) error {
	var req slotTypes.MaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	result, err := sc.Service.SetMaintenance(req.Floor, req.Label, req.Maintenance)
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.Logger.Log(logEntry)

	mode := "enabled"
	if !req.Maintenance {
		mode = "disabled"
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: fmt.Sprintf("Maintenance mode %s for %d slot(s)", mode, result.Updated),
		Status:  fiber.StatusOK,
		Data:    result,
	})
}
