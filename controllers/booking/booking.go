package booking

import (
	"fmt"
	"strconv"

	"parking-management/apperror"
	"parking-management/logger"
	"parking-management/middleware"
	bookingService "parking-management/services/booking"
	"parking-management/types"
	bookingTypes "parking-management/types/booking"
	"parking-management/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB      *gorm.DB
	Service *bookingService.BookingService
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		DB:      db,
		Service: bookingService.NewBookingService(db),
		Logger:  asyncLogger,
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Booking operation failed", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
	})
}

// Store creates a new booking against a free slot.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
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

	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	created, err := bc.Service.Create(currentUser, req.Floor, req.Label)
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", created.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Booking created successfully",
		Status:  fiber.StatusCreated,
		Data:    created,
	})
}

// Index lists bookings scoped to the caller's role.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	bookings, err := bc.Service.List(currentUser)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bookings fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bookings,
	})
}

// Cancel terminates an active booking and frees its slot.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Booking id must be an integer",
			Status:  fiber.StatusBadRequest,
		})
	}

	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if err := bc.Service.Cancel(currentUser, uint(bookingID)); err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Booking %d cancelled successfully", bookingID))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking cancelled successfully",
		Status:  fiber.StatusOK,
	})
}
