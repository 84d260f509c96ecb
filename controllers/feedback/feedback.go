package feedback

import (
	"fmt"
	"strconv"

	"parking-management/apperror"
	"parking-management/logger"
	"parking-management/middleware"
	feedbackService "parking-management/services/feedback"
	"parking-management/types"
	feedbackTypes "parking-management/types/feedback"
	"parking-management/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FeedbackController handles feedback submission and reporting endpoints.
type FeedbackController struct {
	DB      *gorm.DB
	Service *feedbackService.FeedbackService
	Logger  *logger.AsyncLogger
}

func NewFeedbackController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *FeedbackController {
	return &FeedbackController{
		DB:      db,
		Service: feedbackService.NewFeedbackService(db),
		Logger:  asyncLogger,
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Error("Feedback operation failed", err)
		message = "Internal server error"
	}
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
	})
}

// parseFilter reads the optional filter query parameters shared by the list
// and manage endpoints.
func parseFilter(c *fiber.Ctx) feedbackTypes.FeedbackFilter {
	var filter feedbackTypes.FeedbackFilter

	if raw := c.Query("floor"); raw != "" {
		if floor, err := strconv.Atoi(raw); err == nil {
			filter.Floor = &floor
		}
	}
	if raw := c.Query("label"); raw != "" {
		label := raw
		filter.Label = &label
	}
	if raw := c.Query("booking_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			bookingID := uint(id)
			filter.BookingID = &bookingID
		}
	}
	if raw := c.Query("min_rating"); raw != "" {
		if rating, err := strconv.Atoi(raw); err == nil {
			filter.MinRating = &rating
		}
	}
	if raw := c.Query("max_rating"); raw != "" {
		if rating, err := strconv.Atoi(raw); err == nil {
			filter.MaxRating = &rating
		}
	}
	if raw := c.Query("from"); raw != "" {
		from := raw
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to := raw
		filter.To = &to
	}

	return filter
}

// Store records feedback for a booking owned by the caller.
func (fc *FeedbackController) Store(c *fiber.Ctx) error {
	var req feedbackTypes.FeedbackCreateRequest
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

	created, err := fc.Service.Create(currentUser, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	fc.Logger.Log(logEntry)

	logger.Success(fmt.Sprintf("Feedback created for booking ID: %d", created.BookingID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Feedback submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    created,
	})
}

// Index lists feedback visible to the caller.
func (fc *FeedbackController) Index(c *fiber.Ctx) error {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	rows, err := fc.Service.List(currentUser, parseFilter(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Feedback fetched successfully",
		Status:  fiber.StatusOK,
		Data:    rows,
	})
}

// Manage is the admin reporting endpoint with full filtering.
func (fc *FeedbackController) Manage(c *fiber.Ctx) error {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid user claims",
			Status:  fiber.StatusUnauthorized,
		})
	}

	rows, err := fc.Service.Manage(currentUser, parseFilter(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Feedback fetched successfully",
		Status:  fiber.StatusOK,
		Data:    rows,
	})
}

// Show fetches the feedback row recorded for one booking.
func (fc *FeedbackController) Show(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseUint(c.Params("bookingId"), 10, 64)
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

	found, err := fc.Service.GetByBooking(currentUser, uint(bookingID))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Feedback fetched successfully",
		Status:  fiber.StatusOK,
		Data:    found,
	})
}
