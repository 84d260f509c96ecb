package routes

import (
	"parking-management/controllers/auth"
	"parking-management/controllers/booking"
	"parking-management/controllers/feedback"
	"parking-management/controllers/slot"
	"parking-management/controllers/user"
	"parking-management/logger"
	"parking-management/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	slotController := slot.NewSlotController(db, asyncLogger)
	bookingController := booking.NewBookingController(db, asyncLogger)
	feedbackController := feedback.NewFeedbackController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Parking Management System API",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", user.GetUserInfo)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Parking Slot Routes
	===============================================================================*/
	slotGroup := api.Group("/parking-slots")

	slotGroup.Get("/", middleware.RequireAuthentication(), slotController.Index)

	slotGroup.Post("/", middleware.RequireAdmin(), slotController.Store)
	slotGroup.Put("/", middleware.RequireAdmin(), slotController.Update)
	slotGroup.Post("/bulk", middleware.RequireAdmin(), slotController.BulkStore)
	slotGroup.Put("/bulk", middleware.RequireAdmin(), slotController.BulkUpdate)
	slotGroup.Put("/maintenance", middleware.RequireAdmin(), slotController.SetMaintenance)
	slotGroup.Delete("/:floor/:label", middleware.RequireAdmin(), slotController.Destroy)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings").Use(middleware.RequireAuthentication())

	bookingGroup.Post("/", bookingController.Store)
	bookingGroup.Get("/", bookingController.Index)
	bookingGroup.Put("/:id/cancel", bookingController.Cancel)

	/*=============================================================================
	| Feedback Routes
	===============================================================================*/
	feedbackGroup := api.Group("/feedback").Use(middleware.RequireAuthentication())

	feedbackGroup.Post("/", feedbackController.Store)
	feedbackGroup.Get("/", feedbackController.Index)
	feedbackGroup.Get("/manage", middleware.RequireAdmin(), feedbackController.Manage)
	feedbackGroup.Get("/:bookingId", feedbackController.Show)
}
