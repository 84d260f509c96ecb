package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"parking-management/constants"
	"parking-management/logger"
	userModel "parking-management/models/user"
	"parking-management/types"
	authTypes "parking-management/types/auth"
	"parking-management/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthController handles account registration and credential login.
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a new local account.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		logger.Error(validationErr, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	role, _ := constants.ParseRole(req.Role)

	// Duplicate username or email is a conflict, not a validation failure.
	var existing userModel.User
	err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Username or email already registered",
			Status:  fiber.StatusConflict,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := userModel.User{
		Uuid:     uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     role,
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.Logger.Log(logEntry)

	logger.Success("User registered successfully: " + newUser.Username)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "User created successfully",
		Status:  fiber.StatusCreated,
		Data: map[string]interface{}{
			"uuid":     newUser.Uuid,
			"username": newUser.Username,
			"email":    newUser.Email,
			"role":     newUser.Role,
		},
	})
}

// Login verifies credentials and issues a bearer token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if validationErr := req.Validate(); validationErr != "" {
		logger.Error(validationErr, nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: validationErr,
			Status:  fiber.StatusBadRequest,
		})
	}

	var account userModel.User
	if err := h.DB.Where("username = ?", req.Username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Database error during login", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !utils.CheckPassword(account.Password, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid credentials",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.GenerateToken(&account)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to generate token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, 8*60*60) // 8 hours

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.Logger.Log(logEntry)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User logged in successfully: " + account.Username + " at " + currentTime)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
	})
}

// LogOut clears the access cookie.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1) // Expire immediately

	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
	})
}
