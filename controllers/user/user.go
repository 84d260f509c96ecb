package user

import (
	"errors"

	"parking-management/database"
	"parking-management/logger"
	"parking-management/middleware"
	userModel "parking-management/models/user"
	"parking-management/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserInfo returns the profile of the authenticated account.
func GetUserInfo(c *fiber.Ctx) error {
	currentUser, ok := middleware.GetCurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid token data",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var account userModel.User
	if err := database.DB.Where("uuid = ?", currentUser.Uuid).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found", err)
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "User not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Error fetching user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Error fetching user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	userInfo := map[string]interface{}{
		"uuid":       account.Uuid,
		"username":   account.Username,
		"email":      account.Email,
		"role":       account.Role,
		"created_at": account.CreatedAt.Format("2006-01-02 15:04:05"),
		"updated_at": account.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	logger.Success("User fetched successfully")
	return c.JSON(types.ApiResponse{
		Message: "User fetched successfully",
		Status:  fiber.StatusOK,
		Data:    userInfo,
	})
}
