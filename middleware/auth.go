package middleware

import (
	"strings"

	"parking-management/constants"
	"parking-management/types"
	authTypes "parking-management/types/auth"
	"parking-management/utils"

	"github.com/gofiber/fiber/v2"
)

// CurrentUserKey is the Locals key the resolved identity is stored under.
const CurrentUserKey = "currentUser"

// IsAuthenticated validates the bearer token and resolves it into a
// CurrentUser. When allowedRoles is non-empty, the user's role must match one
// of them; role matching is exhaustive over the closed role enumeration so an
// unknown role string can never pass a gate.
func IsAuthenticated(allowedRoles ...constants.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			// Validate Bearer Token
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			// Try to get token from cookie as fallback
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		id, uuid, username, role, err := utils.ClaimsToIdentity(claims)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		currentUser := authTypes.CurrentUser{
			ID:       id,
			Uuid:     uuid,
			Username: username,
			Role:     role,
		}

		if len(allowedRoles) > 0 {
			allowed := false
			for _, allowedRole := range allowedRoles {
				switch allowedRole {
				case constants.RoleAdmin, constants.RoleUser:
					if currentUser.Role == allowedRole {
						allowed = true
					}
				}
			}
			if !allowed {
				return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
					Message: "Insufficient permissions",
					Status:  fiber.StatusForbidden,
				})
			}
		}

		c.Locals(CurrentUserKey, currentUser)

		return c.Next()
	}
}

// RequireAuthentication only requires a valid token, any role.
func RequireAuthentication() fiber.Handler {
	return IsAuthenticated()
}

// RequireAdmin restricts a route to admin accounts.
func RequireAdmin() fiber.Handler {
	return IsAuthenticated(constants.RoleAdmin)
}

// GetCurrentUser returns the identity resolved by IsAuthenticated.
func GetCurrentUser(c *fiber.Ctx) (authTypes.CurrentUser, bool) {
	currentUser, ok := c.Locals(CurrentUserKey).(authTypes.CurrentUser)
	return currentUser, ok
}
