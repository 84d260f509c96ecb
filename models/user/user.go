package user

import (
	"time"

	"parking-management/constants"
)

// User model for locally registered accounts. The password column holds a
// bcrypt hash and is never serialized into API responses.
type User struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid     string         `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Username string         `gorm:"type:varchar(255);not null;unique" json:"username"`
	Email    string         `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password string         `gorm:"type:varchar(255);not null" json:"-"`
	Role     constants.Role `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
