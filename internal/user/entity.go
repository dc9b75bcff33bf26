// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/pitchside/internal/access"
)

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	Name               string     `db:"name"`
	Role               string     `db:"role"`
	Tier               string     `db:"tier"`
	SubscriptionStatus string     `db:"subscription_status"`
	TokenVersion       int        `db:"token_version"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) AccessTier() access.Tier {
	return access.ParseTier(u.Tier)
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TierFree    = string(access.TierFree)
	TierPro     = string(access.TierPro)
	TierPremium = string(access.TierPremium)
)

const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)
