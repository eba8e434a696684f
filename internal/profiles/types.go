package profiles

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the coarse permission level attached to a profile.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// CanManageMedia reports whether the role may access the media library.
func (r Role) CanManageMedia() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// CanViewActivityLogs reports whether the role may read the audit trail.
func (r Role) CanViewActivityLogs() bool {
	return r == RoleSuperadmin
}

// Profile mirrors one row of the hosted profiles table.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Email     string    `bun:"email,notnull" json:"email"`
	Role      Role      `bun:"role,notnull,default:'user'" json:"role"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
