package session

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Actor roles. Stored as strings for easy persistence.
const (
	RoleGuest    = "guest"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Permissions granted to guest sessions. Authenticated sessions carry
// whatever permission set the caller assigns.
const (
	PermCatalogRead = "catalog:read"
	PermCartWrite   = "cart:write"
)

// User is the actor bound to a session.
// A guest user has Role == RoleGuest, IsGuest == true, and the restricted
// permission set from GuestPermissions.
type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	IsGuest     bool      `json:"isGuest"`
}

// GuestPermissions returns the restricted permission set minted into
// guest sessions.
func GuestPermissions() []string {
	return []string{PermCatalogRead, PermCartWrite}
}

// HasPermission reports whether the user carries the given permission.
func (u User) HasPermission(perm string) bool {
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// UserUpdate is a partial update merged into a session's user.
// Nil fields are left untouched; ID and Role are deliberately not
// updatable through this path.
type UserUpdate struct {
	Username    *string
	Email       *string
	Permissions *[]string
}

// userDTO tolerates the divergent field spellings found in legacy
// persisted blobs ("name" vs "username").
type userDTO struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsGuest     bool     `json:"isGuest"`
}

// UnmarshalJSON accepts both the canonical and legacy user shapes.
// Legacy guest IDs ("guest_17123...") are not UUIDs and decode to uuid.Nil,
// which is fine: guests are identified by the session, not the user ID.
func (u *User) UnmarshalJSON(data []byte) error {
	var dto userDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	id, err := uuid.Parse(dto.ID)
	if err != nil {
		id = uuid.Nil
	}

	username := dto.Username
	if username == "" {
		username = dto.Name
	}

	role := dto.Role
	if role == "" && dto.IsGuest {
		role = RoleGuest
	}

	*u = User{
		ID:          id,
		Username:    username,
		Email:       dto.Email,
		Role:        role,
		Permissions: dto.Permissions,
		IsGuest:     dto.IsGuest,
	}
	return nil
}
