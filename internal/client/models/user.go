// Package models defines the client-side projections of the Lab Journal
// domain resources. All entities are owned by the remote service; the client
// only ever holds transient, possibly stale copies.
package models

// Role is the laboratory role assigned to a user account.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleModerator       Role = "moderator"
	RoleMentor          Role = "mentor"
	RoleLeader          Role = "leader"
	RoleSeniorScientist Role = "senior_scientist"
	RoleJuniorScientist Role = "junior_scientist"
	RoleAssistant       Role = "assistant"
)

// User is the profile projection returned by the service. ID and DateJoined
// are assigned server-side and never change; profile fields are patched via
// the gateway.
type User struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	FullName         string `json:"full_name"`
	Role             Role   `json:"role"`
	Department       string `json:"department"`
	Position         string `json:"position"`
	Phone            string `json:"phone"`
	Avatar           string `json:"avatar,omitempty"`
	Bio              string `json:"bio"`
	IsVerified       bool   `json:"is_verified"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
	DateJoined       string `json:"date_joined"`
}

// UserUpdate is a partial profile patch. Nil fields are left untouched.
type UserUpdate struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// ApplyTo merges the non-nil fields of the patch into u.
func (p UserUpdate) ApplyTo(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}

// UserStats is the aggregate returned by /api/users/stats/.
type UserStats struct {
	Total      int            `json:"total"`
	Verified   int            `json:"verified"`
	ByRole     map[string]int `json:"by_role"`
	ByDept     map[string]int `json:"by_department"`
	NewThisMon int            `json:"new_this_month"`
}
