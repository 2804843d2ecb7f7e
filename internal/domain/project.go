package domain

// Role is a project-scoped capability level.
type Role string

const (
	RoleOwner  Role = "owner"  // Full control, exactly one per project
	RoleMember Role = "member" // Can edit tasks
	RoleViewer Role = "viewer" // Read-only
)

// IsValid returns true if the role is a known value.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleMember, RoleViewer:
		return true
	default:
		return false
	}
}

// CanEdit returns true if the role may modify project content.
func (r Role) CanEdit() bool {
	return r == RoleOwner || r == RoleMember
}

// Member associates a user with a role inside a project.
type Member struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// Project groups tasks and members under a single owner.
// The owner is always a member with RoleOwner; the server enforces that
// exactly one owner exists, the client must not assume it after concurrent
// edits.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	OwnerID     string   `json:"ownerId"`
	Members     []Member `json:"members,omitempty"`
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	if p.Members != nil {
		c.Members = make([]Member, len(p.Members))
		copy(c.Members, p.Members)
	}
	return &c
}

// MemberRole returns the role of userID, or false if not a member.
func (p *Project) MemberRole(userID string) (Role, bool) {
	for _, m := range p.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// ProjectPatch describes a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// ChangesNothingOn returns true if applying the patch would leave the
// project unchanged.
func (p ProjectPatch) ChangesNothingOn(proj *Project) bool {
	if p.Name != nil && *p.Name != proj.Name {
		return false
	}
	if p.Description != nil && *p.Description != proj.Description {
		return false
	}
	return true
}

// ApplyTo merges the patch into the project in place.
func (p ProjectPatch) ApplyTo(proj *Project) {
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.Description != nil {
		proj.Description = *p.Description
	}
}
