// Package authz is the sole authorization gate for the complaint lifecycle.
// Every decision is a pure function of an explicit Principal and the record
// it targets — nothing is read from ambient state.
package authz

import "complaintdesk/backend/internal/models"

// Roles carried by the identity provider's role claim. The set is closed.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Principal is an authenticated actor: a stable identifier plus a role.
type Principal struct {
	ID   string
	Role string
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleAdmin
}

// updatableFields are the only complaint fields an admin review may touch.
var updatableFields = map[string]bool{
	"status":     true,
	"admin_note": true,
}

// CanCreate: only students file complaints. The created record's owner is
// forced to the principal's ID server-side, never trusted from the client.
func CanCreate(p Principal) bool {
	return p.Role == RoleStudent
}

// CanRead: admins read everything; students read only their own complaints.
func CanRead(p Principal, c *models.Complaint) bool {
	return p.Role == RoleAdmin || p.ID == c.StudentID
}

// CanUpdate: admins only, and only when the patch is confined to status and
// admin_note. Any other field in the raw patch makes the whole request an
// authorization failure, regardless of role.
func CanUpdate(p Principal, c *models.Complaint, patchFields []string) bool {
	if p.Role != RoleAdmin {
		return false
	}
	for _, f := range patchFields {
		if !updatableFields[f] {
			return false
		}
	}
	return true
}

// CanDelete: admins only.
func CanDelete(p Principal, c *models.Complaint) bool {
	return p.Role == RoleAdmin
}
