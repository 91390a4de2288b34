// Package access implements the ownership-based access control policy.
// It is a pure decision layer: no storage access, no side effects.
// Services consult it before every mutation and refuse with a typed
// error instead of silently filtering rows.
package access

import "todokeeper/internal/models"

// Operation names the action being authorized.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Policy decides whether an identity may act on a resource.
//
// AllowAdminOnAdmin gates admin operations targeting another admin's
// account (unlock, password reset, role toggle, delete). The source
// system was inconsistent here, so the behavior is an explicit flag
// rather than an accident; it defaults to off.
type Policy struct {
	AllowAdminOnAdmin bool
}

// NewPolicy returns a Policy with the admin-on-admin override disabled.
func NewPolicy() *Policy {
	return &Policy{}
}

// CanAccess reports whether identity may perform op on a resource owned
// by ownerID. Admins may act on anything; everyone else only on their
// own resources. The op parameter is carried for audit symmetry; the
// decision is currently the same for read, update, and delete.
func (p *Policy) CanAccess(identity models.Identity, ownerID string, op Operation) bool {
	if identity.IsAdmin {
		return true
	}
	return identity.ID == ownerID
}

// CanAdminister reports whether actor may run an administrative
// operation against target's account. Self-service is always allowed;
// acting on another admin requires the AllowAdminOnAdmin flag.
func (p *Policy) CanAdminister(actor models.Identity, target *models.Account) bool {
	if actor.ID == target.ID {
		return true
	}
	if !actor.IsAdmin {
		return false
	}
	if target.IsAdmin && !p.AllowAdminOnAdmin {
		return false
	}
	return true
}
