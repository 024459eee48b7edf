package auth

import (
	"context"
	"errors"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Principal is the authenticated actor making a request. A zero Principal
// means the request carried no (valid) credentials.
type Principal struct {
	ID     uint
	Email  string
	Role   Role
	ShopID *string
}

// Requirement describes what a privileged operation demands: a minimum
// role, and optionally the shop the target resource belongs to.
type Requirement struct {
	Role   Role
	ShopID string
}

var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Require is the single capability check applied before every privileged
// operation. Superadmins bypass shop scoping; admins must match the
// target's shop exactly.
func Require(p Principal, req Requirement) error {
	if p.ID == 0 {
		return ErrUnauthorized
	}

	if roleRank[p.Role] < roleRank[req.Role] {
		return ErrForbidden
	}

	if req.ShopID != "" && p.Role != RoleSuperAdmin {
		if p.ShopID == nil || *p.ShopID != req.ShopID {
			return ErrForbidden
		}
	}

	return nil
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal sets the authenticated principal into context (called by middleware)
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom retrieves the principal safely
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok && p.ID != 0
}
