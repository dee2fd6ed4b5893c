package rbac

import (
	"context"
	"errors"

	"issuehub/internal/policy/engine"
	"issuehub/internal/security"
	userdomain "issuehub/internal/user/domain"
)

// ErrUserNotFound is returned by IsAdminByEmail when no user exists for the email.
var ErrUserNotFound = errors.New("user not found")

// UserGetter resolves a user by email. Used to decide role from the store rather
// than from token claims.
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

// Evaluator answers role and ownership questions for handlers and guards.
type Evaluator struct {
	tokens *security.TokenProvider
	users  UserGetter
	policy engine.Evaluator
}

// NewEvaluator returns an Evaluator. policy may be nil, in which case access
// decisions use the built-in rule only.
func NewEvaluator(tokens *security.TokenProvider, users UserGetter, policy engine.Evaluator) *Evaluator {
	return &Evaluator{tokens: tokens, users: users, policy: policy}
}

// IsAdmin reports whether the given access token verifies and carries the ADMIN role.
// Any verification failure means false.
func (e *Evaluator) IsAdmin(tokenString string) bool {
	identity, err := e.tokens.Verify(tokenString)
	if err != nil {
		return false
	}
	return identity.Role == string(userdomain.RoleAdmin)
}

// IsAdminByEmail reports whether the stored user for email has the ADMIN role.
// Returns ErrUserNotFound when no such user exists. Unlike IsAdmin this reflects
// the store, so a role change is visible before the user's token expires.
func (e *Evaluator) IsAdminByEmail(ctx context.Context, email string) (bool, error) {
	u, err := e.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, ErrUserNotFound
	}
	return u.Role == userdomain.RoleAdmin, nil
}

// Authorize decides whether the subject may act on the resource: admins always
// may, everyone else only when they own it, are assigned to it, or are a member.
func (e *Evaluator) Authorize(ctx context.Context, subject engine.Subject, resource engine.Resource) (bool, error) {
	input := engine.AccessInput{Subject: subject, Resource: resource}
	if e.policy == nil {
		return fallback(input), nil
	}
	return e.policy.EvaluateAccess(ctx, input)
}

func fallback(in engine.AccessInput) bool {
	if in.Subject.Role == string(userdomain.RoleAdmin) {
		return true
	}
	if in.Subject.Email == "" {
		return false
	}
	if in.Subject.Email == in.Resource.Owner || in.Subject.Email == in.Resource.Assignee {
		return true
	}
	for _, m := range in.Resource.Members {
		if m == in.Subject.Email {
			return true
		}
	}
	return false
}
