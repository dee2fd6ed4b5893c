package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"issuehub/internal/audit"
	"issuehub/internal/security"
	sessiondomain "issuehub/internal/session/domain"
	userdomain "issuehub/internal/user/domain"
)

// Sentinel errors for the auth service; the transport layer maps them to codes.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenTypeBearer is the fixed token-type label returned with every token pair.
const TokenTypeBearer = "Bearer"

// TokenPair is the outcome of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// SignupInput carries the signup request fields. Role is honored as given;
// an empty role defaults to USER.
type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Role            userdomain.Role
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// RefreshTokens is the refresh-token lifecycle needed by the auth service.
// The auth service is the only caller that mutates refresh tokens.
type RefreshTokens interface {
	Issue(ctx context.Context, userID string) (*sessiondomain.RefreshToken, error)
	Find(ctx context.Context, token string) (*sessiondomain.RefreshToken, error)
	VerifyNotExpired(ctx context.Context, t *sessiondomain.RefreshToken) (*sessiondomain.RefreshToken, error)
	Revoke(ctx context.Context, userID string) error
}

// AuthService implements signup, login, token refresh, and logout.
type AuthService struct {
	users   UserRepo
	refresh RefreshTokens
	hasher  *security.Hasher
	tokens  *security.TokenProvider
	audit   audit.AuditLogger
}

// NewAuthService returns an AuthService with the given dependencies.
// auditLogger may be nil; auth events are then not recorded.
func NewAuthService(
	users UserRepo,
	refresh RefreshTokens,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	auditLogger audit.AuditLogger,
) *AuthService {
	return &AuthService{
		users:   users,
		refresh: refresh,
		hasher:  hasher,
		tokens:  tokens,
		audit:   auditLogger,
	}
}

// Signup creates a new credential record. It fails with ErrEmailTaken when the
// email is already registered (case-sensitive check) and ErrPasswordMismatch
// when password and confirmation differ. The requested role is stored as-is.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) error {
	taken, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	if in.Password != in.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hashed, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hashed,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Validate(); err != nil {
		return err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.logEvent(ctx, u.Email, "signup", "auth")
	return nil
}

// Login verifies the credentials and issues an access token plus a refresh
// token. ErrUserNotFound and ErrInvalidCredentials are distinguished; callers
// that prefer not to aid user enumeration may surface them identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.logEvent(ctx, email, "login_failure", "auth")
		return nil, ErrUserNotFound
	}
	if !s.hasher.Verify(u.PasswordHash, []byte(password)) {
		s.logEvent(ctx, email, "login_failure", "auth")
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.Issue(u.Email, u.FullName, u.Role.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Issue(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, u.Email, "login_success", "auth")
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		TokenType:    TokenTypeBearer,
	}, nil
}

// Refresh exchanges a live refresh token for a fresh access token. The access
// token is built from the user's current record, not from cached claims. The
// refresh token itself is returned unchanged: it is not rotated on use and
// stays valid until its fixed expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	t, err := s.refresh.Find(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := s.refresh.VerifyNotExpired(ctx, t); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	accessToken, _, err := s.tokens.Issue(u.Email, u.FullName, u.Role.String())
	if err != nil {
		return nil, err
	}
	s.logEvent(ctx, u.Email, "token_refresh", "auth")
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    TokenTypeBearer,
	}, nil
}

// Logout revokes the refresh token of the user identified by email. Idempotent:
// logging out with no active refresh token, or with an unknown email, succeeds.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	if err := s.refresh.Revoke(ctx, u.ID); err != nil {
		return err
	}
	s.logEvent(ctx, email, "logout", "auth")
	return nil
}

// EmailFromToken reads the subject claim of an access token without verifying
// it. Returns security.ErrMalformedToken on structurally invalid input.
func (s *AuthService) EmailFromToken(token string) (string, error) {
	return s.tokens.ExtractEmail(token)
}

// FullNameFromToken reads the fullName claim of an access token without
// verifying it.
func (s *AuthService) FullNameFromToken(token string) (string, error) {
	return s.tokens.ExtractFullName(token)
}

// RoleFromToken reads the role claim of an access token without verifying it.
func (s *AuthService) RoleFromToken(token string) (string, error) {
	return s.tokens.ExtractRole(token)
}

// FullNameByEmail returns the display name stored for email, or ErrUserNotFound.
func (s *AuthService) FullNameByEmail(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return u.FullName, nil
}

func (s *AuthService) logEvent(ctx context.Context, email, action, resource string) {
	if s.audit == nil {
		return
	}
	s.audit.LogEvent(ctx, email, action, resource, "")
}
