package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultRole is assigned when registration supplies no role names.
const DefaultRole = "USER"

// DefaultMinPasswordLength is the minimum accepted password length unless
// overridden.
const DefaultMinPasswordLength = 6

// Permissive local@domain shape; the store's unique constraint and the mail
// system are the real validators.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service composes the credential hasher, token service and persistence
// store into the register, login and current-user use cases.
type Service struct {
	store       Store
	hasher      *Hasher
	tokens      *TokenService
	minPassword int
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithMinPasswordLength overrides the minimum accepted password length.
func WithMinPasswordLength(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.minPassword = n
		}
	}
}

// NewService constructs the auth service.
func NewService(store Store, hasher *Hasher, tokens *TokenService, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	if hasher == nil {
		return nil, errors.New("auth: hasher is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token service is required")
	}
	s := &Service{
		store:       store,
		hasher:      hasher,
		tokens:      tokens,
		minPassword: DefaultMinPasswordLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TokenTTL exposes the configured token lifetime for cookie max-age.
func (s *Service) TokenTTL() time.Duration { return s.tokens.TTL() }

// RegisterInput carries a registration request. RoleNames defaults to
// [DefaultRole] when empty; Name is optional.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	RoleNames []string
}

// Session is the outcome of a successful registration or login.
type Session struct {
	User      UserView
	Token     string
	ExpiresAt time.Time
}

// Register validates input, creates the user with its role associations and
// issues a token. Validation failures do not touch the store.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !emailPattern.MatchString(email) {
		return Session{}, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(in.Password) < s.minPassword {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPassword)
	}

	// Pre-check for a friendly conflict error; the unique constraint in the
	// store remains the arbiter when two registrations race.
	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return Session{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	roleNames := dedupeNames(in.RoleNames)
	if len(roleNames) == 0 {
		roleNames = []string{DefaultRole}
	}
	roles, err := s.store.FindRolesByNames(ctx, roleNames)
	if err != nil {
		return Session{}, err
	}
	if len(roles) == 0 {
		return Session{}, ErrInvalidRoles
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Roles:        roles,
	}
	roleIDs := make([]int64, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	if err := s.store.CreateUser(ctx, user, roleIDs); err != nil {
		return Session{}, err
	}
	return s.session(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the identical error so callers cannot tell which part was
// wrong. Login has no mutation side effects.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(user)
}

// CurrentUser returns the sanitized view for a user id taken from a verified
// token. ErrNotFound here means the user was deleted after token issuance,
// which is distinct from bad credentials.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (UserView, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	if _, err := ResolveRoles(user); err != nil {
		return UserView{}, err
	}
	return user.Sanitize(), nil
}

// ListUsers returns sanitized views for every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Sanitize())
	}
	return views, nil
}

// VerifyToken checks a bearer token and returns its payload.
func (s *Service) VerifyToken(token string) (*TokenPayload, error) {
	return s.tokens.Verify(token)
}

func (s *Service) session(user *User) (Session, error) {
	roles, err := ResolveRoles(user)
	if err != nil {
		return Session{}, err
	}
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, roles)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user.Sanitize(), Token: token, ExpiresAt: expiresAt}, nil
}
