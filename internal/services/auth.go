package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/netdash/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// ErrAccountInactive is returned when the matched account is deactivated.
var ErrAccountInactive = errors.New("account inactive")

// ErrInvalidCredentials is returned when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenBytes = 32

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	GetByPhone(ctx context.Context, phone string) (types.User, error)
	TouchLastLogin(ctx context.Context, userID int) error
}

// OwnerCountsRepository provides the resource counts for the login response.
type OwnerCountsRepository interface {
	OwnerCounts(ctx context.Context, ownerID int) (types.OwnerCounts, error)
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User  types.User        `json:"user"`
	Token string            `json:"token"`
	Stats types.OwnerCounts `json:"stats"`
}

// AuthService authenticates users and issues session tokens.
type AuthService struct {
	users UserRepository
	stats OwnerCountsRepository
}

func NewAuthService(users UserRepository, stats OwnerCountsRepository) *AuthService {
	return &AuthService{users: users, stats: stats}
}

// Login resolves the identifier to exactly one lookup column, verifies the
// password, and on success returns the sanitized user, an opaque session
// token, and the owner's resource counts. The token is issued only; nothing
// validates it later.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	var user types.User
	var err error
	switch ClassifyIdentifier(identifier) {
	case IdentifierEmail:
		user, err = s.users.GetByEmail(ctx, identifier)
	case IdentifierPhone:
		user, err = s.users.GetByPhone(ctx, identifier)
	default:
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return LoginResult{}, err
	}

	if !user.IsActive {
		return LoginResult{}, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return LoginResult{}, err
	}

	counts, err := s.stats.OwnerCounts(ctx, user.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	// Best effort; a failed touch must not fail the login.
	_ = s.users.TouchLastLogin(ctx, user.UserID)

	user.PasswordHash = ""
	return LoginResult{
		User:  user,
		Token: token,
		Stats: counts,
	}, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
