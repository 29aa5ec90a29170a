package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo     repository.UserRepository
	jwtSecret    string
	jwtAlgorithm string
	bcryptCost   int
	tokenTTL     time.Duration
}

// NewAuthService creates the authentication service. The signing secret is
// injected here and never read from process-wide state. A tokenTTL of zero
// issues non-expiring tokens.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	jwtAlgorithm string,
	bcryptCost int,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		bcryptCost:   bcryptCost,
		tokenTTL:     tokenTTL,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Authenticate reports whether username/password is a valid credential
// pair. An unknown username is an invalid-credentials error; the caller
// cannot tell which half was wrong. Authenticate has no side effects —
// stamping last_login_at is a separate, explicit step so that probing a
// credential never mutates the account.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return false, domain.NewInvalidCredentials()
	}
	return s.VerifyPassword(password, user.Password), nil
}

// Register creates a new user and logs them in, fully sequenced:
// create record, issue token, stamp last_login_at.
func (s *AuthService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error) {
	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := domain.NewUser(username, hashedPassword, firstName, lastName, phone)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.IssueToken(username)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateLoginTimestamp(ctx, username); err != nil {
		return "", err
	}

	return token, nil
}

// Login authenticates the credentials and, on success, issues a token and
// stamps last_login_at.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.NewInvalidCredentials()
	}

	token, err := s.IssueToken(username)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateLoginTimestamp(ctx, username); err != nil {
		return "", err
	}

	return token, nil
}

// IssueToken produces a signed token binding the username as the
// principal.
func (s *AuthService) IssueToken(username string) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   "messagely",
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken validates a token and returns the bound principal.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", domain.NewInvalidToken()
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Username == "" {
		return "", domain.NewInvalidToken()
	}

	return claims.Username, nil
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
