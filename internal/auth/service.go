package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"task-manager-backend/internal/database/models"
	apperrors "task-manager-backend/internal/errors"
	"task-manager-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

// Service provides authentication: credential verification, JWT issuance and
// validation, and token revocation. Revocation is tracked in memory per user:
// logout records a cut-off instant and any token issued before it is refused.
type Service struct {
	secret     []byte
	ttl        time.Duration
	userRepo   repository.UserRepositoryInterface
	revokedAt  map[uuid.UUID]time.Time
	revokedMux sync.RWMutex
}

// NewService creates a new authentication service
func NewService(secret string, ttl time.Duration, userRepo repository.UserRepositoryInterface) *Service {
	return &Service{
		secret:    []byte(secret),
		ttl:       ttl,
		userRepo:  userRepo,
		revokedAt: make(map[uuid.UUID]time.Time),
	}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credentials and returns the user together with a signed
// token. A missing user and a wrong password are indistinguishable to the
// caller.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateJWT issues a signed token for the user
func (s *Service) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "task-manager-backend",
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateJWT parses and validates a token string, including the revocation
// cut-off of the token's user.
func (s *Service) ValidateJWT(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewAuthenticationError("invalid token")
	}
	if !token.Valid {
		return nil, apperrors.NewAuthenticationError("invalid token")
	}

	s.revokedMux.RLock()
	cutoff, revoked := s.revokedAt[claims.UserID]
	s.revokedMux.RUnlock()
	if revoked && claims.IssuedAt != nil && !claims.IssuedAt.After(cutoff) {
		return nil, apperrors.ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes every token the user holds by recording a cut-off instant
func (s *Service) Logout(userID uuid.UUID) {
	s.revokedMux.Lock()
	s.revokedAt[userID] = time.Now()
	s.revokedMux.Unlock()
}
