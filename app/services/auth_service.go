package services

import (
	"errors"
	"strings"
	"time"

	"BakeryApp/app/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrUnauthorized is returned for bad credentials and unknown or expired
// tokens. Callers never learn which of the two it was.
var ErrUnauthorized = errors.New("unauthorized")

// AuthService resolves the current user behind an opaque bearer token. The
// rest of the system only ever sees the resulting user id.
type AuthService struct {
	db       *gorm.DB
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, tokenTTL: tokenTTL}
}

// Register creates a new user account
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(password) < 6 {
		return nil, &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Field: "email", Message: "already registered"}
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and hands out a session token
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrUnauthorized
	}

	session := models.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", err
	}
	return session.Token, nil
}

// ValidateToken resolves a token to the owning user id
func (s *AuthService) ValidateToken(token string) (uint, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}

	var session models.Session
	err := s.db.Where("token = ?", token).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrUnauthorized
		}
		return 0, err
	}
	if time.Now().After(session.ExpiresAt) {
		return 0, ErrUnauthorized
	}
	return session.UserID, nil
}
