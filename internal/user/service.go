package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength       = 254
	minEmailLength       = 3
	maxLoginLength       = 30
	minLoginLength       = 5
	maxDisplayNameLength = 60
	bcryptCost           = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrEmailLength        = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrLoginLength        = fmt.Errorf("login is too long or too short, max length: %d, min length: %d", maxLoginLength, minLoginLength)
	ErrDisplayNameLength  = fmt.Errorf("display name is too long, max length: %d", maxDisplayNameLength)
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrInvalidBudget      = errors.New("monthly budget must not be negative")
	ErrInternalError      = errors.New("internal Server Error")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	HashToken    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the per-user display data. MonthlyBudget is only
// consumed by the finance dashboard.
type Profile struct {
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	MonthlyBudget float64   `json:"monthly_budget"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Service interface {
	Register(email, login, password, displayName string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByLoginOrEmail(loginOrEmail string) (*User, error)
	GetProfile(userID string) (*Profile, error)
	UpdateProfile(userID, displayName string, monthlyBudget float64) (*Profile, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

// generateHashToken produces the per-user secret mixed into refresh token
// claims, so rotating it invalidates all outstanding refresh tokens.
func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(email, login, password, displayName string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	login = strings.TrimSpace(login)
	displayName = strings.TrimSpace(displayName)

	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}
	if len(login) < minLoginLength || len(login) > maxLoginLength {
		return nil, ErrLoginLength
	}
	if len(displayName) > maxDisplayNameLength {
		return nil, ErrDisplayNameLength
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if displayName == "" {
		displayName = login
	}

	existingUser, err := s.repo.userExistsByLoginOrEmail(login, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}
	if existingUser != nil {
		if existingUser.Email == email {
			return nil, ErrEmailAlreadyExists
		}
		return nil, ErrLoginAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	hashToken, err := generateHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	newUser := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
	}

	if err := s.repo.createUser(newUser, displayName); err != nil {
		return nil, ErrInternalError
	}

	return newUser, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	return s.repo.getUserByLoginOrEmail(strings.TrimSpace(loginOrEmail))
}

func (s *service) GetProfile(userID string) (*Profile, error) {
	return s.repo.getProfile(userID)
}

func (s *service) UpdateProfile(userID, displayName string, monthlyBudget float64) (*Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || len(displayName) > maxDisplayNameLength {
		return nil, ErrDisplayNameLength
	}
	if monthlyBudget < 0 {
		return nil, ErrInvalidBudget
	}

	profile, err := s.repo.getProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = displayName
	profile.MonthlyBudget = monthlyBudget
	if err := s.repo.updateProfile(profile); err != nil {
		return nil, err
	}

	return profile, nil
}
