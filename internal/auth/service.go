package auth

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/adomanski/TrackKit/internal/user"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultDemoEmail       = "demo@trackkit.app"
	defaultDemoLogin       = "demo_user"
	defaultDemoPassword    = "demo-password-1"
	defaultDemoDisplayName = "Demo User"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type Service interface {
	Login(emailOrLogin, password string) (*user.User, string, string, error)
	DemoLogin() (*user.User, string, string, error)
	RefreshAccessToken(userID string) (string, string, error)
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	userService user.Service
	jwtManager  JWTManagerInterface
}

func NewAuthService(userService user.Service, jwtManager JWTManagerInterface) Service {
	return &service{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

func (s *service) Login(emailOrLogin, password string) (*user.User, string, string, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		log.Printf("error when getting user from database: %v", err)
		return nil, "", "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, defaultJWTDuration)
	if err != nil {
		log.Printf("error during JWT generation: %v", err)
		return nil, "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		log.Printf("error during refresh token generation: %v", err)
		return nil, "", "", ErrInternalError
	}

	return existingUser, jwtToken, refreshToken, nil
}

// DemoLogin signs in with the configured demo credentials, registering the
// demo account first when it does not exist yet.
func (s *service) DemoLogin() (*user.User, string, string, error) {
	email := envOrDefault("DEMO_EMAIL", defaultDemoEmail)
	password := envOrDefault("DEMO_PASSWORD", defaultDemoPassword)

	demoUser, jwtToken, refreshToken, err := s.Login(email, password)
	if err == nil {
		return demoUser, jwtToken, refreshToken, nil
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		return nil, "", "", err
	}

	_, err = s.userService.Register(email, defaultDemoLogin, password, defaultDemoDisplayName)
	if err != nil {
		// Lost the race with another demo sign-in; retry the login below.
		if !errors.Is(err, user.ErrEmailAlreadyExists) && !errors.Is(err, user.ErrLoginAlreadyExists) {
			log.Printf("could not register demo account: %v", err)
			return nil, "", "", ErrInternalError
		}
	}

	return s.Login(email, password)
}

// RefreshAccessToken requests are already checked in refresh token middleware
func (s *service) RefreshAccessToken(userID string) (string, string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", ErrInternalError
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshJWT(userID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	return jwtToken, newRefreshToken, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}
