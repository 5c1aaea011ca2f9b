package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"civictrack/models"
	"civictrack/repository"
	"civictrack/utils"

	"github.com/google/uuid"
)

// UserService handles registration, login and profiles
type UserService struct {
	userRepo      *repository.UserRepository
	jwtSecret     []byte
	tokenTTLHours int
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository, jwtSecret string, tokenTTLHours int) *UserService {
	if tokenTTLHours <= 0 {
		tokenTTLHours = 24 * 7
	}
	return &UserService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenTTLHours: tokenTTLHours,
	}
}

// RegisterCitizen creates a citizen account
func (s *UserService) RegisterCitizen(req *models.RegisterRequest) (*models.User, error) {
	return s.create(&models.User{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Address: req.Address,
		Role:    models.RoleCitizen,
	}, req.Password)
}

// RegisterGovernment creates a government official account
func (s *UserService) RegisterGovernment(req *models.RegisterGovernmentRequest) (*models.User, error) {
	return s.create(&models.User{
		Name:         strings.TrimSpace(req.Name),
		GovernmentID: strings.TrimSpace(req.GovernmentID),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         models.RoleGovernment,
	}, req.Password)
}

func (s *UserService) create(user *models.User, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.ID = uuid.NewString()
	user.PasswordHash = hash
	user.CreatedAt = time.Now().UTC()

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login validates credentials and issues a bearer token
func (s *UserService) Login(login, password string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetUserByLogin(login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret, s.tokenTTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, Role: user.Role, UserID: user.ID}, nil
}

// Authenticate resolves a bearer token to its user
func (s *UserService) Authenticate(token string) (*models.User, error) {
	claims, err := utils.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role != claims.Role {
		return nil, utils.ErrInvalidToken
	}
	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ForgotPassword accepts a reset request. The response never reveals whether
// the account exists.
func (s *UserService) ForgotPassword(email string) {
	if _, err := s.userRepo.GetUserByLogin(email); err != nil {
		slog.Debug("password reset requested for unknown login")
		return
	}
	slog.Info("password reset requested", "email", email)
}

// Citizens returns every citizen account
func (s *UserService) Citizens() []models.User {
	return s.userRepo.ListUsersByRole(models.RoleCitizen)
}
