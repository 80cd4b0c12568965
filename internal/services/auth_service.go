package services

import (
	"context"
	"errors"

	"github.com/delizza/mailing-backend/internal/config"
	"github.com/delizza/mailing-backend/internal/models"
	"github.com/delizza/mailing-backend/internal/repositories"
	"github.com/delizza/mailing-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure authService implements AuthService
var _ AuthService = (*authService)(nil)

// ErrInvalidCredentials is returned on a failed login attempt
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(adminUserRepo repositories.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// Register creates an admin user with a hashed password
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error) {
	if _, err := s.adminUserRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("user with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	adminUser := &models.AdminUser{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         "admin",
	}
	if err := s.adminUserRepo.Create(ctx, adminUser); err != nil {
		return nil, err
	}

	return adminUser, nil
}

// Login verifies credentials and issues a JWT carrying the admin role
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateJWT(adminUser.ID.Hex(), adminUser.Role, s.cfg)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
