package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/schedly/schedly-api/internal/pkg/jwt"
	"github.com/schedly/schedly-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(userRepo Repository, jwtService *jwt.Service) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new customer account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	// 1. Check if email exists
	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	// 2. Hash password
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create user (self-registration is customer only, admins are seeded)
	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	// 4. Generate tokens
	return s.generateTokens(u)
}

// Login authenticates user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	// 1. Find user
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 3. Generate tokens
	return s.generateTokens(u)
}

// Refresh issues a new token pair from a valid refresh token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Re-read the user so role changes take effect on rotation
	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokens(u)
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u)
	return &resp, nil
}

// EnsureAdmin creates the admin account on startup if it does not exist.
// Credentials come from configuration; a blank email disables seeding.
func (s *Service) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	if email == "" {
		return nil
	}
	email = normalizeEmail(email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// Concurrent startup may race on the insert
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	log.Info().Str("email", email).Msg("seeded admin account")
	return nil
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.AccessTTL().Seconds()),
		},
	}, nil
}
