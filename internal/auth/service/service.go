package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wholesale_portal_backend/internal/auth/password"
	"wholesale_portal_backend/internal/auth/repository"
	"wholesale_portal_backend/internal/auth/transport"
	"wholesale_portal_backend/platform/apperr"
	"wholesale_portal_backend/platform/config"
	"wholesale_portal_backend/platform/logger"
)

const accessTokenType = "access"

const (
	msgInvalidCredentials = "invalid email or password"
	msgStaffOnly          = "staff access required"
)

// DealerSummary is the dealer view attached to the signed-in user.
type DealerSummary struct {
	ID            uuid.UUID
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// DealerSeed describes a dealer to provision for a demo account.
type DealerSeed struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// DealerDirectory resolves and provisions dealers for user accounts.
type DealerDirectory interface {
	GetDealer(ctx context.Context, id uuid.UUID) (DealerSummary, error)
	EnsureDealer(ctx context.Context, seed DealerSeed) (uuid.UUID, error)
}

// Service handles sign-in, token issue and the current-user profile.
type Service struct {
	repo    repository.Repository
	dealers DealerDirectory
	cfg     config.AuthServiceConfig
	log     *logger.Logger
	now     func() time.Time
}

// New creates a new auth service.
func New(repo repository.Repository, dealers DealerDirectory, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, dealers: dealers, cfg: cfg, log: log, now: time.Now}
}

// Login verifies credentials for any role and issues an access token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return transport.AuthResponse{}, err
	}
	return s.issue(ctx, user)
}

// StaffLogin is Login restricted to admin accounts.
func (s *Service) StaffLogin(ctx context.Context, req transport.LoginRequest) (transport.AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return transport.AuthResponse{}, err
	}
	if user.Role != repository.RoleAdmin {
		s.log.AuthEvent("staff_login", user.Email, false, "not staff")
		return transport.AuthResponse{}, apperr.Forbidden(msgStaffOnly)
	}
	return s.issue(ctx, user)
}

// GetMe returns the user with the linked dealer, when any.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return s.toUserResponse(ctx, user), nil
}

// SeedDemoAccounts provisions the demo admin and dealer accounts.
func (s *Service) SeedDemoAccounts(ctx context.Context) error {
	dealerID, err := s.dealers.EnsureDealer(ctx, DealerSeed{
		Name:          "Demo Wholesale Co.",
		ContactPerson: "John Dealer",
		Email:         "dealer@demo.com",
		Phone:         "+1 555-0100",
		Address:       "123 Warehouse Lane, Industrial District, CA 90210",
	})
	if err != nil {
		return err
	}

	accounts := []struct {
		email, name, plain, role string
		dealerID                 *uuid.UUID
	}{
		{email: "admin@demo.com", name: "Demo Admin", plain: "admin123", role: repository.RoleAdmin},
		{email: "dealer@demo.com", name: "John Dealer", plain: "dealer123", role: repository.RoleDealer, dealerID: &dealerID},
	}
	for _, account := range accounts {
		hash, err := password.Hash(account.plain)
		if err != nil {
			return err
		}
		user, err := s.repo.UpsertUser(ctx, repository.UpsertUserParams{
			Email:        account.email,
			Name:         account.name,
			PasswordHash: hash,
			Role:         account.role,
			DealerID:     account.dealerID,
		})
		if err != nil {
			return err
		}
		s.log.Info("demo account ready", "email", user.Email, "role", user.Role)
	}
	return nil
}

func (s *Service) authenticate(ctx context.Context, email, plain string) (repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.AuthEvent("login", email, false, "unknown email")
			return repository.User{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return repository.User{}, err
	}
	if err := password.Compare(user.PasswordHash, plain); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return repository.User{}, apperr.Unauthorized(msgInvalidCredentials)
	}
	return user, nil
}

func (s *Service) issue(ctx context.Context, user repository.User) (transport.AuthResponse, error) {
	accessToken, err := s.signJWT(user)
	if err != nil {
		return transport.AuthResponse{}, err
	}
	if err := s.repo.TouchLastSignedIn(ctx, user.ID); err != nil {
		s.log.DatabaseError("touch last signed in", err)
	}
	s.log.AuthEvent("login", user.Email, true, "")
	return transport.AuthResponse{
		AccessToken: accessToken,
		User:        s.toUserResponse(ctx, user),
	}, nil
}

func (s *Service) signJWT(user repository.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"type":  accessTokenType,
		"roles": []string{user.Role},
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}
	if user.DealerID != nil {
		claims["dealer_id"] = user.DealerID.String()
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func (s *Service) toUserResponse(ctx context.Context, user repository.User) transport.UserResponse {
	resp := transport.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	if user.LastSignedIn != nil {
		ts := user.LastSignedIn.Format(time.RFC3339)
		resp.LastSignedIn = &ts
	}
	if user.DealerID == nil {
		return resp
	}

	dealer, err := s.dealers.GetDealer(ctx, *user.DealerID)
	if err != nil {
		s.log.Warn("linked dealer unavailable", "userId", user.ID, "dealerId", *user.DealerID, "error", err)
		return resp
	}
	resp.Dealer = &transport.DealerResponse{
		ID:            dealer.ID,
		Name:          dealer.Name,
		ContactPerson: dealer.ContactPerson,
		Email:         dealer.Email,
		Phone:         dealer.Phone,
		Address:       dealer.Address,
	}
	return resp
}
