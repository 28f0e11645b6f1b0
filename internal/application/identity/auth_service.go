package identity

import (
	"context"
	"errors"

	"github.com/contractportal/backend/internal/domain/client"
	"github.com/contractportal/backend/internal/domain/shared"
	"github.com/contractportal/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which one it was.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "invalid email or password")

// AuthService implements client registration and session management
type AuthService struct {
	clients    client.Repository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates an auth service
func NewAuthService(clients client.Repository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		clients:    clients,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Register creates a new client account and signs it in, so the new
// client does not have to log in right after registering.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginOutput, error) {
	exists, err := s.clients.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "an account with this email already exists")
	}

	c, err := client.NewClient(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if input.Phone != "" {
		if err := c.SetPhone(input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Address != "" {
		c.SetAddress(input.Address)
	}
	if input.CompanyName != "" || input.TaxCode != "" {
		if err := c.SetCompany(input.CompanyName, input.TaxCode); err != nil {
			return nil, err
		}
	}

	if err := s.clients.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client registered",
		zap.String("client_id", c.ID.String()))

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		ClientID: c.ID,
		Email:    c.Email,
		Name:     c.Name,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Client: toClientDTO(c),
		Tokens: tokens,
	}, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	c, err := s.clients.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !c.VerifyPassword(input.Password) {
		s.logger.Warn("failed login attempt",
			zap.String("client_id", c.ID.String()))
		return nil, ErrInvalidCredentials
	}

	c.RecordLogin()
	if err := s.clients.Save(ctx, c); err != nil {
		// The login itself succeeded; a failed timestamp update is not fatal
		s.logger.Error("failed to record login time",
			zap.Error(err),
			zap.String("client_id", c.ID.String()))
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		ClientID: c.ID,
		Email:    c.Email,
		Name:     c.Name,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Client: toClientDTO(c),
		Tokens: tokens,
	}, nil
}

// Logout revokes the current access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// refresh token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "invalid refresh token")
	}

	if s.blacklist != nil {
		blacklisted, blErr := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if blErr != nil {
			s.logger.Error("refresh token blacklist check failed", zap.Error(blErr))
		} else if blacklisted {
			return nil, shared.NewDomainError("UNAUTHORIZED", "refresh token has been revoked")
		}
	}

	tokens, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "session expired, please log in again")
		}
		return nil, shared.NewDomainError("UNAUTHORIZED", "invalid refresh token")
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Error("failed to revoke used refresh token", zap.Error(err))
		}
	}

	return tokens, nil
}

// GetProfile returns the client profile for the authenticated client
func (s *AuthService) GetProfile(ctx context.Context, clientID uuid.UUID) (*ClientDTO, error) {
	c, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	dto := toClientDTO(c)
	return &dto, nil
}
