package identity

import (
	"context"
	"testing"
	"time"

	"github.com/contractportal/backend/internal/domain/client"
	"github.com/contractportal/backend/internal/domain/shared"
	"github.com/contractportal/backend/internal/infrastructure/auth"
	"github.com/contractportal/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func newTestAuthService(repo client.Repository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "identity-test-secret-32-characters!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "contract-portal-test",
		MaxRefreshCount:        5,
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), nil)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*client.Client")).Return(nil)

	svc := newTestAuthService(repo)
	out, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Acme Corp",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", out.Client.Email)
	assert.NotEmpty(t, out.Client.ID)

	// Registering signs the client in, so a usable token pair comes back
	require.NotNil(t, out.Tokens)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)
	claims, err := svc.jwtService.ValidateAccessToken(out.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)

	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Acme Corp",
		Email:    "taken@example.com",
		Password: "secret123",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestAuthService_Register_InvalidPassword(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	svc := newTestAuthService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Acme Corp",
		Email:    "new@example.com",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	c, err := client.NewClient("Acme Corp", "client@example.com", "secret123")
	require.NoError(t, err)

	repo := new(mockClientRepository)
	repo.On("FindByEmail", mock.Anything, "client@example.com").Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(nil)

	svc := newTestAuthService(repo)
	out, err := svc.Login(context.Background(), LoginInput{
		Email:    "client@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "client@example.com", out.Client.Email)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)
	assert.NotNil(t, c.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	c, err := client.NewClient("Acme Corp", "client@example.com", "secret123")
	require.NoError(t, err)

	repo := new(mockClientRepository)
	repo.On("FindByEmail", mock.Anything, "client@example.com").Return(c, nil)

	svc := newTestAuthService(repo)
	_, err = svc.Login(context.Background(), LoginInput{
		Email:    "client@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	svc := newTestAuthService(repo)
	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	// Unknown emails and wrong passwords yield the same error
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh_RevokesUsedToken(t *testing.T) {
	c, err := client.NewClient("Acme Corp", "client@example.com", "secret123")
	require.NoError(t, err)

	repo := new(mockClientRepository)
	repo.On("FindByEmail", mock.Anything, "client@example.com").Return(c, nil)
	repo.On("Save", mock.Anything, c).Return(nil)

	svc := newTestAuthService(repo)
	out, err := svc.Login(context.Background(), LoginInput{
		Email:    "client@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	newTokens, err := svc.Refresh(context.Background(), out.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)

	// Replaying the consumed refresh token must fail
	_, err = svc.Refresh(context.Background(), out.Tokens.RefreshToken)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Logout_BlocksToken(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "identity-test-secret-32-characters!!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "contract-portal-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(new(mockClientRepository), jwtService, blacklist, nil)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		ClientID: uuid.New(),
		Email:    "client@example.com",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	blacklisted, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
