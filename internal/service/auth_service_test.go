package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"coitrack/internal/config"
	"coitrack/internal/domain"
	"coitrack/internal/service"
	"coitrack/mocks"
)

func setupAuthService() (service.AuthService, *mocks.MockUserRepo, *mocks.MockTenantRepo) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)
	cfg := config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "coitrack-test",
	}
	svc := service.NewAuthService(userRepo, tenantRepo, cfg)
	return svc, userRepo, tenantRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func activeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:       uuid.New(),
		Name:     "Acme Property Mgmt",
		Slug:     "acme",
		IsActive: true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "manager@acme.example").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      "manager@acme.example",
		Password:   "correct-horse-battery",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, tenant.ID, claims.TenantID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "manager@acme.example").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      "manager@acme.example",
		Password:   "not-the-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownTenantSlug(t *testing.T) {
	svc, _, tenantRepo := setupAuthService()

	tenantRepo.On("GetBySlug", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "ghost",
		Email:      "someone@ghost.example",
		Password:   "irrelevant-password",
	})

	// Unknown slug and unknown email look identical to the caller.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	svc, _, tenantRepo := setupAuthService()

	tenant := activeTenant()
	tenant.IsActive = false
	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      "manager@acme.example",
		Password:   "irrelevant-password",
	})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		IsActive:     false,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, "manager@acme.example").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      "manager@acme.example",
		Password:   "correct-horse-battery",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		Role:         domain.RoleMember,
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, tenant.ID, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct-horse-battery",
	})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct-horse-battery",
	})
	assert.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()

	tenant := activeTenant()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Email:        "manager@acme.example",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		IsActive:     true,
	}

	tenantRepo.On("GetBySlug", mock.Anything, "acme").Return(tenant, nil)
	userRepo.On("GetByEmail", mock.Anything, tenant.ID, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		TenantSlug: "acme",
		Email:      user.Email,
		Password:   "correct-horse-battery",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
