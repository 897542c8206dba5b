package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/config"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
)

type authFixture struct {
	cache *fakeCache
	users *fakeUserRepo
	jwt   service.JWTService
	svc   AuthServiceInterface
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	f := &authFixture{
		cache: newFakeCache(),
		users: newFakeUserRepo(entities.User{
			ID: "tech-1", Email: "tom@plant.test", Name: "Tom Tech", Role: entities.RoleTechnician, PasswordHash: hash,
		}),
		jwt: service.NewJWTService("test-secret", time.Hour, 24*time.Hour),
	}
	f.svc = NewAuthService(f.users, f.cache, f.jwt, zap.NewNop(), config.AuthConfig{
		MaxLoginAttempts: 3,
		LockoutDuration:  15 * time.Minute,
	})
	return f
}

func TestAuthService_LoginIssuesTokens(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), dto.LoginDTO{Email: " Tom@Plant.test ", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "tech-1", resp.User.ID)
	assert.EqualValues(t, 3600, resp.ExpiresIn)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "tech-1", claims.UserID)
	assert.Equal(t, "technician", claims.Role)
	assert.False(t, claims.IsRefreshToken)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Login(context.Background(), dto.LoginDTO{Email: "nobody@plant.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	wrong := dto.LoginDTO{Email: "tom@plant.test", Password: "wrong-pass"}

	for i := 0; i < 2; i++ {
		_, err := f.svc.Login(ctx, wrong)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	assert.Equal(t, "2", f.cache.values["login_attempts:tech-1"])
	assert.Equal(t, 15*time.Minute, f.cache.expires["login_attempts:tech-1"])

	_, err := f.svc.Login(ctx, wrong)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Contains(t, f.cache.values, "lockout:tech-1")
	assert.NotContains(t, f.cache.values, "login_attempts:tech-1")

	_, err = f.svc.Login(ctx, dto.LoginDTO{Email: "tom@plant.test", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked, "the right password does not bypass a lockout")
}

func TestAuthService_SuccessResetsAttempts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, dto.LoginDTO{Email: "tom@plant.test", Password: "wrong-pass"})
	require.Error(t, err)
	_, err = f.svc.Login(ctx, dto.LoginDTO{Email: "tom@plant.test", Password: "secret123"})
	require.NoError(t, err)

	assert.NotContains(t, f.cache.values, "login_attempts:tech-1")
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, dto.LoginDTO{Email: "tom@plant.test", Password: "secret123"})
	require.NoError(t, err)

	f.users.items["tech-1"].Role = entities.RoleManager
	resp, err := f.svc.Refresh(ctx, dto.RefreshTokenDTO{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role, "refresh picks up role changes")

	_, err = f.svc.Refresh(ctx, dto.RefreshTokenDTO{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)

	delete(f.users.items, "tech-1")
	_, err = f.svc.Refresh(ctx, dto.RefreshTokenDTO{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)

	u, err := f.svc.Me(asUser("tech-1", entities.RoleTechnician))
	require.NoError(t, err)
	assert.Equal(t, "Tom Tech", u.Name)

	_, err = f.svc.Me(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}
