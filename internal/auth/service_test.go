package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/shoplane/shoplane-backend/pkg/auth"
	"github.com/shoplane/shoplane-backend/pkg/auth/session"
	"github.com/shoplane/shoplane-backend/pkg/config"
	"github.com/shoplane/shoplane-backend/pkg/db/models"
	"github.com/shoplane/shoplane-backend/pkg/enums"
	pkgerrors "github.com/shoplane/shoplane-backend/pkg/errors"
	"github.com/shoplane/shoplane-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shoplane-test",
		ExpirationMinutes: 15,
	}
}

type stubProfileStore struct {
	profiles  map[string]*models.Profile
	lastLogin map[uuid.UUID]time.Time
}

func newStubProfileStore() *stubProfileStore {
	return &stubProfileStore{
		profiles:  map[string]*models.Profile{},
		lastLogin: map[uuid.UUID]time.Time{},
	}
}

func (s *stubProfileStore) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := s.profiles[email]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProfileStore) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

type stubSessionManager struct {
	sessions map[string]string
	rotated  int
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: map[string]string{}}
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	s.rotated++
	newID := session.NewAccessID()
	token := "refresh-" + newID
	s.sessions[newID] = token
	return newID, token, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(s.sessions, accessID)
	return nil
}

type stubRoleResolver struct {
	roles map[uuid.UUID]enums.Role
}

func newStubRoleResolver() *stubRoleResolver {
	return &stubRoleResolver{roles: map[uuid.UUID]enums.Role{}}
}

func (s *stubRoleResolver) Resolve(_ context.Context, userID uuid.UUID) (enums.Role, error) {
	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return enums.RoleCustomer, nil
}

func seedProfile(t *testing.T, store *stubProfileStore, email, password string, role enums.Role, active bool) *models.Profile {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	store.profiles[email] = profile
	return profile
}

func newLoginService(t *testing.T, store *stubProfileStore, sessions *stubSessionManager) Service {
	t.Helper()
	roles := newStubRoleResolver()
	for _, p := range store.profiles {
		roles.roles[p.ID] = p.Role
	}
	svc, err := NewService(ServiceParams{
		ProfileRepo:    store,
		SessionManager: sessions,
		RoleResolver:   roles,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestLoginSuccess(t *testing.T) {
	store := newStubProfileStore()
	profile := seedProfile(t, store, "vendor@example.com", "correct horse", enums.RoleVendor, true)
	sessions := newStubSessionManager()
	svc := newLoginService(t, store, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Vendor@Example.com ",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, enums.RoleVendor, claims.Role)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Contains(t, store.lastLogin, profile.ID)
	assert.Equal(t, profile.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newStubProfileStore()
	seedProfile(t, store, "user@example.com", "right", enums.RoleCustomer, true)
	svc := newLoginService(t, store, newStubSessionManager())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newLoginService(t, newStubProfileStore(), newStubSessionManager())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Equal(t, invalidCredentialsMessage, pkgerrors.As(err).Message())
}

func TestLoginInactiveAccount(t *testing.T) {
	store := newStubProfileStore()
	seedProfile(t, store, "gone@example.com", "password1", enums.RoleCustomer, false)
	svc := newLoginService(t, store, newStubSessionManager())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "gone@example.com", Password: "password1"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	store := newStubProfileStore()
	seedProfile(t, store, "a@example.com", "password1", enums.RoleCustomer, true)
	sessions := newStubSessionManager()
	svc := newLoginService(t, store, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.rotated)
	assert.NotEqual(t, resp.RefreshToken, pair.RefreshToken)

	// The old pair is burned.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefreshReflectsRoleChange(t *testing.T) {
	store := newStubProfileStore()
	profile := seedProfile(t, store, "promoted@example.com", "password1", enums.RoleCustomer, true)
	sessions := newStubSessionManager()
	roles := newStubRoleResolver()
	roles.roles[profile.ID] = enums.RoleCustomer
	svc, err := NewService(ServiceParams{
		ProfileRepo:    store,
		SessionManager: sessions,
		RoleResolver:   roles,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "promoted@example.com", Password: "password1"})
	require.NoError(t, err)

	roles.roles[profile.ID] = enums.RoleVendor

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	require.NoError(t, err)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.RoleVendor, claims.Role)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newLoginService(t, newStubProfileStore(), newStubSessionManager())

	_, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: "not-a-jwt", RefreshToken: "x"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newStubProfileStore()
	seedProfile(t, store, "b@example.com", "password1", enums.RoleCustomer, true)
	sessions := newStubSessionManager()
	svc := newLoginService(t, store, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "b@example.com", Password: "password1"})
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))
	assert.Empty(t, sessions.sessions)
}
