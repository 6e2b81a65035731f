// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User not found with this username")
}

func (f *fakeUserRepository) List(_ context.Context) ([]*User, error) {
	var users []*User
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdateRole(_ context.Context, userID, role string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.Role = sec.UserRole(role)
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) Deactivate(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("User not found")
	}
	u.IsActive = false
	return nil
}

// fakeSessionRepository tracks sessions in memory.
type fakeSessionRepository struct {
	sessions map[string]*Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, s := range f.sessions {
		if s.TokenHash == tokenHash && !s.IsRevoked && s.ExpiresAt.After(time.Now()) {
			return s, nil
		}
	}
	return nil, apperr.NotFound("Session not found or expired")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	s, ok := f.sessions[sessionID]
	if !ok {
		return apperr.NotFound("Session not found")
	}
	s.IsRevoked = true
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, s := range f.sessions {
		if s.UserID == userID && s.ID != currentSessionID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	for id, s := range f.sessions {
		if !s.ExpiresAt.After(time.Now()) {
			delete(f.sessions, id)
		}
	}
	return nil
}

// fakeResetTokenRepository stores reset tokens without expiry handling.
type fakeResetTokenRepository struct {
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: make(map[string]string)}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token is invalid or expired")
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// fakeTokenProvider issues predictable unsigned tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	return fmt.Sprintf("token:%s:%s", userID, role), nil
}

func newTestService() (*Service, *fakeUserRepository, *fakeSessionRepository, *fakeResetTokenRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	resets := newFakeResetTokenRepository()
	service := NewService(users, sessions, resets, fakeTokenProvider{})
	return service, users, sessions, resets
}

func provisionTestUser(t *testing.T, service *Service, role sec.UserRole) *User {
	t.Helper()
	user, err := service.Provision(context.Background(), ProvisionInput{
		Username:    "mdelacroix",
		Email:       "m.delacroix@atelia.app",
		Password:    "correct-horse-battery",
		DisplayName: "M. Delacroix",
		Role:        role,
	})
	require.NoError(t, err)
	return user
}

func TestService_Provision(t *testing.T) {
	service, _, _, _ := newTestService()

	user := provisionTestUser(t, service, sec.RoleConsultant)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleConsultant, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
}

func TestService_Provision_DuplicateIdentity(t *testing.T) {
	service, _, _, _ := newTestService()
	provisionTestUser(t, service, sec.RoleConsultant)

	_, err := service.Provision(context.Background(), ProvisionInput{
		Username: "someone-else",
		Email:    "m.delacroix@atelia.app",
		Password: "another-password",
		Role:     sec.RoleViewer,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Provision(context.Background(), ProvisionInput{
		Username: "mdelacroix",
		Email:    "other@atelia.app",
		Password: "another-password",
		Role:     sec.RoleViewer,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_LoginAndRefreshRotation(t *testing.T) {
	service, _, sessions, _ := newTestService()
	user := provisionTestUser(t, service, sec.RoleManager)

	session, err := service.Login(context.Background(), LoginInput{
		Login:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// Rotation issues a new token and revokes the old one.
	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	assert.Len(t, sessions.sessions, 2)
}

func TestService_Login_BadCredentialsAndDeactivated(t *testing.T) {
	service, _, _, _ := newTestService()
	user := provisionTestUser(t, service, sec.RoleViewer)

	_, err := service.Login(context.Background(), LoginInput{Login: user.Email, Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, service.DeactivateAccount(context.Background(), user.ID))
	_, err = service.Login(context.Background(), LoginInput{Login: user.Email, Password: "correct-horse-battery"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _, _ := newTestService()
	user := provisionTestUser(t, service, sec.RoleConsultant)

	session, err := service.Login(context.Background(), LoginInput{
		Login:    user.Username,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	// Second logout with the same token still succeeds.
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))

	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	assert.Error(t, err)
}

func TestService_PasswordResetFlow(t *testing.T) {
	service, _, _, resets := newTestService()
	user := provisionTestUser(t, service, sec.RoleConsultant)

	session, err := service.Login(context.Background(), LoginInput{
		Login:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "brand-new-password"))

	// Old sessions die, the token is single-use, the new password works.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	assert.Error(t, err)
	assert.Empty(t, resets.tokens)

	_, err = service.Login(context.Background(), LoginInput{Login: user.Email, Password: "brand-new-password"})
	assert.NoError(t, err)
}

func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	service, _, _, _ := newTestService()

	// Silent no-op to prevent account enumeration.
	token, err := service.RequestPasswordReset(context.Background(), "nobody@atelia.app")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestService_UpdateRole_RevokesSessions(t *testing.T) {
	service, _, _, _ := newTestService()
	user := provisionTestUser(t, service, sec.RoleConsultant)

	session, err := service.Login(context.Background(), LoginInput{
		Login:    user.Email,
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	updated, err := service.UpdateRole(context.Background(), user.ID, sec.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleManager, updated.Role)

	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	assert.Error(t, err)

	_, err = service.UpdateRole(context.Background(), user.ID, sec.UserRole("bogus"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
