//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal"
	"github.com/2beens/fittrack/internal/auth"
)

func (s *IntegrationTestSuite) TestHealth() {
	t := s.T()
	ctx := context.Background()

	resp := s.do(ctx, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health internal.HealthResponse
	decodeBody(t, resp, &health)
	assert.Equal(t, "test-version-info", health.Version)
}

func (s *IntegrationTestSuite) TestRegisterLoginLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds, token := s.registerAndLogin(ctx)

	// same email twice
	resp := s.do(ctx, http.MethodPost, "/a/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodPost, "/a/login", "", auth.Credentials{
		Email:    creds.Email,
		Password: "bad-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodGet, "/a/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var identity auth.Identity
	decodeBody(t, resp, &identity)
	assert.NotEmpty(t, identity.UserID)

	resp = s.do(ctx, http.MethodGet, "/a/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logout auth.LogoutResponse
	decodeBody(t, resp, &logout)
	assert.True(t, logout.LoggedOut)

	resp = s.do(ctx, http.MethodGet, "/a/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "no can do", readBody(t, resp))
}

func (s *IntegrationTestSuite) TestProtectedRoutesWithoutSession() {
	t := s.T()
	ctx := context.Background()

	for _, path := range []string{"/activities", "/weights", "/stats", "/a/me"} {
		resp := s.do(ctx, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()

		resp = s.do(ctx, http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}
