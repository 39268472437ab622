//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/auth"
)

const testPassword = "testpass-123"

// do sends body as JSON, when given, with the token as bearer auth.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) *http.Response {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(bytes.TrimSpace(respBytes))
}

// registerAndLogin creates a fresh user and returns its session token.
func (s *IntegrationTestSuite) registerAndLogin(ctx context.Context) (auth.Credentials, string) {
	t := s.T()
	creds := auth.Credentials{
		Email:    gofakeit.Email(),
		Password: testPassword,
	}

	resp := s.do(ctx, http.MethodPost, "/a/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, readBody(t, resp))

	resp = s.do(ctx, http.MethodPost, "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session auth.LoginSession
	decodeBody(t, resp, &session)
	require.NotEmpty(t, session.Token)

	return creds, session.Token
}
