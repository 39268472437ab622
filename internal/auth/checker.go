package auth

import "context"

//go:generate mockgen -source=$GOFILE -destination=../middleware/checker_mocks_test.go -package=middleware_test

var _ Checker = (*LoginChecker)(nil)

// Checker turns a bearer token into the identity of an open session.
type Checker interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
