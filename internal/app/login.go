package app

import (
	"context"
	"strings"

	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/pkg/errors"
)

// Login signs in with email and password. Storing the credential is left
// to the caller.
func Login(ctx context.Context, api LoginAPI, n Notifier, email, password string) (auth.Credential, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return auth.Credential{}, errors.Wrap(errutil.ErrInvalidArgument, "email and password required")
	}

	cred, err := api.Login(ctx, email, password)
	switch {
	case errors.Cause(err) == errutil.ErrAuthFailed:
		notifier(n).Notify(LevelWarning, "Check your email and password")
		return auth.Credential{}, err
	case err != nil:
		notifier(n).Notify(LevelDanger, "Login failed, try again later")
		return auth.Credential{}, err
	}
	return cred, nil
}
