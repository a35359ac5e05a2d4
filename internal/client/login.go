package client

import (
	"context"
	"net/http"

	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

const pathLogin = "/api/members/login"

// Login exchanges email and password for a credential. Wrong credentials
// are reported as errutil.ErrAuthFailed.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Credential, error) {
	req, err := c.newRequest(ctx, http.MethodPost, pathLogin, nil, &protocol.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return auth.Credential{}, err
	}

	resp := &protocol.LoginResponse{}
	if err := c.call(req, resp); err != nil {
		if Status(err) == http.StatusBadRequest || Status(err) == http.StatusUnauthorized {
			logger.Infof("login rejected for %s: %v", email, err)
			return auth.Credential{}, &authError{err: err}
		}
		return auth.Credential{}, err
	}

	cred := auth.NewCredential(resp.Token)
	if !cred.Valid() {
		return auth.Credential{}, errors.Wrap(errutil.ErrUnexpectedResult, "login: empty token")
	}
	logger.Infof("logged in as %s", email)
	return cred, nil
}
