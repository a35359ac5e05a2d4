// Package auth holds the bearer credential API sessions are bound to.
package auth

import (
	"strings"

	"github.com/lonng/onyou/pkg/errutil"
	"golang.org/x/oauth2"
)

const tokenType = "Bearer"

// Credential is an immutable access token. Obtaining, storing and
// refreshing it is up to the caller.
type Credential struct {
	token string
}

func NewCredential(token string) Credential {
	return Credential{token: strings.TrimSpace(token)}
}

func (c Credential) Valid() bool {
	return c.token != ""
}

// Token implements oauth2.TokenSource
func (c Credential) Token() (*oauth2.Token, error) {
	if !c.Valid() {
		return nil, errutil.ErrTokenNotFound
	}
	return &oauth2.Token{AccessToken: c.token, TokenType: tokenType}, nil
}

// Bearer returns the Authorization header value
func (c Credential) Bearer() (string, error) {
	if !c.Valid() {
		return "", errutil.ErrTokenNotFound
	}
	return tokenType + " " + c.token, nil
}

// String masks the token so a credential can be logged
func (c Credential) String() string {
	if len(c.token) <= 8 {
		return "****"
	}
	return c.token[:4] + "****"
}
