package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"golang.org/x/oauth2"
)

const (
	pathClubs       = "/api/clubs"
	pathApplyClub   = "/api/clubs/apply"
	pathFeeds       = "/api/feeds"
	paramCursor     = "cursor"
	pathClubFmt     = "/api/clubs/%d"
	pathClubRoleFmt = "/api/clubs/%d/role"
	pathRolesFmt    = "/api/clubs/%d/members/role"
)

// Session is a Client bound to a credential. Every request carries the
// credential as bearer token.
type Session struct {
	*Client
	cred auth.Credential
}

// Session binds cred to a copy of c sharing its rate limiter
func (c *Client) Session(cred auth.Credential) *Session {
	hc := &http.Client{
		Transport: &oauth2.Transport{
			Source: cred,
			Base:   c.client.Transport,
		},
		Timeout:       c.client.Timeout,
		CheckRedirect: c.client.CheckRedirect,
		Jar:           c.client.Jar,
	}
	return &Session{
		Client: &Client{base: c.base, rl: c.rl, client: hc},
		cred:   cred,
	}
}

func (s *Session) Credential() auth.Credential {
	return s.cred
}

func (s *Session) request(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	if !s.cred.Valid() {
		return nil, errutil.ErrTokenNotFound
	}
	return s.newRequest(ctx, method, path, query, body)
}

// Clubs fetches one page of clubs, cursor is empty for the first page
func (s *Session) Clubs(ctx context.Context, params protocol.ClubsParams, cursor string) (*protocol.ClubListPage, error) {
	query := params.Values()
	if cursor != "" {
		query.Set(paramCursor, cursor)
	}
	req, err := s.request(ctx, http.MethodGet, pathClubs, query, nil)
	if err != nil {
		return nil, err
	}

	page := &protocol.ClubListPage{}
	if err := s.call(req, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Session) Club(ctx context.Context, clubID int64) (*protocol.ClubDetail, error) {
	req, err := s.request(ctx, http.MethodGet, fmt.Sprintf(pathClubFmt, clubID), nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &protocol.ClubDetailResponse{}
	if err := s.call(req, resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ClubRole returns the caller's relation to the club
func (s *Session) ClubRole(ctx context.Context, clubID int64) (*protocol.ClubRole, error) {
	req, err := s.request(ctx, http.MethodGet, fmt.Sprintf(pathClubRoleFmt, clubID), nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &protocol.ClubRoleResponse{}
	if err := s.call(req, resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (s *Session) ApplyClub(ctx context.Context, clubID int64, memo string) error {
	req, err := s.request(ctx, http.MethodPost, pathApplyClub, nil, &protocol.ApplyClubRequest{
		ClubId: clubID,
		Memo:   memo,
	})
	if err != nil {
		return err
	}
	return s.call(req, nil)
}

// UpdateClub changes the introduction texts. The caller checks the result
// code of the returned response.
func (s *Session) UpdateClub(ctx context.Context, clubID int64, update protocol.UpdateClubRequest) (*protocol.UpdateClubResponse, error) {
	req, err := s.request(ctx, http.MethodPut, fmt.Sprintf(pathClubFmt, clubID), nil, &update)
	if err != nil {
		return nil, err
	}

	resp := &protocol.UpdateClubResponse{}
	if err := s.call(req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateMemberRoles saves role changes in one request
func (s *Session) UpdateMemberRoles(ctx context.Context, clubID int64, changes []protocol.RoleChange) error {
	req, err := s.request(ctx, http.MethodPut, fmt.Sprintf(pathRolesFmt, clubID), nil, &protocol.RoleChangeRequest{
		Data: changes,
	})
	if err != nil {
		return err
	}
	return s.call(req, nil)
}
