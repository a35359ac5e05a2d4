// Package app drives the club screens: browsing, membership management,
// applications, introductions, the feed and login.
package app

import (
	"context"

	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/internal/client"
	"github.com/lonng/onyou/protocol"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "app")

// ClubAPI is the part of the remote API the screens use, *client.Session
// implements it
type ClubAPI interface {
	Clubs(ctx context.Context, params protocol.ClubsParams, cursor string) (*protocol.ClubListPage, error)
	Club(ctx context.Context, clubID int64) (*protocol.ClubDetail, error)
	ClubRole(ctx context.Context, clubID int64) (*protocol.ClubRole, error)
	ApplyClub(ctx context.Context, clubID int64, memo string) error
	UpdateClub(ctx context.Context, clubID int64, update protocol.UpdateClubRequest) (*protocol.UpdateClubResponse, error)
	UpdateMemberRoles(ctx context.Context, clubID int64, changes []protocol.RoleChange) error
	Feeds(ctx context.Context) ([]protocol.Feed, error)
	CreateFeed(ctx context.Context, feed protocol.FeedCreation, uploads []client.Upload) error
}

type LoginAPI interface {
	Login(ctx context.Context, email, password string) (auth.Credential, error)
}

var (
	_ ClubAPI  = (*client.Session)(nil)
	_ LoginAPI = (*client.Client)(nil)
)
