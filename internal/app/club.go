package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

const (
	MaxMemoLength      = 500
	MaxShortDescLength = 36
	MaxLongDescLength  = 1000
)

// ClubService covers the single request club screens: joining a club and
// editing its introduction
type ClubService struct {
	api      ClubAPI
	notifier Notifier
}

func NewClubService(api ClubAPI, n Notifier) *ClubService {
	return &ClubService{api: api, notifier: notifier(n)}
}

func checkLength(field, text string, max int) error {
	if n := utf8.RuneCountInString(text); n > max {
		return errors.Wrapf(errutil.ErrTooLong, "%s has %d characters, at most %d", field, n, max)
	}
	return nil
}

// Apply sends a join request with memo. It refuses when the user already
// belongs to the club or has a request pending.
func (s *ClubService) Apply(ctx context.Context, clubID int64, memo string) error {
	if err := checkLength("memo", memo, MaxMemoLength); err != nil {
		return err
	}

	role, err := s.api.ClubRole(ctx, clubID)
	if err != nil {
		return errors.Wrapf(err, "role in club %d", clubID)
	}
	switch {
	case role.Member():
		return errors.Wrapf(errutil.ErrAlreadyMember, "club %d (%s)", clubID, role.Role)
	case role.Applied():
		return errors.Wrapf(errutil.ErrAlreadyApplied, "club %d", clubID)
	}

	if err := s.api.ApplyClub(ctx, clubID, memo); err != nil {
		s.notifier.Notify(LevelDanger, "Join request failed")
		return errors.Wrapf(err, "apply to club %d", clubID)
	}
	logger.Infof("applied to club %d", clubID)
	s.notifier.Notify(LevelSuccess, "Join request sent")
	return nil
}

// EditIntroduction replaces the short and long description of a club and
// returns the updated club
func (s *ClubService) EditIntroduction(ctx context.Context, clubID int64, short, long string) (*protocol.Club, error) {
	short = strings.TrimSpace(short)
	if err := checkLength("short description", short, MaxShortDescLength); err != nil {
		return nil, err
	}
	if err := checkLength("long description", long, MaxLongDescLength); err != nil {
		return nil, err
	}

	resp, err := s.api.UpdateClub(ctx, clubID, protocol.UpdateClubRequest{
		ClubShortDesc: short,
		ClubLongDesc:  long,
	})
	if err != nil {
		s.notifier.Notify(LevelDanger, "Updating the introduction failed")
		return nil, errors.Wrapf(err, "update club %d", clubID)
	}
	if resp.ResultCode != protocol.ResultCodeOK {
		logger.Warnf("update club %d: status %d, result code %q", clubID, resp.Status, resp.ResultCode)
		s.notifier.Notify(LevelDanger, "Updating the introduction failed")
		return nil, errors.Wrapf(errutil.ErrUnexpectedResult, "update club %d: %q", clubID, resp.ResultCode)
	}

	s.notifier.Notify(LevelSuccess, "Introduction updated")
	return &resp.Data, nil
}
