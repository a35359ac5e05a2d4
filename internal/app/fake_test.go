package app

import (
	"context"
	"io"
	"sync"

	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/internal/client"
	"github.com/lonng/onyou/pkg/roster"
	"github.com/lonng/onyou/protocol"
)

type fakeAPI struct {
	pages   map[string]*protocol.ClubListPage
	pageErr error
	cursors []string

	detail  *protocol.ClubDetail
	role    protocol.ClubRole
	applied []protocol.ApplyClubRequest

	update    *protocol.UpdateClubResponse
	updateErr error

	rolesErr error
	saved    [][]protocol.RoleChange

	feeds   []protocol.Feed
	posted  []protocol.FeedCreation
	uploads [][]string
	postErr error
}

func (f *fakeAPI) Clubs(ctx context.Context, params protocol.ClubsParams, cursor string) (*protocol.ClubListPage, error) {
	f.cursors = append(f.cursors, cursor)
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.pages[cursor], nil
}

func (f *fakeAPI) Club(ctx context.Context, clubID int64) (*protocol.ClubDetail, error) {
	d := *f.detail
	d.Members = append([]protocol.Member(nil), f.detail.Members...)
	return &d, nil
}

func (f *fakeAPI) ClubRole(ctx context.Context, clubID int64) (*protocol.ClubRole, error) {
	r := f.role
	return &r, nil
}

func (f *fakeAPI) ApplyClub(ctx context.Context, clubID int64, memo string) error {
	f.applied = append(f.applied, protocol.ApplyClubRequest{ClubId: clubID, Memo: memo})
	return nil
}

func (f *fakeAPI) UpdateClub(ctx context.Context, clubID int64, update protocol.UpdateClubRequest) (*protocol.UpdateClubResponse, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.update, nil
}

func (f *fakeAPI) UpdateMemberRoles(ctx context.Context, clubID int64, changes []protocol.RoleChange) error {
	if f.rolesErr != nil {
		return f.rolesErr
	}
	f.saved = append(f.saved, changes)
	return nil
}

func (f *fakeAPI) Feeds(ctx context.Context) ([]protocol.Feed, error) {
	return f.feeds, nil
}

func (f *fakeAPI) CreateFeed(ctx context.Context, feed protocol.FeedCreation, uploads []client.Upload) error {
	if f.postErr != nil {
		return f.postErr
	}
	var names []string
	for _, u := range uploads {
		io.Copy(io.Discard, u.Body)
		names = append(names, u.Name)
	}
	f.posted = append(f.posted, feed)
	f.uploads = append(f.uploads, names)
	return nil
}

type fakeLogin struct {
	email string
	err   error
}

func (f *fakeLogin) Login(ctx context.Context, email, password string) (auth.Credential, error) {
	f.email = email
	if f.err != nil {
		return auth.Credential{}, f.err
	}
	return auth.NewCredential("token"), nil
}

type memStore struct {
	staged     map[int64]map[int64]roster.Change
	pendingErr error
}

func newMemStore() *memStore {
	return &memStore{staged: map[int64]map[int64]roster.Change{}}
}

func (s *memStore) Stage(clubID int64, c roster.Change) error {
	if s.staged[clubID] == nil {
		s.staged[clubID] = map[int64]roster.Change{}
	}
	if c.From == c.To {
		delete(s.staged[clubID], c.MemberId)
	} else {
		s.staged[clubID][c.MemberId] = c
	}
	s.setFailed(clubID, false)
	return nil
}

func (s *memStore) Pending(clubID int64) ([]roster.Change, error) {
	if s.pendingErr != nil {
		return nil, s.pendingErr
	}
	var out []roster.Change
	for _, c := range s.staged[clubID] {
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) Clear(clubID int64) error {
	delete(s.staged, clubID)
	return nil
}

func (s *memStore) MarkFailed(clubID int64) error {
	s.setFailed(clubID, true)
	return nil
}

func (s *memStore) setFailed(clubID int64, failed bool) {
	for id, c := range s.staged[clubID] {
		c.Failed = failed
		s.staged[clubID][id] = c
	}
}

func (s *memStore) failed(clubID int64) bool {
	for _, c := range s.staged[clubID] {
		if !c.Failed {
			return false
		}
	}
	return len(s.staged[clubID]) > 0
}

type toast struct {
	level Level
	msg   string
}

type recorder struct {
	mu     sync.Mutex
	toasts []toast
}

func (r *recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{level, msg})
}

func (r *recorder) levels() []Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ls []Level
	for _, t := range r.toasts {
		ls = append(ls, t.level)
	}
	return ls
}
