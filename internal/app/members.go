package app

import (
	"context"
	"fmt"

	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/pkg/roster"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

// RoleStore keeps role assignments that are not saved to the server yet
type RoleStore interface {
	// Stage records the pending change of one member, a change whose From
	// equals To removes the record
	Stage(clubID int64, change roster.Change) error
	Pending(clubID int64) ([]roster.Change, error)
	Clear(clubID int64) error
	MarkFailed(clubID int64) error
}

// MemberManager is the member grid of one club with role editing. It is
// owned by one screen and not safe for concurrent use.
type MemberManager struct {
	api      ClubAPI
	store    RoleStore
	notifier Notifier

	clubID int64
	club   *protocol.ClubDetail
	editor *roster.Editor
}

func NewMemberManager(api ClubAPI, store RoleStore, n Notifier) *MemberManager {
	return &MemberManager{
		api:      api,
		store:    store,
		notifier: notifier(n),
	}
}

// Load fetches the club members and restores the pending changes staged
// for the club earlier. Stale staged changes are dropped.
func (m *MemberManager) Load(ctx context.Context, clubID int64) error {
	detail, err := m.api.Club(ctx, clubID)
	if err != nil {
		return errors.Wrapf(err, "load club %d", clubID)
	}
	staged, err := m.store.Pending(clubID)
	if err != nil {
		return errors.Wrapf(err, "load staged roles of club %d", clubID)
	}

	editor := roster.NewEditor(detail.Members)
	stale := editor.Restore(staged)
	m.clubID = clubID
	m.club = detail
	m.editor = editor

	for _, c := range stale {
		logger.Warnf("club %d: staged change of member %d (%v to %v) is stale, dropped", clubID, c.MemberId, c.From, c.To)
		if err := m.store.Stage(clubID, roster.Change{MemberId: c.MemberId, From: c.From, To: c.From}); err != nil {
			return errors.Wrap(err, "drop stale change")
		}
	}
	if editor.Failed() {
		if len(stale) > 0 {
			if err := m.store.MarkFailed(clubID); err != nil {
				return errors.Wrap(err, "keep failed changes")
			}
		}
		m.notifier.Notify(LevelWarning, "The last save of member roles failed, save again or discard")
	}
	return nil
}

func (m *MemberManager) loaded() error {
	if m.editor == nil {
		return errors.Wrap(errutil.ErrInvalidArgument, "members not loaded")
	}
	return nil
}

func (m *MemberManager) Club() *protocol.ClubDetail {
	return m.club
}

// Assign changes the role of a member locally, the change is staged until
// Save or Discard
func (m *MemberManager) Assign(memberID int64, role protocol.Role) error {
	if err := m.loaded(); err != nil {
		return err
	}
	if err := m.editor.Assign(memberID, role); err != nil {
		return err
	}

	var committed protocol.Role
	for _, mem := range m.editor.Committed() {
		if mem.Id == memberID {
			committed = mem.Role
			break
		}
	}
	change := roster.Change{MemberId: memberID, From: committed, To: role}
	if err := m.store.Stage(m.clubID, change); err != nil {
		return errors.Wrapf(err, "stage role of member %d", memberID)
	}
	return nil
}

// Bundles is the member grid, columns icons per row
func (m *MemberManager) Bundles(columns int) ([]roster.Bundle, error) {
	if err := m.loaded(); err != nil {
		return nil, err
	}
	return m.editor.Bundles(columns)
}

func (m *MemberManager) Changes() []roster.Change {
	if m.editor == nil {
		return nil
	}
	return m.editor.Changes()
}

func (m *MemberManager) Failed() bool {
	return m.editor != nil && m.editor.Failed()
}

// Save sends every pending change in one request. On failure the changes
// stay pending and flagged, Discard drops them.
func (m *MemberManager) Save(ctx context.Context) error {
	if err := m.loaded(); err != nil {
		return err
	}
	changes := m.editor.Changes()
	if len(changes) == 0 {
		return errutil.ErrNoPendingChanges
	}

	req := make([]protocol.RoleChange, len(changes))
	for i, c := range changes {
		req[i] = protocol.RoleChange{UserId: c.MemberId, Role: c.To}
	}

	if err := m.api.UpdateMemberRoles(ctx, m.clubID, req); err != nil {
		m.editor.Fail()
		if serr := m.store.MarkFailed(m.clubID); serr != nil {
			logger.Errorf("mark staged roles of club %d failed: %v", m.clubID, serr)
		}
		m.notifier.Notify(LevelWarning, fmt.Sprintf("Saving %d role change(s) failed, they are kept for retry", len(changes)))
		return errors.Wrapf(err, "save roles of club %d", m.clubID)
	}

	m.editor.Commit()
	if err := m.store.Clear(m.clubID); err != nil {
		logger.Errorf("clear staged roles of club %d: %v", m.clubID, err)
	}
	logger.Infof("club %d: %d role change(s) saved", m.clubID, len(changes))
	m.notifier.Notify(LevelSuccess, "Member roles saved")
	return nil
}

// Discard reverts every pending change
func (m *MemberManager) Discard() error {
	if err := m.loaded(); err != nil {
		return err
	}
	m.editor.Discard()
	return errors.Wrapf(m.store.Clear(m.clubID), "discard roles of club %d", m.clubID)
}
