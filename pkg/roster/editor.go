package roster

import (
	"sort"

	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

// Change is a pending role assignment of one member. Failed is set once
// a save of the assignment was rejected.
type Change struct {
	MemberId int64
	From     protocol.Role
	To       protocol.Role
	Failed   bool
}

// Editor keeps the member list the server acknowledged and, on top of it,
// the role assignments the user made locally. Views read the effective
// state, a save either commits the pending assignments or flags them.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	committed []protocol.Member
	index     map[int64]int
	pending   map[int64]protocol.Role
	failed    bool
}

func NewEditor(members []protocol.Member) *Editor {
	e := &Editor{}
	e.reset(members)
	return e
}

func (e *Editor) reset(members []protocol.Member) {
	e.committed = make([]protocol.Member, len(members))
	e.index = make(map[int64]int, len(members))
	for i, m := range members {
		if !m.Role.Valid() {
			m.Role = protocol.RoleMember
		}
		e.committed[i] = m
		e.index[m.Id] = i
	}
	e.pending = map[int64]protocol.Role{}
	e.failed = false
}

// CanAssign reports whether a member holding from may be moved to to.
// Masters and managers step down to member, members step up to either.
func CanAssign(from, to protocol.Role) bool {
	switch from {
	case protocol.RoleMaster, protocol.RoleManager:
		return to == protocol.RoleMember
	case protocol.RoleMember:
		return to == protocol.RoleMaster || to == protocol.RoleManager
	}
	return false
}

// Assign records a local role change for member id. The transition is
// checked against the member's effective role.
func (e *Editor) Assign(id int64, role protocol.Role) error {
	i, ok := e.index[id]
	if !ok {
		return errors.Wrapf(errutil.ErrMemberNotFound, "member %d", id)
	}

	current := e.role(id)
	if !CanAssign(current, role) {
		return errors.Wrapf(errutil.ErrIllegalRoleChange, "member %d: %v to %v", id, current, role)
	}

	if e.committed[i].Role == role {
		delete(e.pending, id)
	} else {
		e.pending[id] = role
	}
	e.failed = false
	return nil
}

func (e *Editor) role(id int64) protocol.Role {
	if r, ok := e.pending[id]; ok {
		return r
	}
	return e.committed[e.index[id]].Role
}

// Restore puts back pending assignments saved earlier. A change whose From
// no longer matches the committed role, or whose member left, is stale
// and returned instead of applied. A restored failed change flags the
// editor as after a rejected save.
func (e *Editor) Restore(changes []Change) (stale []Change) {
	for _, c := range changes {
		i, ok := e.index[c.MemberId]
		if !ok || e.committed[i].Role != c.From || !c.To.Valid() {
			stale = append(stale, c)
			continue
		}
		if c.From == c.To {
			delete(e.pending, c.MemberId)
			continue
		}
		e.pending[c.MemberId] = c.To
		if c.Failed {
			e.failed = true
		}
	}
	return stale
}

// Role returns the effective role of member id
func (e *Editor) Role(id int64) (protocol.Role, bool) {
	if _, ok := e.index[id]; !ok {
		return protocol.RoleMember, false
	}
	return e.role(id), true
}

// Members returns the effective member list, pending assignments applied
func (e *Editor) Members() []protocol.Member {
	members := make([]protocol.Member, len(e.committed))
	for i, m := range e.committed {
		if r, ok := e.pending[m.Id]; ok {
			m.Role = r
		}
		members[i] = m
	}
	return members
}

// Committed returns the member list as the server knows it
func (e *Editor) Committed() []protocol.Member {
	members := make([]protocol.Member, len(e.committed))
	copy(members, e.committed)
	return members
}

// Bundles partitions the effective member list
func (e *Editor) Bundles(chunkSize int) ([]Bundle, error) {
	return Partition(e.Members(), chunkSize)
}

// Changes lists pending assignments ordered by member id
func (e *Editor) Changes() []Change {
	changes := make([]Change, 0, len(e.pending))
	for id, to := range e.pending {
		changes = append(changes, Change{
			MemberId: id,
			From:     e.committed[e.index[id]].Role,
			To:       to,
			Failed:   e.failed,
		})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].MemberId < changes[j].MemberId })
	return changes
}

func (e *Editor) Dirty() bool {
	return len(e.pending) > 0
}

// Commit folds the pending assignments into the committed list, called
// once the server accepted them
func (e *Editor) Commit() {
	e.reset(e.Members())
}

// Fail flags the pending assignments after a rejected save, they stay
// in place until Discard or a later Assign
func (e *Editor) Fail() {
	if e.Dirty() {
		e.failed = true
	}
}

func (e *Editor) Failed() bool {
	return e.failed
}

// Discard drops every pending assignment
func (e *Editor) Discard() {
	e.pending = map[int64]protocol.Role{}
	e.failed = false
}
