// Package roster groups club members by role for the member grid and
// tracks role edits that the server has not confirmed yet.
package roster

import (
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
)

const (
	gridMargin  = 40
	iconSize    = 45
	iconSpacing = 10
)

var titles = map[protocol.Role]string{
	protocol.RoleMaster:  "MASTER",
	protocol.RoleManager: "MANAGER",
	protocol.RoleMember:  "MEMBER",
}

// Bundle is one role group of the member grid
type Bundle struct {
	Title string
	Role  protocol.Role
	Rows  [][]protocol.Member
}

// Count returns the number of members in the bundle
func (b Bundle) Count() int {
	n := 0
	for _, row := range b.Rows {
		n += len(row)
	}
	return n
}

// Partition splits members into the MASTER, MANAGER and MEMBER bundles, in
// that order, each chunked into rows of chunkSize. Input order is kept
// inside a bundle. Members with an unknown role land in MEMBER.
func Partition(members []protocol.Member, chunkSize int) ([]Bundle, error) {
	if chunkSize <= 0 {
		return nil, errutil.ErrInvalidArgument
	}

	groups := map[protocol.Role][]protocol.Member{}
	for _, m := range members {
		role := m.Role
		if !role.Valid() {
			role = protocol.RoleMember
		}
		groups[role] = append(groups[role], m)
	}

	bundles := make([]Bundle, 0, len(protocol.Roles))
	for _, role := range protocol.Roles {
		bundles = append(bundles, Bundle{
			Title: titles[role],
			Role:  role,
			Rows:  chunk(groups[role], chunkSize),
		})
	}
	return bundles, nil
}

func chunk(members []protocol.Member, size int) [][]protocol.Member {
	rows := make([][]protocol.Member, 0, (len(members)+size-1)/size)
	for start := 0; start < len(members); start += size {
		end := start + size
		if end > len(members) {
			end = len(members)
		}
		row := make([]protocol.Member, end-start)
		copy(row, members[start:end])
		rows = append(rows, row)
	}
	return rows
}

// Columns is the number of member icons that fit on one grid row of a
// screen screenWidth points wide. It can be zero or negative on narrow
// screens, Partition rejects such a value.
func Columns(screenWidth int) int {
	avail := screenWidth - gridMargin
	if avail < 0 {
		// round toward negative infinity like the floor of the division
		return (avail - (iconSize + iconSpacing) + 1) / (iconSize + iconSpacing)
	}
	return avail / (iconSize + iconSpacing)
}
