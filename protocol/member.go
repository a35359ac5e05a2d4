package protocol

import (
	"encoding/json"
	"strings"
)

// Role of a user inside a club
type Role int

const (
	RoleMember Role = iota
	RoleManager
	RoleMaster
)

var roleNames = [...]string{
	RoleMember:  "MEMBER",
	RoleManager: "MANAGER",
	RoleMaster:  "MASTER",
}

// Roles lists every role in display order
var Roles = []Role{RoleMaster, RoleManager, RoleMember}

func (r Role) String() string {
	if r < RoleMember || r > RoleMaster {
		return roleNames[RoleMember]
	}
	return roleNames[r]
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r >= RoleMember && r <= RoleMaster
}

// ParseRole accepts the wire name of a role (case insensitive), the second
// result is false for anything else
func ParseRole(s string) (Role, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return RoleMember, false
}

// NormalizeRole maps unknown role names to RoleMember
func NormalizeRole(s string) Role {
	r, _ := ParseRole(s)
	return r
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON never fails: null, unknown names and non string values
// all decode to RoleMember
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*r = RoleMember
		return nil
	}
	*r = NormalizeRole(s)
	return nil
}

type (
	Member struct {
		Id        int64  `json:"id"`
		Name      string `json:"name"`
		Thumbnail string `json:"thumbnail,omitempty"`
		Role      Role   `json:"role"`
	}

	RoleChange struct {
		UserId int64 `json:"userId"`
		Role   Role  `json:"role"`
	}

	RoleChangeRequest struct {
		Data []RoleChange `json:"data"`
	}
)
