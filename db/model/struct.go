package model

// RoleEdit is a role assignment staged locally and not yet accepted by
// the server, one row per club member
type RoleEdit struct {
	Id        int64
	ClubId    int64  `xorm:"not null unique(club_member) index BIGINT(20) default 0"`
	MemberId  int64  `xorm:"not null unique(club_member) BIGINT(20) default 0"`
	FromRole  string `xorm:"not null VARCHAR(16) default ''"`
	ToRole    string `xorm:"not null VARCHAR(16) default ''"`
	Status    int    `xorm:"not null TINYINT(3) default 1"`
	BatchId   string `xorm:"not null VARCHAR(36) default ''"`
	UpdatedAt int64  `xorm:"not null BIGINT(20) default 0"`
}
