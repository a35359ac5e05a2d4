package db

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

const (
	defaultMaxConns = 10
)

// RoleEdit.Status
const (
	RoleEditStatusPending = 1 //waiting for save
	RoleEditStatusFailed  = 2 //last save was rejected
)
