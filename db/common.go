package db

import (
	"fmt"
)

type Option func(setting *Setting)
type Closer func()

type Setting struct {
	ShowSQL      bool
	MaxOpenConns int
	MaxIdleConns int
}

func MaxIdleConnOption(i int) Option {
	return func(s *Setting) {
		s.MaxIdleConns = i
	}
}

func MaxOpenConnOption(i int) Option {
	return func(s *Setting) {
		s.MaxOpenConns = i
	}
}

func ShowSQLOption(show bool) Option {
	return func(s *Setting) {
		s.ShowSQL = show
	}
}

// Build data source name
func BuildDSN(host string, port int, username, password, dbname, args string) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", username, password, host, port, dbname)
	if args != "" {
		dsn += "?" + args
	}
	return dsn
}
