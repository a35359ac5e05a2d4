package db

import (
	"github.com/go-xorm/core"
	log "github.com/sirupsen/logrus"
)

// Logger routes xorm logs to logrus
type Logger struct {
	*log.Entry
	level   core.LogLevel
	showSQL bool
}

var _ core.ILogger = (*Logger)(nil)

func (l *Logger) SetLevel(level core.LogLevel) {
	l.level = level
}

func (l *Logger) Level() core.LogLevel {
	return l.level
}

func (l *Logger) ShowSQL(show ...bool) {
	if len(show) == 0 {
		l.showSQL = true
		return
	}
	l.showSQL = show[0]
}

func (l *Logger) IsShowSQL() bool { return l.showSQL }
