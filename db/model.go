package db

import (
	"time"

	"github.com/lonng/onyou/db/model"

	_ "github.com/go-sql-driver/mysql"
	"github.com/go-xorm/xorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const pingInterval = 5 * time.Minute

var (
	database *xorm.Engine
	logger   = log.WithField("component", "model")
)

// Startup opens the local store and syncs its schema. driver is sqlite3
// (dsn is a file path) or mysql.
func Startup(driver, dsn string, opts ...Option) (Closer, error) {
	settings := &Setting{
		MaxIdleConns: defaultMaxConns,
		MaxOpenConns: defaultMaxConns,
	}

	// options handle
	for _, opt := range opts {
		opt(settings)
	}

	switch driver {
	case DriverSQLite:
		// sqlite allows a single writer
		settings.MaxOpenConns = 1
		settings.MaxIdleConns = 1
	case DriverMySQL:
	default:
		return nil, errors.Errorf("db: unsupported driver %q", driver)
	}

	logger.Infof("Driver=%s ShowSQL=%t MaxIdleConn=%v MaxOpenConn=%v", driver, settings.ShowSQL, settings.MaxIdleConns, settings.MaxOpenConns)

	// create database instance
	db, err := xorm.NewEngine(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "db: open")
	}

	db.SetLogger(&Logger{Entry: logger.WithField("orm", "xorm")})
	db.SetMaxIdleConns(settings.MaxIdleConns)
	db.SetMaxOpenConns(settings.MaxOpenConns)
	db.ShowSQL(settings.ShowSQL)

	if err := syncSchema(db, driver); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "db: sync schema")
	}
	database = db

	done := make(chan struct{})
	if driver == DriverMySQL {
		go keepalive(db, done)
	}

	closer := func() {
		close(done)
		db.Close()
		logger.Info("stopped")
	}
	return closer, nil
}

// MustStartup is Startup panicking on error
func MustStartup(driver, dsn string, opts ...Option) Closer {
	closer, err := Startup(driver, dsn, opts...)
	if err != nil {
		panic(err)
	}
	return closer
}

// ping periodically to keep the pool connections alive
func keepalive(db *xorm.Engine, done chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := db.Ping(); err != nil {
				logger.Error(err)
			}
		case <-done:
			return
		}
	}
}

func syncSchema(db *xorm.Engine, driver string) error {
	beans := []interface{}{
		new(model.RoleEdit),
	}
	if driver == DriverMySQL {
		return db.StoreEngine("InnoDB").Sync2(beans...)
	}
	return db.Sync2(beans...)
}
