// Package command implements the onyou subcommands.
package command

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lonng/onyou/db"
	"github.com/lonng/onyou/internal/app"
	"github.com/lonng/onyou/internal/auth"
	"github.com/lonng/onyou/internal/client"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

var logger = log.WithField("component", "command")

// Commands lists every subcommand
func Commands() []cli.Command {
	return []cli.Command{
		loginCommand(),
		clubsCommand(),
		clubCommand(),
		applyCommand(),
		introCommand(),
		membersCommand(),
		roleCommand(),
		feedsCommand(),
		postCommand(),
	}
}

func newClient() (*client.Client, error) {
	return client.New(
		viper.GetString("api.base_url"),
		client.WithTimeout(viper.GetDuration("api.timeout")),
		client.WithRateLimit(viper.GetDuration("api.rate_limit")),
	)
}

func newSession() (*client.Session, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	cred := auth.NewCredential(viper.GetString("auth.token"))
	if !cred.Valid() {
		return nil, errors.Wrap(errutil.ErrTokenNotFound, "no access token, run login and set auth.token or ONYOU_AUTH_TOKEN")
	}
	logger.Debugf("session with token %s", cred)
	return c.Session(cred), nil
}

func dbStartup() (db.Closer, error) {
	driver := viper.GetString("database.driver")
	dsn := viper.GetString("database.dsn")
	if driver == db.DriverMySQL && viper.GetString("database.host") != "" {
		dsn = db.BuildDSN(
			viper.GetString("database.host"),
			viper.GetInt("database.port"),
			viper.GetString("database.username"),
			viper.GetString("database.password"),
			viper.GetString("database.dbname"),
			viper.GetString("database.args"))
	}

	return db.Startup(
		driver,
		dsn,
		db.MaxIdleConnOption(viper.GetInt("database.max_idle_conns")),
		db.MaxOpenConnOption(viper.GetInt("database.max_open_conns")),
		db.ShowSQLOption(viper.GetBool("database.show_sql")))
}

func stdout(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// toasts go to stderr so stdout stays scriptable
func notifier(c *cli.Context) app.Notifier {
	w := c.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return app.NotifierFunc(func(level app.Level, msg string) {
		fmt.Fprintf(w, "[%s] %s\n", level, msg)
	})
}

func idArg(c *cli.Context, i int, name string) (int64, error) {
	s := c.Args().Get(i)
	if s == "" {
		return 0, errors.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q", name, s)
	}
	return id, nil
}
