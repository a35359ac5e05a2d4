package command

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

const (
	envPrefix         = "ONYOU"
	defaultConfigFile = "./configs/onyou.toml"
)

func setDefaults() {
	viper.SetDefault("core.debug", false)
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.rate_limit", 0)
	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("database.dsn", "./onyou.db")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.args", "charset=utf8mb4&parseTime=true")
	viper.SetDefault("database.show_sql", false)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("display.screen_width", 390)
}

// Before loads the configuration and sets up logging, it runs ahead of
// every command
func Before(c *cli.Context) error {
	viper.SetConfigType("toml")
	setDefaults()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path := c.GlobalString("config")
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", path)
		}
	} else if c.GlobalIsSet("config") {
		return errors.Wrapf(err, "config %s", path)
	}

	if c.GlobalBool("debug") {
		viper.Set("core.debug", true)
	}
	if token := c.GlobalString("token"); token != "" {
		viper.Set("auth.token", token)
	}

	log.SetFormatter(&log.TextFormatter{DisableColors: true})
	if viper.GetBool("core.debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("config file: %s", viper.ConfigFileUsed())
	return nil
}

// Flags are the global flags of the onyou command
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: defaultConfigFile,
			Usage: "load configuration from `FILE`",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log requests and responses",
		},
		cli.StringFlag{
			Name:  "token",
			Usage: "access token, overrides auth.token",
		},
	}
}
