package command

import (
	"context"
	"fmt"

	"github.com/lonng/onyou/internal/app"
	"github.com/urfave/cli"
)

func loginCommand() cli.Command {
	return cli.Command{
		Name:  "login",
		Usage: "sign in and print the access token",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "email, e", Usage: "account `EMAIL`"},
			cli.StringFlag{Name: "password, p", Usage: "account password", EnvVar: "ONYOU_PASSWORD"},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	cl, err := newClient()
	if err != nil {
		return err
	}

	cred, err := app.Login(context.Background(), cl, notifier(c), c.String("email"), c.String("password"))
	if err != nil {
		return err
	}
	token, _ := cred.Token()
	fmt.Fprintln(stdout(c), token.AccessToken)
	return nil
}
