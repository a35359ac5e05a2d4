package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lonng/onyou/db"
	"github.com/lonng/onyou/internal/app"
	"github.com/lonng/onyou/pkg/roster"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
)

func membersCommand() cli.Command {
	return cli.Command{
		Name:      "members",
		Usage:     "show the member grid of a club, pending role changes applied",
		ArgsUsage: "<club id>",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "width", Usage: "screen width, defaults to display.screen_width"},
		},
		Action: withMembers(showMembers),
	}
}

func roleCommand() cli.Command {
	return cli.Command{
		Name:  "role",
		Usage: "edit member roles, changes are staged until saved",
		Subcommands: []cli.Command{
			{
				Name:      "set",
				Usage:     "stage a role change",
				ArgsUsage: "<club id> <member id> <MASTER|MANAGER|MEMBER>",
				Action:    withMembers(setRole),
			},
			{
				Name:      "pending",
				Usage:     "list staged role changes",
				ArgsUsage: "<club id>",
				Action:    withMembers(pendingRoles),
			},
			{
				Name:      "save",
				Usage:     "send staged role changes to the server",
				ArgsUsage: "<club id>",
				Action:    withMembers(saveRoles),
			},
			{
				Name:      "discard",
				Usage:     "drop staged role changes",
				ArgsUsage: "<club id>",
				Action:    withMembers(discardRoles),
			},
		},
	}
}

// withMembers loads the member manager of the club named by the first
// argument, the local store stays open while fn runs
func withMembers(fn func(*cli.Context, *app.MemberManager) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := idArg(c, 0, "club id")
		if err != nil {
			return err
		}
		s, err := newSession()
		if err != nil {
			return err
		}

		closer, err := dbStartup()
		if err != nil {
			return err
		}
		defer closer()

		m := app.NewMemberManager(s, db.RoleEditStore{}, notifier(c))
		if err := m.Load(context.Background(), id); err != nil {
			return err
		}
		return fn(c, m)
	}
}

func showMembers(c *cli.Context, m *app.MemberManager) error {
	width := c.Int("width")
	if width == 0 {
		width = viper.GetInt("display.screen_width")
	}
	columns := roster.Columns(width)
	if columns <= 0 {
		logger.Warnf("screen width %d fits no member icon, using one column", width)
		columns = 1
	}

	bundles, err := m.Bundles(columns)
	if err != nil {
		return err
	}

	out := stdout(c)
	fmt.Fprintf(out, "%s\n", m.Club().Name)
	for _, b := range bundles {
		fmt.Fprintf(out, "\n%s (%d)\n", b.Title, b.Count())
		for _, row := range b.Rows {
			names := make([]string, len(row))
			for i, mem := range row {
				names[i] = fmt.Sprintf("%s#%d", mem.Name, mem.Id)
			}
			fmt.Fprintf(out, "  %s\n", strings.Join(names, "  "))
		}
	}
	if n := len(m.Changes()); n > 0 {
		fmt.Fprintf(out, "\n%d unsaved role change(s)\n", n)
	}
	return nil
}

func setRole(c *cli.Context, m *app.MemberManager) error {
	memberID, err := idArg(c, 1, "member id")
	if err != nil {
		return err
	}
	role, ok := protocol.ParseRole(c.Args().Get(2))
	if !ok {
		return errors.Errorf("invalid role %q", c.Args().Get(2))
	}
	if err := m.Assign(memberID, role); err != nil {
		return err
	}
	return printChanges(stdout(c), m)
}

func pendingRoles(c *cli.Context, m *app.MemberManager) error {
	return printChanges(stdout(c), m)
}

func printChanges(out io.Writer, m *app.MemberManager) error {
	changes := m.Changes()
	if len(changes) == 0 {
		fmt.Fprintln(out, "no pending role changes")
		return nil
	}

	names := map[int64]string{}
	for _, mem := range m.Club().Members {
		names[mem.Id] = mem.Name
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tNAME\tFROM\tTO\tSTATUS")
	for _, ch := range changes {
		status := "pending"
		if ch.Failed {
			status = "failed"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", ch.MemberId, names[ch.MemberId], ch.From, ch.To, status)
	}
	return w.Flush()
}

func saveRoles(c *cli.Context, m *app.MemberManager) error {
	return m.Save(context.Background())
}

func discardRoles(c *cli.Context, m *app.MemberManager) error {
	n := len(m.Changes())
	if err := m.Discard(); err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "%d role change(s) discarded\n", n)
	return nil
}
