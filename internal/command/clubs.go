package command

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/lonng/onyou/internal/app"
	"github.com/lonng/onyou/protocol"
	"github.com/urfave/cli"
)

func clubsCommand() cli.Command {
	return cli.Command{
		Name:  "clubs",
		Usage: "list clubs",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "pages", Value: 1, Usage: "number of pages to load"},
			cli.StringFlag{Name: "sort", Value: protocol.SortNew, Usage: "NEW, OLD or MEMBER"},
			cli.Int64Flag{Name: "category", Usage: "category id"},
			cli.IntFlag{Name: "min", Usage: "minimum member count"},
			cli.IntFlag{Name: "max", Usage: "maximum member count"},
			cli.BoolFlag{Name: "recruiting", Usage: "only clubs that recruit"},
			cli.BoolFlag{Name: "my", Usage: "only my clubs"},
		},
		Action: listClubs,
	}
}

func clubsParams(c *cli.Context) protocol.ClubsParams {
	p := protocol.ClubsParams{Sort: c.String("sort")}
	if c.IsSet("category") {
		p.CategoryId = protocol.Int64(c.Int64("category"))
	}
	if c.IsSet("min") {
		p.MinMember = protocol.Int(c.Int("min"))
	}
	if c.IsSet("max") {
		p.MaxMember = protocol.Int(c.Int("max"))
	}
	if c.Bool("recruiting") {
		p.ShowRecruiting = protocol.Int(1)
	}
	if c.Bool("my") {
		p.ShowMy = protocol.Int(1)
	}
	return p
}

func listClubs(c *cli.Context) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	browser := app.NewClubBrowser(s, clubsParams(c))
	clubs, err := browser.Browse(context.Background(), c.Int("pages"))

	w := tabwriter.NewWriter(stdout(c), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMEMBERS\tRECRUIT\tINTRO")
	for _, club := range clubs {
		fmt.Fprintf(w, "%d\t%s\t%d/%d\t%s\t%s\n", club.Id, club.Name, club.RecruitNumber, club.MaxNumber, club.RecruitStatus, club.ClubShortDesc)
	}
	w.Flush()
	if browser.HasMore() {
		fmt.Fprintln(stdout(c), "more clubs available, raise --pages")
	}
	return err
}

func clubCommand() cli.Command {
	return cli.Command{
		Name:      "club",
		Usage:     "show a club",
		ArgsUsage: "<club id>",
		Action:    showClub,
	}
}

func showClub(c *cli.Context) error {
	id, err := idArg(c, 0, "club id")
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}

	ctx := context.Background()
	detail, err := s.Club(ctx, id)
	if err != nil {
		return err
	}
	role, err := s.ClubRole(ctx, id)
	if err != nil {
		return err
	}

	out := stdout(c)
	fmt.Fprintf(out, "%s (#%d)\n", detail.Name, detail.Id)
	if detail.OrganizationName != "" {
		fmt.Fprintf(out, "organization: %s\n", detail.OrganizationName)
	}
	fmt.Fprintf(out, "members: %d/%d %s\n", len(detail.Members), detail.MaxNumber, detail.RecruitStatus)
	fmt.Fprintf(out, "intro: %s\n", detail.ClubShortDesc)
	if detail.ClubLongDesc != "" {
		fmt.Fprintf(out, "\n%s\n\n", detail.ClubLongDesc)
	}
	switch {
	case role.Member():
		fmt.Fprintf(out, "you are %s\n", protocol.NormalizeRole(role.Role))
	case role.Applied():
		fmt.Fprintln(out, "your join request is pending")
	default:
		fmt.Fprintln(out, "you are not a member")
	}
	return nil
}

func applyCommand() cli.Command {
	return cli.Command{
		Name:      "apply",
		Usage:     "ask to join a club",
		ArgsUsage: "<club id>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "memo, m", Usage: "message to the club managers"},
		},
		Action: applyClub,
	}
}

func applyClub(c *cli.Context) error {
	id, err := idArg(c, 0, "club id")
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	return app.NewClubService(s, notifier(c)).Apply(context.Background(), id, c.String("memo"))
}

func introCommand() cli.Command {
	return cli.Command{
		Name:      "intro",
		Usage:     "edit the introduction of a club",
		ArgsUsage: "<club id>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "short, s", Usage: "one line description"},
			cli.StringFlag{Name: "long, l", Usage: "full introduction"},
		},
		Action: editIntro,
	}
}

func editIntro(c *cli.Context) error {
	id, err := idArg(c, 0, "club id")
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}

	club, err := app.NewClubService(s, notifier(c)).EditIntroduction(context.Background(), id, c.String("short"), c.String("long"))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout(c), "%s: %s\n", club.Name, club.ClubShortDesc)
	return nil
}
