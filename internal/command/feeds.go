package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/lonng/onyou/internal/app"
	"github.com/urfave/cli"
)

func feedsCommand() cli.Command {
	return cli.Command{
		Name:   "feeds",
		Usage:  "show the home feed",
		Action: listFeeds,
	}
}

func listFeeds(c *cli.Context) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	items, err := app.NewFeedComposer(s, notifier(c)).Timeline(context.Background())
	if err != nil {
		return err
	}

	out := stdout(c)
	for _, item := range items {
		var b strings.Builder
		for _, seg := range item.Segments {
			if seg.Hashtag {
				b.WriteString("[" + seg.Text + "]")
				continue
			}
			b.WriteString(seg.Text)
		}
		fmt.Fprintf(out, "%s @ %s  %s\n%s\n", item.UserName, item.ClubName, item.Created, b.String())
		fmt.Fprintf(out, "likes %d  comments %d\n\n", item.LikesCount, item.CommentCount)
	}
	return nil
}

func postCommand() cli.Command {
	return cli.Command{
		Name:      "post",
		Usage:     "post images with text to a club feed",
		ArgsUsage: "<club id> <image>...",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "content, m", Usage: "post text"},
		},
		Action: postFeed,
	}
}

func postFeed(c *cli.Context) error {
	id, err := idArg(c, 0, "club id")
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	return app.NewFeedComposer(s, notifier(c)).Post(context.Background(), id, c.String("content"), c.Args().Tail())
}
