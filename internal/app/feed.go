package app

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/lonng/onyou/internal/client"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/pkg/hashtag"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

const (
	fileScheme       = "file://"
	imageContentType = "image/jpeg"
)

// FeedItem is a feed entry with its text split for hashtag highlighting
type FeedItem struct {
	protocol.Feed
	Segments []hashtag.Segment
}

// FeedComposer posts image feeds and lists the home timeline
type FeedComposer struct {
	api      ClubAPI
	notifier Notifier
	open     func(name string) (io.ReadCloser, error)
}

func NewFeedComposer(api ClubAPI, n Notifier) *FeedComposer {
	return &FeedComposer{
		api:      api,
		notifier: notifier(n),
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// Timeline returns the home feed
func (f *FeedComposer) Timeline(ctx context.Context) ([]FeedItem, error) {
	feeds, err := f.api.Feeds(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "feeds")
	}
	items := make([]FeedItem, len(feeds))
	for i, feed := range feeds {
		items[i] = FeedItem{Feed: feed, Segments: hashtag.Split(feed.Content)}
	}
	return items, nil
}

// ImageName is the upload name of an image path, the last path segment
func ImageName(p string) string {
	return path.Base(strings.TrimPrefix(p, fileScheme))
}

// Post creates a feed in club with the images at paths
func (f *FeedComposer) Post(ctx context.Context, clubID int64, content string, paths []string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errutil.ErrContentRequired
	}
	if len(paths) == 0 {
		return errutil.ErrImageRequired
	}

	uploads := make([]client.Upload, 0, len(paths))
	for _, p := range paths {
		r, err := f.open(strings.TrimPrefix(p, fileScheme))
		if err != nil {
			return errors.Wrapf(err, "open image %s", p)
		}
		defer r.Close()
		uploads = append(uploads, client.Upload{
			Name:        ImageName(p),
			ContentType: imageContentType,
			Body:        r,
		})
	}

	err := f.api.CreateFeed(ctx, protocol.FeedCreation{ClubId: clubID, Content: content}, uploads)
	if err != nil {
		f.notifier.Notify(LevelDanger, "Posting the feed failed")
		return errors.Wrapf(err, "create feed in club %d", clubID)
	}
	logger.Infof("feed posted to club %d with %d image(s)", clubID, len(paths))
	f.notifier.Notify(LevelSuccess, "Feed posted")
	return nil
}
