package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/pkg/hashtag"
	"github.com/lonng/onyou/protocol"
	pkgerrors "github.com/pkg/errors"
)

type closeCounter struct {
	io.Reader
	closed *int
}

func (c closeCounter) Close() error {
	*c.closed++
	return nil
}

func TestImageName(t *testing.T) {
	cases := map[string]string{
		"file:///data/user/0/cache/IMG_01.jpg": "IMG_01.jpg",
		"/tmp/a.jpg":                           "a.jpg",
		"b.jpg":                                "b.jpg",
	}
	for in, want := range cases {
		if got := ImageName(in); got != want {
			t.Errorf("ImageName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPost(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	f := NewFeedComposer(api, rec)

	var opened []string
	closed := 0
	f.open = func(name string) (io.ReadCloser, error) {
		opened = append(opened, name)
		return closeCounter{strings.NewReader("img"), &closed}, nil
	}

	err := f.Post(context.Background(), 3, "  #weekend hike ", []string{"file:///cache/a.jpg", "/tmp/b.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/cache/a.jpg", "/tmp/b.jpg"}, opened); diff != "" {
		t.Fatalf("opened (-want +got):\n%s", diff)
	}
	if closed != 2 {
		t.Fatalf("%d files closed", closed)
	}
	if diff := cmp.Diff([]protocol.FeedCreation{{ClubId: 3, Content: "#weekend hike"}}, api.posted); diff != "" {
		t.Fatalf("posted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"a.jpg", "b.jpg"}}, api.uploads); diff != "" {
		t.Fatalf("uploads (-want +got):\n%s", diff)
	}
	if rec.levels()[0] != LevelSuccess {
		t.Fail()
	}
}

func TestPostValidation(t *testing.T) {
	f := NewFeedComposer(&fakeAPI{}, &recorder{})
	if err := f.Post(context.Background(), 3, "  ", []string{"a.jpg"}); err != errutil.ErrContentRequired {
		t.Fatalf("got %v", err)
	}
	if err := f.Post(context.Background(), 3, "hi", nil); err != errutil.ErrImageRequired {
		t.Fatalf("got %v", err)
	}
}

func TestPostFailure(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	f := NewFeedComposer(&fakeAPI{postErr: boom}, rec)
	f.open = func(name string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("img")), nil
	}

	if err := f.Post(context.Background(), 3, "hi", []string{"a.jpg"}); pkgerrors.Cause(err) != boom {
		t.Fatalf("got %v", err)
	}
	if rec.levels()[0] != LevelDanger {
		t.Fail()
	}
}

func TestTimeline(t *testing.T) {
	api := &fakeAPI{feeds: []protocol.Feed{{Id: 1, Content: "new #club"}}}
	items, err := NewFeedComposer(api, nil).Timeline(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []hashtag.Segment{{Text: "new "}, {Text: "#club", Hashtag: true}}
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if diff := cmp.Diff(want, items[0].Segments); diff != "" {
		t.Fatalf("segments (-want +got):\n%s", diff)
	}
}
