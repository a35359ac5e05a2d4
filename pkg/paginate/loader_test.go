package paginate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lonng/onyou/protocol"
)

type call struct {
	key    string
	cursor string
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call
	pages map[string]*protocol.ClubListPage
	err   error
	gate  chan struct{}
}

func (f *fakeAPI) fetch(ctx context.Context, params protocol.ClubsParams, cursor string) (*protocol.ClubListPage, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{params.Key(), cursor})
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[cursor], nil
}

func (f *fakeAPI) cursors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cs []string
	for _, c := range f.calls {
		cs = append(cs, c.cursor)
	}
	return cs
}

func threePages() map[string]*protocol.ClubListPage {
	return map[string]*protocol.ClubListPage{
		"":  page(true, "a", "b"),
		"b": page(true, "c"),
		"c": page(false, "d"),
	}
}

func ids(items []protocol.Club) []int64 {
	var out []int64
	for _, c := range items {
		out = append(out, c.Id)
	}
	return out
}

func TestLoaderLoadsUntilExhausted(t *testing.T) {
	api := &fakeAPI{pages: threePages()}
	l := NewLoader(api.fetch, protocol.ClubsParams{})
	ctx := context.Background()

	loaded := 0
	for l.HasMore() {
		ok, err := l.LoadMore(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("no page loaded while more reported")
		}
		loaded++
	}
	if loaded != 3 {
		t.Fatalf("loaded %d pages, want 3", loaded)
	}
	if diff := cmp.Diff([]string{"", "b", "c"}, api.cursors()); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{1, 2, 1, 1}, ids(l.Items())); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	ok, err := l.LoadMore(ctx)
	if ok || err != nil {
		t.Fatalf("load past the end: got (%v, %v)", ok, err)
	}
	if len(api.cursors()) != 3 {
		t.Fatal("fetched past the end")
	}
}

func TestLoaderIgnoresLoadMoreInFlight(t *testing.T) {
	api := &fakeAPI{pages: threePages(), gate: make(chan struct{})}
	l := NewLoader(api.fetch, protocol.ClubsParams{})
	ctx := context.Background()

	done := make(chan error, 1)
	if !l.LoadMoreAsync(ctx, func(ok bool, err error) { done <- err }) {
		t.Fatal("first load not started")
	}

	ok, err := l.LoadMore(ctx)
	if ok || err != nil {
		t.Fatalf("concurrent load more: got (%v, %v)", ok, err)
	}
	if l.LoadMoreAsync(ctx, nil) {
		t.Fatal("concurrent async load more started")
	}

	close(api.gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{""}, api.cursors()); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
	if len(l.Pages()) != 1 {
		t.Fatalf("got %d pages, want 1", len(l.Pages()))
	}
}

func TestLoaderStopsAfterFailure(t *testing.T) {
	api := &fakeAPI{pages: threePages()}
	l := NewLoader(api.fetch, protocol.ClubsParams{})
	ctx := context.Background()

	if _, err := l.LoadMore(ctx); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	api.err = boom
	if _, err := l.LoadMore(ctx); !errors.Is(err, boom) {
		t.Fatalf("got %v, want %v", err, boom)
	}
	if !l.Stopped() || l.HasMore() {
		t.Fatal("loader keeps loading after a failure")
	}

	api.err = nil
	ok, err := l.LoadMore(ctx)
	if ok || err != nil {
		t.Fatalf("load more after failure: got (%v, %v)", ok, err)
	}
	if len(api.cursors()) != 2 {
		t.Fatal("stopped loader fetched")
	}

	if err := l.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if l.Stopped() || len(l.Pages()) != 1 {
		t.Fatalf("refresh did not restart: stopped=%v pages=%d", l.Stopped(), len(l.Pages()))
	}
	if diff := cmp.Diff([]string{"", "b", ""}, api.cursors()); diff != "" {
		t.Fatalf("cursors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderSetParamsDiscardsPages(t *testing.T) {
	api := &fakeAPI{pages: threePages()}
	l := NewLoader(api.fetch, protocol.ClubsParams{Sort: protocol.SortNew})
	ctx := context.Background()

	l.LoadMore(ctx)
	l.LoadMore(ctx)
	if len(l.Pages()) != 2 {
		t.Fatalf("got %d pages, want 2", len(l.Pages()))
	}

	changed, err := l.SetParams(ctx, protocol.ClubsParams{Sort: protocol.SortNew})
	if err != nil || changed {
		t.Fatalf("same params: got (%v, %v)", changed, err)
	}
	if len(l.Pages()) != 2 {
		t.Fatal("same params discarded pages")
	}

	changed, err = l.SetParams(ctx, protocol.ClubsParams{Sort: protocol.SortOld})
	if err != nil || !changed {
		t.Fatalf("new params: got (%v, %v)", changed, err)
	}
	if len(l.Pages()) != 0 || len(l.Items()) != 0 {
		t.Fatal("pages survived a params change")
	}

	if _, err := l.LoadMore(ctx); err != nil {
		t.Fatal(err)
	}
	last := api.calls[len(api.calls)-1]
	if last.cursor != "" || last.key != "sort=OLD" {
		t.Fatalf("unexpected request after params change: %+v", last)
	}
}

func TestLoaderContradictoryPage(t *testing.T) {
	api := &fakeAPI{pages: map[string]*protocol.ClubListPage{"": page(true)}}
	l := NewLoader(api.fetch, protocol.ClubsParams{})
	ctx := context.Background()

	if ok, err := l.LoadMore(ctx); !ok || err != nil {
		t.Fatalf("first page: got (%v, %v)", ok, err)
	}
	if l.HasMore() {
		t.Fatal("empty page with hasNext must end the listing")
	}
	if ok, _ := l.LoadMore(ctx); ok {
		t.Fatal("loaded past a contradictory page")
	}
}
