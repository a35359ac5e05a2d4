package paginate

import (
	"context"
	"sync"

	"github.com/lonng/onyou/pkg/async"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var logger = log.WithField("component", "paginate")

// Fetcher requests one page of the listing selected by params, cursor is
// empty for the first page
type Fetcher func(ctx context.Context, params protocol.ClubsParams, cursor string) (*protocol.ClubListPage, error)

// Loader accumulates the pages of one listing. At most one fetch is in
// flight, a LoadMore issued meanwhile is dropped.
type Loader struct {
	fetch    Fetcher
	inflight *semaphore.Weighted

	mu      sync.RWMutex
	params  protocol.ClubsParams
	key     string
	pages   []*protocol.ClubListPage
	stopped bool
}

func NewLoader(fetch Fetcher, params protocol.ClubsParams) *Loader {
	return &Loader{
		fetch:    fetch,
		inflight: semaphore.NewWeighted(1),
		params:   params,
		key:      params.Key(),
	}
}

// LoadMore fetches the next page if there is one. It reports whether a
// page was appended. A call made while another fetch is running, after a
// failure, or once the listing is exhausted does nothing.
func (l *Loader) LoadMore(ctx context.Context) (bool, error) {
	if !l.inflight.TryAcquire(1) {
		logger.Debug("fetch in flight, load more ignored")
		return false, nil
	}
	defer l.inflight.Release(1)

	return l.loadNext(ctx)
}

// LoadMoreAsync is LoadMore with the fetch run in the background. The
// in flight check happens before it returns; done is called only when a
// fetch was actually started, done may be nil.
func (l *Loader) LoadMoreAsync(ctx context.Context, done func(bool, error)) bool {
	if !l.inflight.TryAcquire(1) {
		logger.Debug("fetch in flight, load more ignored")
		return false
	}

	async.Run(func() {
		defer l.inflight.Release(1)
		ok, err := l.loadNext(ctx)
		if done != nil {
			done(ok, err)
		}
	})
	return true
}

// Refresh waits for the running fetch, drops every page and loads the
// first page again. It also clears a previous failure.
func (l *Loader) Refresh(ctx context.Context) error {
	if err := l.inflight.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "paginate: refresh")
	}
	defer l.inflight.Release(1)

	l.mu.Lock()
	l.resetLocked()
	l.mu.Unlock()

	_, err := l.loadNext(ctx)
	return err
}

// SetParams switches the listing. Pages fetched with other params are
// discarded because their cursors mean nothing under the new ones. It
// reports whether the params changed.
func (l *Loader) SetParams(ctx context.Context, params protocol.ClubsParams) (bool, error) {
	key := params.Key()

	l.mu.RLock()
	same := key == l.key
	l.mu.RUnlock()
	if same {
		return false, nil
	}

	if err := l.inflight.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "paginate: set params")
	}
	defer l.inflight.Release(1)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.params = params
	l.key = key
	l.resetLocked()
	logger.Debugf("params changed to %q, pages discarded", key)
	return true, nil
}

// caller holds the inflight semaphore, resets are excluded meanwhile
func (l *Loader) loadNext(ctx context.Context) (bool, error) {
	l.mu.RLock()
	cursor, more := NextCursor(l.pages)
	stopped := l.stopped
	params := l.params
	l.mu.RUnlock()

	if stopped || !more {
		return false, nil
	}

	page, err := l.fetch(ctx, params, cursor)
	if err != nil {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		logger.Errorf("fetch page (cursor=%q) failed: %v", cursor, err)
		return false, errors.Wrapf(err, "paginate: fetch cursor %q", cursor)
	}
	if page == nil {
		page = &protocol.ClubListPage{}
	}
	if err := checkPage(page); err != nil {
		logger.Warnf("cursor %q: %v, stop paging", cursor, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages = append(l.pages, page)
	logger.Debugf("page %d loaded, %d items, hasNext=%v", len(l.pages), len(page.Items()), page.HasNext)
	return true, nil
}

func (l *Loader) resetLocked() {
	l.pages = nil
	l.stopped = false
}

// Items flattens every loaded page in order
func (l *Loader) Items() []protocol.Club {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var items []protocol.Club
	for _, p := range l.pages {
		items = append(items, p.Items()...)
	}
	return items
}

func (l *Loader) Pages() []*protocol.ClubListPage {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pages := make([]*protocol.ClubListPage, len(l.pages))
	copy(pages, l.pages)
	return pages
}

// HasMore reports whether LoadMore could fetch another page
func (l *Loader) HasMore() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, more := NextCursor(l.pages)
	return more && !l.stopped
}

// Stopped reports whether a failed fetch halted loading
func (l *Loader) Stopped() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stopped
}

func (l *Loader) Params() protocol.ClubsParams {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.params
}
