// Package paginate decides which page of a cursor paginated club listing
// to fetch next and serialises the fetches.
package paginate

import (
	"github.com/lonng/onyou/pkg/errutil"
	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

// NextCursor returns the cursor of the page after pages. more is false when
// the listing is exhausted. An empty pages slice asks for the first page,
// which has no cursor.
//
// A last page that claims hasNext but carries no items (or whose last item
// has no cursor) is treated as the end of the listing.
func NextCursor(pages []*protocol.ClubListPage) (cursor string, more bool) {
	if len(pages) == 0 {
		return "", true
	}

	last := pages[len(pages)-1]
	if last == nil || !last.HasNext {
		return "", false
	}

	items := last.Items()
	if len(items) == 0 {
		return "", false
	}

	cursor = items[len(items)-1].CustomCursor
	if cursor == "" {
		return "", false
	}
	return cursor, true
}

// checkPage reports a page that claims a successor it cannot lead to
func checkPage(page *protocol.ClubListPage) error {
	if !page.HasNext {
		return nil
	}
	items := page.Items()
	if len(items) == 0 {
		return errutil.ErrContradictoryPage
	}
	if items[len(items)-1].CustomCursor == "" {
		return errors.Wrapf(errutil.ErrContradictoryPage, "item %d has no cursor", items[len(items)-1].Id)
	}
	return nil
}
