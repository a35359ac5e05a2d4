package app

import (
	"context"

	"github.com/lonng/onyou/pkg/paginate"
	"github.com/lonng/onyou/protocol"
)

// ClubBrowser is the infinite club list
type ClubBrowser struct {
	loader *paginate.Loader
}

func NewClubBrowser(api ClubAPI, params protocol.ClubsParams) *ClubBrowser {
	return &ClubBrowser{loader: paginate.NewLoader(api.Clubs, params)}
}

// Browse loads up to pages more pages, stopping early at the end of the
// listing. Failures are logged and returned, the user is not notified.
func (b *ClubBrowser) Browse(ctx context.Context, pages int) ([]protocol.Club, error) {
	for i := 0; i < pages && b.loader.HasMore(); i++ {
		ok, err := b.loader.LoadMore(ctx)
		if err != nil {
			logger.Errorf("browse clubs: %v", err)
			return b.loader.Items(), err
		}
		if !ok {
			break
		}
	}
	return b.loader.Items(), nil
}

// Refresh reloads the list from its first page
func (b *ClubBrowser) Refresh(ctx context.Context) ([]protocol.Club, error) {
	if err := b.loader.Refresh(ctx); err != nil {
		logger.Errorf("refresh clubs: %v", err)
		return nil, err
	}
	return b.loader.Items(), nil
}

// Filter switches to other params, loaded clubs are dropped when they change
func (b *ClubBrowser) Filter(ctx context.Context, params protocol.ClubsParams) (bool, error) {
	return b.loader.SetParams(ctx, params)
}

func (b *ClubBrowser) Clubs() []protocol.Club {
	return b.loader.Items()
}

func (b *ClubBrowser) HasMore() bool {
	return b.loader.HasMore()
}
