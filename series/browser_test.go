package series

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/showdeck/showdeck/shared"
	"github.com/showdeck/showdeck/tvmaze"
)

type fakeCatalog struct {
	mu          sync.Mutex
	pageCalls   int
	searchCalls int

	pageFn   func(page int) ([]tvmaze.Series, error)
	searchFn func(name string) ([]tvmaze.Series, error)
}

func (f *fakeCatalog) SeriesPage(ctx context.Context, page int) ([]tvmaze.Series, error) {
	f.mu.Lock()
	f.pageCalls++
	f.mu.Unlock()
	return f.pageFn(page)
}

func (f *fakeCatalog) SearchSeries(ctx context.Context, name string) ([]tvmaze.Series, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	return f.searchFn(name)
}

func (f *fakeCatalog) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCalls, f.searchCalls
}

func makeSeries(start, count int) []tvmaze.Series {
	series := make([]tvmaze.Series, 0, count)
	for i := 0; i < count; i++ {
		series = append(series, tvmaze.Series{
			ID:   start + i,
			Name: fmt.Sprintf("Series %d", start+i),
		})
	}
	return series
}

func TestLoadMore_AppendsFullPages(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(page*shared.PageSize, shared.PageSize), nil
		},
	}
	b := NewBrowser(catalog)

	b.LoadMore(context.Background())
	snap := b.Snapshot()
	if len(snap.Items) != shared.PageSize {
		t.Fatalf("expected %d items, got %d", shared.PageSize, len(snap.Items))
	}
	if !snap.HasMore {
		t.Error("expected more pages to be available")
	}

	b.LoadMore(context.Background())
	snap = b.Snapshot()
	if len(snap.Items) != 2*shared.PageSize {
		t.Fatalf("expected %d items, got %d", 2*shared.PageSize, len(snap.Items))
	}
	if snap.Items[shared.PageSize].ID != shared.PageSize {
		t.Errorf("pages appended out of order, got id %d", snap.Items[shared.PageSize].ID)
	}
	if snap.Status != StatusLoaded {
		t.Errorf("expected loaded status, got %s", snap.Status)
	}
}

func TestLoadMore_EmptyPageEndsPaging(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			if page == 0 {
				return makeSeries(0, shared.PageSize), nil
			}
			return []tvmaze.Series{}, nil
		},
	}
	b := NewBrowser(catalog)

	b.LoadMore(context.Background())
	b.LoadMore(context.Background())

	snap := b.Snapshot()
	if snap.HasMore {
		t.Error("expected paging to be exhausted")
	}
	if len(snap.Items) != shared.PageSize {
		t.Errorf("expected the loaded items to survive, got %d", len(snap.Items))
	}

	// once exhausted, further calls must not reach the catalog
	b.LoadMore(context.Background())
	pageCalls, _ := catalog.calls()
	if pageCalls != 2 {
		t.Errorf("expected 2 page fetches, got %d", pageCalls)
	}
}

func TestLoadMore_SkipsWhileFetchInFlight(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	release := make(chan struct{})
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			close(started)
			<-release
			return makeSeries(0, shared.PageSize), nil
		},
	}
	b := NewBrowser(catalog)

	done := make(chan struct{})
	go func() {
		b.LoadMore(context.Background())
		close(done)
	}()
	<-started

	// returns immediately without a second fetch
	b.LoadMore(context.Background())
	close(release)
	<-done

	pageCalls, _ := catalog.calls()
	if pageCalls != 1 {
		t.Errorf("expected a single page fetch, got %d", pageCalls)
	}
	if len(b.Snapshot().Items) != shared.PageSize {
		t.Errorf("expected one page of items, got %d", len(b.Snapshot().Items))
	}
}

func TestLoadMore_ErrorKeepsExistingItems(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			if page == 0 {
				return makeSeries(0, shared.PageSize), nil
			}
			return nil, &tvmaze.Error{Kind: tvmaze.KindNetwork, Message: "failed to fetch series data"}
		},
	}
	b := NewBrowser(catalog)

	b.LoadMore(context.Background())
	b.LoadMore(context.Background())

	snap := b.Snapshot()
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if snap.Error == nil || snap.Error.Message != "failed to fetch series data" {
		t.Errorf("unexpected error payload: %+v", snap.Error)
	}
	if len(snap.Items) != shared.PageSize {
		t.Errorf("expected prior items to stay visible, got %d", len(snap.Items))
	}
	if !snap.HasMore {
		t.Error("a failed page must stay retryable")
	}
}

func TestApplySearch_SlicesPoolByPage(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		searchFn: func(name string) ([]tvmaze.Series, error) {
			return makeSeries(100, 25), nil
		},
	}
	b := NewBrowser(catalog)

	b.SetSearchTerm("breaking")
	b.ApplySearch(context.Background(), "breaking")

	snap := b.Snapshot()
	if snap.Mode != ModeSearch {
		t.Fatalf("expected search mode, got %s", snap.Mode)
	}
	if len(snap.Items) != shared.PageSize {
		t.Fatalf("expected first slice of %d, got %d", shared.PageSize, len(snap.Items))
	}
	if !snap.HasMore {
		t.Fatal("expected a second slice to be available")
	}

	b.LoadMore(context.Background())
	snap = b.Snapshot()
	if len(snap.Items) != 25 {
		t.Fatalf("expected all 25 results after load more, got %d", len(snap.Items))
	}
	if snap.HasMore {
		t.Error("expected the pool to be exhausted")
	}

	pageCalls, searchCalls := catalog.calls()
	if pageCalls != 0 || searchCalls != 1 {
		t.Errorf("search paging must stay local, got %d page and %d search calls", pageCalls, searchCalls)
	}
}

func TestApplySearch_ErrorKeepsItemsAndMode(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(0, shared.PageSize), nil
		},
		searchFn: func(name string) ([]tvmaze.Series, error) {
			return nil, &tvmaze.Error{Kind: tvmaze.KindTransport, Message: "error searching series: Internal Server Error", Status: 500}
		},
	}
	b := NewBrowser(catalog)
	b.LoadMore(context.Background())

	b.ApplySearch(context.Background(), "breaking")

	snap := b.Snapshot()
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if snap.Error == nil || snap.Error.Status != 500 {
		t.Errorf("unexpected error payload: %+v", snap.Error)
	}
	if snap.Mode != ModeBrowse {
		t.Errorf("a failed search must not switch modes, got %s", snap.Mode)
	}
	if len(snap.Items) != shared.PageSize {
		t.Errorf("expected prior items to stay visible, got %d", len(snap.Items))
	}
}

func TestApplySearch_EmptyTermRestoresBrowseWithoutFetching(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		searchFn: func(name string) ([]tvmaze.Series, error) {
			return makeSeries(100, 5), nil
		},
	}
	b := NewBrowser(catalog)
	b.ApplySearch(context.Background(), "breaking")

	b.SetSearchTerm("")
	b.ApplySearch(context.Background(), "")

	snap := b.Snapshot()
	if snap.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %s", snap.Mode)
	}
	if len(snap.Items) != 0 {
		t.Errorf("expected the list to clear, got %d items", len(snap.Items))
	}
	if snap.Status != StatusIdle {
		t.Errorf("expected idle status, got %s", snap.Status)
	}
	if !snap.HasMore {
		t.Error("browse mode must be resumable")
	}

	pageCalls, _ := catalog.calls()
	if pageCalls != 0 {
		t.Errorf("clearing a search must not fetch, got %d page calls", pageCalls)
	}
}

func TestApplySearch_EmptyTermInBrowseIsNoOp(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(0, shared.PageSize), nil
		},
	}
	b := NewBrowser(catalog)
	b.LoadMore(context.Background())
	before := b.Snapshot()

	b.ApplySearch(context.Background(), "   ")

	if diff := cmp.Diff(before, b.Snapshot()); diff != "" {
		t.Error(diff)
	}
}

func TestRefresh_ClearsSearchAndReloadsBrowse(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(0, shared.PageSize), nil
		},
		searchFn: func(name string) ([]tvmaze.Series, error) {
			return makeSeries(100, 10), nil
		},
	}
	b := NewBrowser(catalog)
	b.SetSearchTerm("breaking")
	b.ApplySearch(context.Background(), "breaking")

	b.Refresh(context.Background())

	snap := b.Snapshot()
	if snap.Mode != ModeBrowse {
		t.Fatalf("expected browse mode, got %s", snap.Mode)
	}
	if snap.SearchTerm != "" {
		t.Errorf("expected the search box to clear, got %q", snap.SearchTerm)
	}
	if len(snap.Items) != shared.PageSize {
		t.Errorf("expected a fresh first page, got %d items", len(snap.Items))
	}
	if snap.Items[0].ID != 0 {
		t.Errorf("expected browse items, got id %d", snap.Items[0].ID)
	}
}

func TestRefreshOnFocus_OnlyFiresOnEmptyBrowse(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(0, shared.PageSize), nil
		},
		searchFn: func(name string) ([]tvmaze.Series, error) {
			return makeSeries(100, 3), nil
		},
	}
	b := NewBrowser(catalog)

	b.RefreshOnFocus(context.Background())
	if pageCalls, _ := catalog.calls(); pageCalls != 1 {
		t.Fatalf("expected the empty list to trigger a fetch, got %d calls", pageCalls)
	}

	// populated list stays as it is
	b.RefreshOnFocus(context.Background())
	if pageCalls, _ := catalog.calls(); pageCalls != 1 {
		t.Errorf("expected no refetch with items on screen, got %d calls", pageCalls)
	}

	// search mode never refreshes on focus
	b.ApplySearch(context.Background(), "breaking")
	b.RefreshOnFocus(context.Background())
	if pageCalls, _ := catalog.calls(); pageCalls != 1 {
		t.Errorf("expected no refetch in search mode, got %d calls", pageCalls)
	}
}

func TestStaleResponse_NeverClobbersNewerState(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			return makeSeries(0, shared.PageSize), nil
		},
		searchFn: func(name string) ([]tvmaze.Series, error) {
			close(started)
			<-release
			return makeSeries(100, 10), nil
		},
	}
	b := NewBrowser(catalog)

	done := make(chan struct{})
	go func() {
		b.ApplySearch(context.Background(), "slow query")
		close(done)
	}()
	<-started

	// refresh supersedes the search that is still in flight
	b.Refresh(context.Background())
	close(release)
	<-done

	snap := b.Snapshot()
	if snap.Mode != ModeBrowse {
		t.Fatalf("stale search response overwrote the refresh, mode is %s", snap.Mode)
	}
	if len(snap.Items) != shared.PageSize || snap.Items[0].ID != 0 {
		t.Errorf("expected the refreshed browse page, got %d items", len(snap.Items))
	}
}

func TestClose_DropsPendingResponses(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	started := make(chan struct{})
	catalog := &fakeCatalog{
		pageFn: func(page int) ([]tvmaze.Series, error) {
			close(started)
			<-release
			return makeSeries(0, shared.PageSize), nil
		},
	}
	b := NewBrowser(catalog)

	done := make(chan struct{})
	go func() {
		b.LoadMore(context.Background())
		close(done)
	}()
	<-started

	b.Close()
	close(release)
	<-done

	if len(b.Snapshot().Items) != 0 {
		t.Error("a closed browser must drop in-flight results")
	}
}
