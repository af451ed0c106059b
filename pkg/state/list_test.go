package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

func pagesOf(items []string, size int) FetchFunc[string] {
	return func(_ context.Context, page int) (model.Page[string], error) {
		return model.NewPage(items, page, size), nil
	}
}

func TestListLifecycle(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	list := NewList(pagesOf(items, 2))

	snap := list.Snapshot()
	assert.Equal(t, Idle, snap.Phase)

	require.NoError(t, list.Load(context.Background()))

	snap = list.Snapshot()
	assert.Equal(t, Loaded, snap.Phase)
	assert.Equal(t, []string{"a", "b"}, snap.Page.Content)
	assert.Equal(t, int64(5), snap.Page.TotalElements)
	assert.Equal(t, 3, snap.Page.TotalPages)
}

func TestListErrorPhase(t *testing.T) {
	boom := errors.New("backend down")
	list := NewList(func(context.Context, int) (model.Page[string], error) {
		return model.Page[string]{}, boom
	})

	err := list.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Failed, list.Snapshot().Phase)

	// A successful refetch recovers.
	require.NoError(t, list.SetFetch(context.Background(), pagesOf([]string{"x"}, 2)))
	snap := list.Snapshot()
	assert.Equal(t, Loaded, snap.Phase)
	assert.Nil(t, snap.Err)
}

func TestPageBeyondEndIsEmptyNotError(t *testing.T) {
	list := NewList(pagesOf([]string{"a", "b", "c"}, 2))

	require.NoError(t, list.SetPage(context.Background(), 7))

	snap := list.Snapshot()
	assert.Equal(t, Loaded, snap.Phase)
	assert.Empty(t, snap.Page.Content)
	assert.Equal(t, 7, snap.Page.Number)
	assert.Equal(t, 2, snap.Page.TotalPages)
}

func TestFilterChangeResetsToPageZero(t *testing.T) {
	filtered := []string{"NEW-1", "NEW-2"}
	all := []string{"r1", "r2", "r3", "r4", "r5", "r6"}

	list := NewList(pagesOf(filtered, 2))
	require.NoError(t, list.Load(context.Background()))
	require.NoError(t, list.SetPage(context.Background(), 2))
	assert.Equal(t, 2, list.Snapshot().Index)

	// Clearing the filter must reset to page 0 of the unfiltered list.
	require.NoError(t, list.SetFetch(context.Background(), pagesOf(all, 2)))

	snap := list.Snapshot()
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, []string{"r1", "r2"}, snap.Page.Content)
	assert.Equal(t, int64(6), snap.Page.TotalElements)
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	slowStarted := make(chan struct{})

	slow := func(_ context.Context, page int) (model.Page[string], error) {
		close(slowStarted)
		<-release
		return model.NewPage([]string{"stale"}, page, 20), nil
	}
	fast := pagesOf([]string{"fresh"}, 20)

	list := NewList[string](slow)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = list.Load(context.Background())
	}()

	<-slowStarted
	// A newer fetch is issued while the slow one is still in flight.
	require.NoError(t, list.SetFetch(context.Background(), fast))
	close(release)
	wg.Wait()

	snap := list.Snapshot()
	assert.Equal(t, Loaded, snap.Phase)
	assert.Equal(t, []string{"fresh"}, snap.Page.Content,
		"slow completion must not overwrite the newer result")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "failed", Failed.String())
}
