//go:build integration

package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_ReplacesBrowserAfterBudget(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	for range 2 {
		_, release, err := manager.Page(context.Background())
		require.NoError(t, err)
		release()
	}
	assert.Same(t, first, manager.Browser())

	_, release, err := manager.Page(context.Background())
	require.NoError(t, err)
	defer release()

	assert.NotSame(t, first, manager.Browser())
}

func TestBrowserManager_KeepsBrowserWhilePagesOpen(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	page, release, err := manager.Page(context.Background())
	require.NoError(t, err)
	defer release()

	_, release2, err := manager.Page(context.Background())
	require.NoError(t, err)
	defer release2()

	assert.Same(t, first, manager.Browser())
	require.NoError(t, page.SetDocumentContent("<p>still usable</p>"))
}

func TestBrowserManager_ReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	first := manager.Browser()
	_, release, err := manager.Page(context.Background())
	require.NoError(t, err)
	release()
	release()

	_, release, err = manager.Page(context.Background())
	require.NoError(t, err)
	defer release()

	assert.NotSame(t, first, manager.Browser())
}

func TestBrowserManager_PageAfterCloseFails(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, _, err = manager.Page(context.Background())
	assert.Equal(t, pagesmith.EUNAVAILABLE, pagesmith.ErrorCode(err))
}
