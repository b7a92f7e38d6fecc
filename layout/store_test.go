package layout

import (
	"context"
	"github.com/datastax/page-data-blocks/config"
	"github.com/datastax/page-data-blocks/host"
	"github.com/datastax/page-data-blocks/host/memory"
	"github.com/datastax/page-data-blocks/log"
	"github.com/datastax/page-data-blocks/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"sync"
	"testing"
	"time"
)

func layoutsTable(updatable bool, records ...memory.RecordConfig) memory.TableConfig {
	return memory.TableConfig{
		Name:      "Layouts",
		Updatable: updatable,
		Fields: []memory.FieldConfig{
			{Name: "Name", Type: host.SingleLineText},
			{Name: "Doc", Type: host.MultilineText},
			{Name: "Assets", Type: host.MultipleAttachments},
		},
		Records: records,
	}
}

func newStore(t *testing.T, perms config.Permissions, table memory.TableConfig) *Store {
	base, err := memory.New(memory.BaseConfig{Tables: []memory.TableConfig{table}}, perms)
	require.NoError(t, err)
	selection, err := properties.Select(base, properties.Overrides{})
	require.NoError(t, err)
	return NewStore(selection, testDelay, log.NewNopLogger())
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, config.ReadRecords, layoutsTable(false,
		memory.RecordConfig{ID: "rec1", Cells: map[string]interface{}{"Doc": storedDocument}},
		memory.RecordConfig{ID: "rec2", Cells: map[string]interface{}{"Doc": `{"content": []}`}},
	))

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Content, 2)
	assert.Equal(t, "#112233", doc.BackgroundColor())
}

func TestStoreLoadInvalidDocument(t *testing.T) {
	store := newStore(t, config.ReadRecords, layoutsTable(false,
		memory.RecordConfig{ID: "rec1", Cells: map[string]interface{}{"Doc": "{broken"}},
	))
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Empty(), doc)
}

func TestStoreWithoutRecords(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, config.ReadRecords|config.UpdateRecords, layoutsTable(true))

	_, err := store.Load(ctx)
	assert.Equal(t, ErrNoLayoutRecord, err)
	assert.Equal(t, ErrNoLayoutRecord, store.Save(ctx, Empty()))
	assert.Equal(t, ErrNoLayoutRecord, store.Publish(ctx, Empty()))
}

func TestStorePublish(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, config.ReadRecords|config.UpdateRecords, layoutsTable(true,
		memory.RecordConfig{ID: "rec1"},
	))

	doc := Empty()
	doc.Root.Props["title"] = "Dashboard"
	require.NoError(t, store.Publish(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", loaded.Root.Props["title"])
}

func TestStorePublishDenied(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, config.ReadRecords, layoutsTable(true, memory.RecordConfig{ID: "rec1"}))
	assert.Equal(t, host.ErrPermissionDenied, store.Publish(ctx, Empty()))

	store = newStore(t, config.ReadRecords|config.UpdateRecords, layoutsTable(false, memory.RecordConfig{ID: "rec1"}))
	assert.Equal(t, host.ErrPermissionDenied, store.Publish(ctx, Empty()))
}

func TestStoreSave(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	store := newStore(t, config.ReadRecords|config.UpdateRecords, layoutsTable(true,
		memory.RecordConfig{ID: "rec1"},
	))

	for _, title := range []string{"one", "two", "three"} {
		doc := Empty()
		doc.Root.Props["title"] = title
		require.NoError(t, store.Save(ctx, doc))
	}

	assert.Eventually(t, func() bool {
		return store.Saver().Stats().Flushed == 1
	}, time.Second, 5*time.Millisecond)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "three", loaded.Root.Props["title"])
	assert.Equal(t, int64(2), store.Saver().Stats().Coalesced)
	require.NoError(t, store.Close(ctx))
}

func TestStorePublishDiscardsPendingSave(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, config.ReadRecords|config.UpdateRecords, layoutsTable(true,
		memory.RecordConfig{ID: "rec1"},
	))
	store.saver.delay = time.Hour

	draft := Empty()
	draft.Root.Props["title"] = "draft"
	require.NoError(t, store.Save(ctx, draft))

	published := Empty()
	published.Root.Props["title"] = "published"
	require.NoError(t, store.Publish(ctx, published))
	require.NoError(t, store.Close(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "published", loaded.Root.Props["title"])
}

// slowTable holds its first update until release is closed.
type slowTable struct {
	host.Table
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (t *slowTable) UpdateRecord(ctx context.Context, recordID string, cells map[string]string) error {
	t.once.Do(func() {
		close(t.started)
		<-t.release
	})
	return t.Table.UpdateRecord(ctx, recordID, cells)
}

func TestStorePublishAfterSaveStarted(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	base, err := memory.New(memory.BaseConfig{Tables: []memory.TableConfig{
		layoutsTable(true, memory.RecordConfig{ID: "rec1"}),
	}}, config.ReadRecords|config.UpdateRecords)
	require.NoError(t, err)
	selection, err := properties.Select(base, properties.Overrides{})
	require.NoError(t, err)
	slow := &slowTable{Table: selection.Table, started: make(chan struct{}), release: make(chan struct{})}
	selection.Table = slow
	store := NewStore(selection, testDelay, log.NewNopLogger())

	draft := Empty()
	draft.Root.Props["title"] = "draft"
	require.NoError(t, store.Save(ctx, draft))
	<-slow.started

	published := Empty()
	published.Root.Props["title"] = "published"
	done := make(chan error, 1)
	go func() {
		done <- store.Publish(ctx, published)
	}()
	time.Sleep(20 * time.Millisecond)
	close(slow.release)
	require.NoError(t, <-done)
	require.NoError(t, store.Close(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "published", loaded.Root.Props["title"])
}
