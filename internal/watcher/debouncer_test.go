package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectBatch(t *testing.T, d *Debouncer) []FileEvent {
	t.Helper()
	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
		return nil
	}
}

func TestDebouncer_EmitsAfterWindow(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	// When: one event is added
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})

	// Then: a single-event batch arrives after the window
	batch := collectBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, OpModify, batch[0].Operation)
}

func TestDebouncer_CoalescesSamePath(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})

	batch := collectBatch(t, d)
	assert.Len(t, batch, 1)
}

func TestDebouncer_CreateThenModifyStaysCreate(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpCreate})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})

	batch := collectBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, OpCreate, batch[0].Operation)
}

func TestDebouncer_CreateThenDeleteCancels(t *testing.T) {
	// Given: a create immediately followed by a delete
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpCreate})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpDelete})
	d.Add(FileEvent{Path: "/cards/b2.json", Operation: OpModify})

	// Then: only the unrelated event survives
	batch := collectBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, "/cards/b2.json", batch[0].Path)
}

func TestDebouncer_ModifyThenDeleteBecomesDelete(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpDelete})

	batch := collectBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, OpDelete, batch[0].Operation)
}

func TestDebouncer_DeleteThenCreateBecomesModify(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpDelete})
	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpCreate})

	batch := collectBatch(t, d)
	require.Len(t, batch, 1)
	assert.Equal(t, OpModify, batch[0].Operation)
}

func TestDebouncer_SeparatePathsBatchTogether(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})
	d.Add(FileEvent{Path: "/cards/b2.json", Operation: OpCreate})

	batch := collectBatch(t, d)
	assert.Len(t, batch, 2)
}

func TestDebouncer_AddAfterStopIsNoop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()

	d.Add(FileEvent{Path: "/cards/b1.json", Operation: OpModify})

	_, open := <-d.Output()
	assert.False(t, open)
}

func TestDebouncer_StopTwiceIsSafe(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()
	assert.NotPanics(t, d.Stop)
}
