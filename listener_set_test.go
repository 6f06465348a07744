package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(id string) *listenerRecord[string] {
	return &listenerRecord[string]{id: ListenerID(id), callback: func(*Event[string], ...any) {}}
}

func TestListenerSetKeepsInsertionOrder(t *testing.T) {
	set := newListenerSet[string]()
	set.add(newRecord("a"))
	set.add(newRecord("b"))
	set.add(newRecord("c"))

	assert.Equal(t, []ListenerID{"a", "b", "c"}, set.snapshot())

	require.True(t, set.remove("b"))
	assert.False(t, set.remove("b"))
	assert.Equal(t, []ListenerID{"a", "c"}, set.snapshot())
	assert.Equal(t, 2, set.len())
}

func TestListenerSetSnapshotIsDetached(t *testing.T) {
	set := newListenerSet[string]()
	set.add(newRecord("a"))
	set.add(newRecord("b"))

	snapshot := set.snapshot()
	set.remove("a")
	set.add(newRecord("c"))

	assert.Equal(t, []ListenerID{"a", "b"}, snapshot)

	_, found := set.get("a")
	assert.False(t, found)
	r, found := set.get("c")
	require.True(t, found)
	assert.Equal(t, ListenerID("c"), r.id)
}

func TestListenerSetClear(t *testing.T) {
	set := newListenerSet[string]()
	set.add(newRecord("a"))
	records := set.records

	set.clear()

	assert.Zero(t, set.len())
	assert.Empty(t, set.snapshot())
	assert.Empty(t, records)
}

func TestClearAll(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	alias := m

	clearAll(m)

	assert.Empty(t, m)
	assert.Empty(t, alias)
}

func TestListenerModeString(t *testing.T) {
	assert.Equal(t, "on", modePersistent.String())
	assert.Equal(t, "once", modeOneShot.String())
}
