package replay

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalmerr/drawstore"
	"github.com/jpalmerr/drawstore/config"
	"github.com/jpalmerr/drawstore/hub"
)

// To regenerate golden files, run:
//
//	go test ./internal/replay -update
func TestRun_Golden(t *testing.T) {
	for _, name := range []string{"basics", "render"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(filepath.Join("testdata", "sessions", name+".yaml"))
			require.NoError(t, err)

			tr, err := Run(cfg, Options{})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, tr.WriteText(&buf))

			g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
			g.Assert(t, name, buf.Bytes())
		})
	}
}

func parse(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestRun_Entries(t *testing.T) {
	cfg := parse(t, `
features:
  - id: p
    kind: point
  - id: l
    kind: line
steps:
  - op: add
    ids: [p, l]
  - op: select
    ids: p
  - op: select
    ids: l
  - op: flush
  - op: deselect
    ids: p
  - op: flush
  - op: get_selected
`)

	tr, err := Run(cfg, Options{})
	require.NoError(t, err)
	require.Len(t, tr.Entries, 7)

	assert.Equal(t, "selected=[p l] deselected=[]", tr.Entries[3].Result)
	assert.Equal(t, "selected=[] deselected=[p]", tr.Entries[5].Result)
	assert.Equal(t, "[l]", tr.Entries[6].Result)
	assert.Equal(t, []string{"l"}, tr.Final.Selected)
	assert.False(t, tr.Final.Dirty)
}

func TestRun_ForwardsEventsToSink(t *testing.T) {
	cfg := parse(t, `
features:
  - id: a
    kind: point
steps:
  - op: add
  - op: delete
    ids: a
`)

	h, err := hub.New()
	require.NoError(t, err)
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	tr, err := Run(cfg, Options{Sink: h})
	require.NoError(t, err)

	assert.Equal(t, []string{"draw.deleted features=[a]"}, tr.Entries[1].Events)
	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, drawstore.EventDeleted, ev.Name)
	assert.IsType(t, drawstore.DeletedEvent[string]{}, ev.Payload)
	assert.True(t, tr.Final.Dirty)
}

func TestRun_GeneratedIDsAreAdded(t *testing.T) {
	cfg := parse(t, `
features:
  - kind: point
steps:
  - op: add
  - op: get_all
`)

	tr, err := Run(cfg, Options{})
	require.NoError(t, err)

	require.Len(t, tr.Entries[0].Args, 1)
	assert.Equal(t, "["+tr.Entries[0].Args[0]+"]", tr.Entries[1].Result)
}

func TestTranscript_JSON(t *testing.T) {
	cfg := parse(t, `
title: json
steps:
  - op: is_selected
    ids: x
`)

	tr, err := Run(cfg, Options{})
	require.NoError(t, err)

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "json", got["title"])
	entries := got["entries"].([]any)
	require.Len(t, entries, 1)
	assert.Equal(t, "false", entries[0].(map[string]any)["result"])
	assert.Contains(t, got, "final")
}

func TestDescribeEvent_Unknown(t *testing.T) {
	got := describeEvent(hub.Call{Name: "draw.custom", Payload: 42})
	assert.Equal(t, "draw.custom 42", got)
}
