package main

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deleteSession = `
title: Delete
features:
  - id: a
    kind: point
  - id: b
    kind: line
steps:
  - op: add
  - op: select
    ids: [a, b]
  - op: delete
    ids: b
  - op: flush
`

func TestRunReplay_Text(t *testing.T) {
	path := writeSession(t, deleteSession)

	out, _, err := executeCmd(t, "replay", "-c", path)
	require.NoError(t, err)

	want := `# Delete
add [a b]
select [a b]
delete [b]
  ~ draw.deleted features=[b]
flush => selected=[a] deselected=[]
final dirty=true features=[a] selected=[a] changed=[]
`
	assert.Equal(t, want, out)
}

func TestRunReplay_JSON(t *testing.T) {
	path := writeSession(t, deleteSession)

	out, _, err := executeCmd(t, "replay", "-c", path, "--format", "json")
	require.NoError(t, err)

	var got struct {
		Title   string `json:"title"`
		Entries []struct {
			Op     string   `json:"op"`
			Events []string `json:"events"`
		} `json:"entries"`
		Final struct {
			Dirty    bool     `json:"dirty"`
			Features []string `json:"features"`
		} `json:"final"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Delete", got.Title)
	require.Len(t, got.Entries, 4)
	assert.Equal(t, []string{"draw.deleted features=[b]"}, got.Entries[2].Events)
	assert.True(t, got.Final.Dirty)
	assert.Equal(t, []string{"a"}, got.Final.Features)
}

func TestRunReplay_Stream(t *testing.T) {
	path := writeSession(t, deleteSession)

	_, stderr, err := executeCmd(t, "replay", "-c", path, "--stream")
	require.NoError(t, err)

	var names []string
	sc := bufio.NewScanner(strings.NewReader(stderr))
	for sc.Scan() {
		var ev struct {
			Name    string `json:"name"`
			Payload struct {
				Features []struct {
					ID string `json:"id"`
				} `json:"featureIds"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		names = append(names, ev.Name)
		require.Len(t, ev.Payload.Features, 1)
		assert.Equal(t, "b", ev.Payload.Features[0].ID)
	}
	assert.Equal(t, []string{"draw.deleted"}, names)
}

func TestRunReplay_InvalidFormat(t *testing.T) {
	path := writeSession(t, deleteSession)

	_, _, err := executeCmd(t, "replay", "-c", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be text or json")
}

func TestRunReplay_InvalidLogLevel(t *testing.T) {
	path := writeSession(t, deleteSession)

	_, _, err := executeCmd(t, "replay", "-c", path, "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRunReplay_InvalidSession(t *testing.T) {
	path := writeSession(t, `
features:
  - id: a
    kind: hexagon
steps:
  - op: add
`)

	_, _, err := executeCmd(t, "replay", "-c", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
