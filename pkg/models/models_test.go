package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageDefaults(t *testing.T) {
	p := NewPage("ws-1", Optional[string]{})
	assert.Equal(t, "Untitled", p.Title)
	assert.Equal(t, "ws-1", p.WorkspaceID)
	assert.False(t, p.ID.IsZero())

	// An explicit empty title is a value, not an omission.
	p = NewPage("ws-1", Some(""))
	assert.Equal(t, "", p.Title)
}

func TestNewBlockDefaults(t *testing.T) {
	b := NewBlock("pg-1", Optional[BlockType]{}, Optional[string]{}, Optional[bool]{}, Optional[int]{})
	assert.Equal(t, BlockTypeText, b.Type)
	assert.Equal(t, "", b.Content)
	assert.False(t, b.Checked)
	assert.Equal(t, 0, b.Position)

	b = NewBlock("pg-1", Some(BlockTypeTodo), Some("buy milk"), Some(true), Some(3))
	assert.Equal(t, BlockTypeTodo, b.Type)
	assert.Equal(t, "buy milk", b.Content)
	assert.True(t, b.Checked)
	assert.Equal(t, 3, b.Position)
}

func TestPageUpdateFields(t *testing.T) {
	assert.Empty(t, PageUpdate{}.Fields())

	fields := PageUpdate{Title: Some("Sprint Notes")}.Fields()
	assert.Equal(t, map[string]any{"title": "Sprint Notes"}, fields)

	// Present-with-zero is still a field to write.
	fields = PageUpdate{Title: Some("")}.Fields()
	assert.Equal(t, map[string]any{"title": ""}, fields)
}

func TestBlockUpdateFields(t *testing.T) {
	assert.Empty(t, BlockUpdate{}.Fields())

	fields := BlockUpdate{
		Content:  Some("Review"),
		Checked:  Some(false),
		Position: Some(0),
	}.Fields()
	assert.Equal(t, map[string]any{
		"content":  "Review",
		"checked":  false,
		"position": 0,
	}, fields)
}

func TestOptionalUnmarshalPresence(t *testing.T) {
	var u BlockUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"checked": false}`), &u))
	assert.True(t, u.Checked.Present())
	assert.False(t, u.Checked.Value())
	assert.False(t, u.Content.Present())
	assert.False(t, u.Position.Present())

	// Explicit null behaves like an absent field.
	u = BlockUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"content": null}`), &u))
	assert.False(t, u.Content.Present())

	u = BlockUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"position": 0, "content": ""}`), &u))
	assert.Equal(t, map[string]any{"position": 0, "content": ""}, u.Fields())
}
