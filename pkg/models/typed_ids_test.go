package models

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	id := NewPageID()

	parsed, err := ParsePageID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, raw := range []string{"", "not-a-uuid", "1234", "f47ac10b-58cc-4372-a567"} {
		_, err := ParseWorkspaceID(raw)
		assert.Error(t, err, "workspace id %q", raw)
		_, err = ParsePageID(raw)
		assert.Error(t, err, "page id %q", raw)
		_, err = ParseBlockID(raw)
		assert.Error(t, err, "block id %q", raw)
	}
}

func TestIDJSONRoundTrip(t *testing.T) {
	id := NewWorkspaceID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	// Identifiers must render as plain strings on the wire.
	assert.JSONEq(t, `"`+id.String()+`"`, string(data))

	var decoded WorkspaceID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestIDRecordIDCollections(t *testing.T) {
	assert.Equal(t, "workspace", NewWorkspaceID().RecordID().Table)
	assert.Equal(t, "page", NewPageID().RecordID().Table)
	assert.Equal(t, "block", NewBlockID().RecordID().Table)
}

func TestIDCBORRoundTrip(t *testing.T) {
	id := NewBlockID()

	data, err := cbor.Marshal(id)
	require.NoError(t, err)

	var decoded BlockID
	require.NoError(t, cbor.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	// A RecordID from a different collection must be rejected.
	wrongTable, err := cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"page", id.String()},
	})
	require.NoError(t, err)
	assert.Error(t, decoded.UnmarshalCBOR(wrongTable))
}

func TestIDSQLValueScan(t *testing.T) {
	id := NewPageID()

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.String(), v)

	var scanned PageID
	require.NoError(t, scanned.Scan(id.String()))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	zero := PageID{}
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
