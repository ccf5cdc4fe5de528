package storage

import (
	"testing"
	"time"

	"github.com/poiesic/semsimilar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Empty string slices decode as empty, not nil.
func assertStrings(t *testing.T, expected, actual []string) {
	t.Helper()
	if len(expected) == 0 {
		assert.Empty(t, actual)
		return
	}
	assert.Equal(t, expected, actual)
}

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalSeq(t *testing.T) {
	for _, seq := range []uint64{0, 1, 127, 128, 1 << 40} {
		decoded, err := UnmarshalSeq(MarshalSeq(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, decoded)
	}
}

func TestMarshalUnmarshalDocumentRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.DocumentRecord
	}{
		{
			name: "raw fields only",
			record: &core.DocumentRecord{
				Id:    core.IDFromContent("1"),
				Seq:   1,
				Key:   "1",
				Title: "PHP session security",
			},
		},
		{
			name: "fully derived",
			record: &core.DocumentRecord{
				Id:            core.IDFromContent("q-42"),
				Seq:           42,
				Key:           "q-42",
				Title:         "PHP session security",
				Description:   "<p>My session gets hijacked</p>",
				Tags:          "php security",
				Tokens:        []string{"php", "session", "security"},
				SenseTokens:   []string{"php", "session", "security"},
				Senses:        []string{"", "session.n.01", "security.n.01"},
				StemmedTokens: []string{"php", "session", "secur"},
				InsertedAt:    now,
				UpdatedAt:     now.Add(time.Minute),
			},
		},
		{
			name: "unicode text",
			record: &core.DocumentRecord{
				Id:          core.IDFromContent("ü"),
				Key:         "ü",
				Title:       "Überprüfung der Sitzung",
				SenseTokens: []string{"überprüfung"},
				Senses:      []string{""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocumentRecord(tt.record)
			decoded, err := UnmarshalDocumentRecord(data)
			require.NoError(t, err)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.Seq, decoded.Seq)
			assert.Equal(t, tt.record.Key, decoded.Key)
			assert.Equal(t, tt.record.Title, decoded.Title)
			assert.Equal(t, tt.record.Description, decoded.Description)
			assert.Equal(t, tt.record.Tags, decoded.Tags)
			assertStrings(t, tt.record.Tokens, decoded.Tokens)
			assertStrings(t, tt.record.SenseTokens, decoded.SenseTokens)
			assertStrings(t, tt.record.Senses, decoded.Senses)
			assertStrings(t, tt.record.StemmedTokens, decoded.StemmedTokens)
			if !tt.record.InsertedAt.IsZero() {
				assert.True(t, tt.record.InsertedAt.Equal(decoded.InsertedAt))
				assert.True(t, tt.record.UpdatedAt.Equal(decoded.UpdatedAt))
			}
		})
	}
}

func TestMarshalDocumentRecord_MicrosecondTimes(t *testing.T) {
	stamp := time.Date(2025, 3, 1, 12, 30, 15, 123456789, time.UTC)
	record := &core.DocumentRecord{Key: "1", Title: "php", InsertedAt: stamp, UpdatedAt: stamp}

	decoded, err := UnmarshalDocumentRecord(MarshalDocumentRecord(record))
	require.NoError(t, err)
	assert.True(t, stamp.Truncate(time.Microsecond).Equal(decoded.InsertedAt))
	assert.False(t, stamp.Equal(decoded.InsertedAt), "sub-microsecond precision is not stored")
}

func TestDocumentRecordMUS_Skip(t *testing.T) {
	record := &core.DocumentRecord{
		Id:     core.IDFromContent("1"),
		Key:    "1",
		Title:  "php session",
		Tokens: []string{"php", "session"},
	}
	data := MarshalDocumentRecord(record)
	data = append(data, MarshalSenseEntry(&core.SenseEntry{Id: "php.n.01", Lemma: "php"})...)

	n, err := core.DocumentRecordMUS.Skip(data)
	require.NoError(t, err)
	entry, err := UnmarshalSenseEntry(data[n:])
	require.NoError(t, err)
	assert.Equal(t, "php.n.01", entry.Id)
}

func TestUnmarshalDocumentRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", MarshalDocumentRecord(&core.DocumentRecord{Key: "1", Title: "php", Tokens: []string{"php"}})[:5]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocumentRecord(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalSenseEntry(t *testing.T) {
	entry := &core.SenseEntry{
		Id:        "bank.n.02",
		Lemma:     "bank",
		Gloss:     "a financial institution",
		Examples:  []string{"he cashed a check at the bank"},
		Hypernyms: []string{"institution.n.01"},
	}

	decoded, err := UnmarshalSenseEntry(MarshalSenseEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)

	bare := &core.SenseEntry{Id: "entity.n.01", Lemma: "entity"}
	decoded, err = UnmarshalSenseEntry(MarshalSenseEntry(bare))
	require.NoError(t, err)
	assert.Equal(t, bare.Id, decoded.Id)
	assert.Equal(t, bare.Lemma, decoded.Lemma)
	assert.Empty(t, decoded.Examples)
	assert.Empty(t, decoded.Hypernyms)
}

func TestUnmarshalSenseEntry_Invalid(t *testing.T) {
	_, err := UnmarshalSenseEntry([]byte{})
	assert.Error(t, err)
}
