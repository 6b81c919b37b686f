package book

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/addressbook/internal/config"
	"go.etcd.io/bbolt"
)

// writeRaw creates a bolt file with arbitrary content for corruption tests.
func writeRaw(t *testing.T, fill func(tx *bbolt.Tx) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.db")
	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(fill))
	require.NoError(t, db.Close())
	return path
}

func TestLoad_CorruptContents(t *testing.T) {
	tests := []struct {
		name string
		fill func(tx *bbolt.Tx) error
	}{
		{
			name: "No meta bucket",
			fill: func(tx *bbolt.Tx) error {
				_, err := tx.CreateBucket([]byte(config.BucketRecords))
				return err
			},
		},
		{
			name: "Wrong format version",
			fill: func(tx *bbolt.Tx) error {
				meta, err := tx.CreateBucket([]byte(config.BucketMeta))
				if err != nil {
					return err
				}
				return meta.Put([]byte(config.MetaKeyFormat), []byte("99"))
			},
		},
		{
			name: "No records bucket",
			fill: func(tx *bbolt.Tx) error {
				meta, err := tx.CreateBucket([]byte(config.BucketMeta))
				if err != nil {
					return err
				}
				return meta.Put([]byte(config.MetaKeyFormat), []byte(config.FormatVersion))
			},
		},
		{
			name: "Invalid phone in record",
			fill: func(tx *bbolt.Tx) error {
				meta, err := tx.CreateBucket([]byte(config.BucketMeta))
				if err != nil {
					return err
				}
				if err := meta.Put([]byte(config.MetaKeyFormat), []byte(config.FormatVersion)); err != nil {
					return err
				}
				records, err := tx.CreateBucket([]byte(config.BucketRecords))
				if err != nil {
					return err
				}
				return records.Put(sequenceKey(1), []byte(`{"name":"Jan","phones":["12"]}`))
			},
		},
		{
			name: "Not JSON",
			fill: func(tx *bbolt.Tx) error {
				meta, err := tx.CreateBucket([]byte(config.BucketMeta))
				if err != nil {
					return err
				}
				if err := meta.Put([]byte(config.MetaKeyFormat), []byte(config.FormatVersion)); err != nil {
					return err
				}
				records, err := tx.CreateBucket([]byte(config.BucketRecords))
				if err != nil {
					return err
				}
				return records.Put(sequenceKey(1), []byte(`{`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRaw(t, tt.fill)
			err := New().Load(path)
			assert.ErrorIs(t, err, ErrCorruptFile)
		})
	}
}

func TestEncodeDecodeRecord(t *testing.T) {
	r, err := NewRecord("Jan", "1990-05-15")
	require.NoError(t, err)
	require.NoError(t, r.AddField(Phones, "123456789"))
	require.NoError(t, r.AddField(Emails, "jan@example.com"))

	data, err := encodeRecord(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Jan","phones":["123456789"],"emails":["jan@example.com"],"birthday":"1990-05-15"}`, string(data))

	back, err := decodeRecord(data)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestSequenceKey_Ordering(t *testing.T) {
	assert.Less(t, string(sequenceKey(9)), string(sequenceKey(10)))
	assert.Less(t, string(sequenceKey(255)), string(sequenceKey(256)))
}
