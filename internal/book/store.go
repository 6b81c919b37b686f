package book

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/addressbook/internal/config"
	"go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"
)

// recordDoc is the persisted form of a Record.
type recordDoc struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones,omitempty"`
	Emails   []string `json:"emails,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

func encodeRecord(r *Record) ([]byte, error) {
	birthday, _ := r.Birthday()
	doc := recordDoc{
		Name:     r.Name(),
		Phones:   r.Phones(),
		Emails:   r.Emails(),
		Birthday: birthday,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecordEncode, err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*Record, error) {
	var doc recordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecordDecode, err)
	}
	r, err := NewRecord(doc.Name, doc.Birthday)
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Phones {
		if err := r.AddField(Phones, p); err != nil {
			return nil, err
		}
	}
	for _, e := range doc.Emails {
		if err := r.AddField(Emails, e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Save writes the whole book to path, replacing any existing file. The file is
// a bbolt database holding one JSON document per record; keys are sequence
// numbers so insertion order survives a reload.
func (b *AddressBook) Save(path string) error {
	start := time.Now()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	// Removing after a successful rename fails harmlessly.
	defer func() { _ = os.Remove(tmpPath) }()

	db, err := bbolt.Open(tmpPath, config.FilePermUserRW, &bbolt.Options{Timeout: config.StoreOpenTimeout})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists([]byte(config.BucketMeta))
		if err != nil {
			return err
		}
		if err := meta.Put([]byte(config.MetaKeyFormat), []byte(config.FormatVersion)); err != nil {
			return err
		}

		records, err := tx.CreateBucketIfNotExists([]byte(config.BucketRecords))
		if err != nil {
			return err
		}
		for r := range b.All() {
			data, err := encodeRecord(r)
			if err != nil {
				return err
			}
			seq, err := records.NextSequence()
			if err != nil {
				return err
			}
			if err := records.Put(sequenceKey(seq), data); err != nil {
				return err
			}
		}
		return nil
	})
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreReplace, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, path,
		config.LogKeyCount, b.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return nil
}

// Load replaces the records of b with the contents of the file at path.
// It returns an error matching ErrNotFound when the file does not exist and
// ErrCorruptFile when it is not a readable book; b is left unchanged on any error.
func (b *AddressBook) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	// bbolt would try to initialize an empty file, which fails read-only.
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrCorruptFile, path)
	}

	db, err := bbolt.Open(path, config.FilePermUserRW, &bbolt.Options{
		Timeout:  config.StoreOpenTimeout,
		ReadOnly: true,
	})
	if err != nil {
		return openError(err)
	}
	defer func() { _ = db.Close() }()

	loaded := New()
	err = db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(config.BucketMeta))
		if meta == nil {
			return ErrCorruptFile
		}
		if v := string(meta.Get([]byte(config.MetaKeyFormat))); v != config.FormatVersion {
			return fmt.Errorf("%w: %s %q", ErrCorruptFile, config.ErrFormatVersion, v)
		}

		records := tx.Bucket([]byte(config.BucketRecords))
		if records == nil {
			return ErrCorruptFile
		}
		return records.ForEach(func(_, v []byte) error {
			r, err := decodeRecord(v)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrCorruptFile, err)
			}
			loaded.AddRecord(r)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	b.records = loaded.records
	b.order = loaded.order

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, path,
		config.LogKeyCount, b.Len())
	return nil
}

// openError classifies a bbolt.Open failure on an existing file. Only lock
// timeouts and permission problems are access errors; anything else means the
// content is not a bbolt database (bad magic, version mismatch, checksum, short file).
func openError(err error) error {
	if errors.Is(err, bolterrors.ErrTimeout) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	return fmt.Errorf("%w: %w", ErrCorruptFile, err)
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
