package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketBlocks = []byte("blocks_by_hash")
	bucketIndex  = []byte("block_index_by_hash")
	bucketMeta   = []byte("meta")

	keyTip = []byte("tip")
)

type BlockStatus byte

const (
	BlockStatusUnknown BlockStatus = 0
	BlockStatusValid   BlockStatus = 1
	BlockStatusInvalid BlockStatus = 2
)

type BlockIndexEntry struct {
	Height   uint64
	PrevHash [32]byte
	Status   BlockStatus
}

type Tip struct {
	Hash   [32]byte
	Height uint64
}

type DB struct {
	path string
	db   *bolt.DB
}

func Open(datadir string) (*DB, error) {
	if datadir == "" {
		return nil, fmt.Errorf("datadir required")
	}
	if err := os.MkdirAll(filepath.Join(datadir, "db"), 0o700); err != nil {
		return nil, err
	}

	path := filepath.Join(datadir, "db", "kv.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	d := &DB{path: path, db: bdb}
	if err := d.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketBlocks, bucketIndex, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func encodeIndexEntry(e BlockIndexEntry) []byte {
	out := make([]byte, 0, 8+32+1)
	var tmp8 [8]byte
	binary.LittleEndian.PutUint64(tmp8[:], e.Height)
	out = append(out, tmp8[:]...)
	out = append(out, e.PrevHash[:]...)
	return append(out, byte(e.Status))
}

func decodeIndexEntry(b []byte) (BlockIndexEntry, error) {
	var e BlockIndexEntry
	if len(b) != 8+32+1 {
		return e, fmt.Errorf("index entry: bad length %d", len(b))
	}
	e.Height = binary.LittleEndian.Uint64(b[:8])
	copy(e.PrevHash[:], b[8:40])
	e.Status = BlockStatus(b[40])
	return e, nil
}

// PutBlock stores the raw block bytes and its index entry atomically.
func (d *DB) PutBlock(hash [32]byte, raw []byte, entry BlockIndexEntry) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketBlocks).Put(hash[:], raw); err != nil {
			return err
		}
		return tx.Bucket(bucketIndex).Put(hash[:], encodeIndexEntry(entry))
	})
}

// GetBlock returns the raw block bytes, or (nil, false, nil) if unknown.
func (d *DB) GetBlock(hash [32]byte) ([]byte, bool, error) {
	var out []byte
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBlocks).Get(hash[:])
		if v == nil {
			return nil
		}
		found = true
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (d *DB) GetIndexEntry(hash [32]byte) (BlockIndexEntry, bool, error) {
	var entry BlockIndexEntry
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketIndex).Get(hash[:])
		if v == nil {
			return nil
		}
		e, err := decodeIndexEntry(v)
		if err != nil {
			return err
		}
		entry = e
		found = true
		return nil
	})
	if err != nil {
		return BlockIndexEntry{}, false, err
	}
	return entry, found, nil
}

func (d *DB) SetTip(tip Tip) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		out := make([]byte, 0, 32+8)
		out = append(out, tip.Hash[:]...)
		var tmp8 [8]byte
		binary.LittleEndian.PutUint64(tmp8[:], tip.Height)
		out = append(out, tmp8[:]...)
		return tx.Bucket(bucketMeta).Put(keyTip, out)
	})
}

// GetTip returns the current tip, or (Tip{}, false, nil) for a fresh chain.
func (d *DB) GetTip() (Tip, bool, error) {
	var tip Tip
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketMeta).Get(keyTip)
		if v == nil {
			return nil
		}
		if len(v) != 40 {
			return fmt.Errorf("tip: bad length %d", len(v))
		}
		copy(tip.Hash[:], v[:32])
		tip.Height = binary.LittleEndian.Uint64(v[32:])
		found = true
		return nil
	})
	if err != nil {
		return Tip{}, false, err
	}
	return tip, found, nil
}
