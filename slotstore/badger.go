// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package slotstore

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"
)

type BadgerConfig struct {
	DataDir  string `koanf:"data-dir"`
	InMemory bool   `koanf:"in-memory"`
}

var DefaultBadgerConfig = BadgerConfig{}

func BadgerConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".data-dir", DefaultBadgerConfig.DataDir, "directory in which to keep the badger-backed slot database")
	f.Bool(prefix+".in-memory", DefaultBadgerConfig.InMemory, "keep the slot database in memory instead of on disk")
}

// Badger is a SlotStore over a badger database on the local filesystem.
// Each set slot is one badger entry keyed by the slot's 32-byte key;
// unset slots are simply absent keys, so set-ness costs nothing extra
// to track.
type Badger struct {
	db      *badger.DB
	dirPath string
}

func NewBadger(config BadgerConfig) (*Badger, error) {
	opts := badger.DefaultOptions(config.DataDir).WithLogger(nil)
	if config.InMemory {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger slot store: %w", err)
	}
	log.Info("opened badger slot store", "dir", config.DataDir, "inMemory", config.InMemory)
	return &Badger{
		db:      db,
		dirPath: config.DataDir,
	}, nil
}

func (b *Badger) Load(key common.Hash, dst []byte, n uint64) (bool, error) {
	all := true
	err := b.db.View(func(txn *badger.Txn) error {
		for i := uint64(0); i < n; i++ {
			window := dst[i*SlotSize : (i+1)*SlotSize]
			item, err := txn.Get(KeyOffset(key, i).Bytes())
			if errors.Is(err, badger.ErrKeyNotFound) {
				all = false
				for j := range window {
					window[j] = 0
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				copy(window, val)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("loading %d slots at %v: %w", n, key, err)
	}
	return all, nil
}

func (b *Badger) Store(key common.Hash, src []byte, n uint64) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for i := uint64(0); i < n; i++ {
			slot := append([]byte{}, src[i*SlotSize:(i+1)*SlotSize]...)
			if err := txn.Set(KeyOffset(key, i).Bytes(), slot); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing %d slots at %v: %w", n, key, err)
	}
	return nil
}

func (b *Badger) Clear(key common.Hash, n uint64) (bool, error) {
	all := true
	err := b.db.Update(func(txn *badger.Txn) error {
		for i := uint64(0); i < n; i++ {
			k := KeyOffset(key, i).Bytes()
			_, err := txn.Get(k)
			if errors.Is(err, badger.ErrKeyNotFound) {
				all = false
				continue
			}
			if err != nil {
				return err
			}
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("clearing %d slots at %v: %w", n, key, err)
	}
	return all, nil
}

func (b *Badger) Close() error {
	if err := b.db.Close(); err != nil {
		log.Error("failed to close badger slot store", "dir", b.dirPath, "err", err)
		return err
	}
	return nil
}

func (b *Badger) String() string {
	return fmt.Sprintf("Badger(%s)", b.dirPath)
}
