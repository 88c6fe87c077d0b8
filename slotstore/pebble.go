// Copyright 2026, Quadspace Authors
// For license information, see https://github.com/quadspace/quadspace/blob/master/LICENSE

package slotstore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"
)

type PebbleConfig struct {
	DataDir string `koanf:"data-dir"`
	Sync    bool   `koanf:"sync"`
}

var DefaultPebbleConfig = PebbleConfig{
	Sync: true,
}

func PebbleConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.String(prefix+".data-dir", DefaultPebbleConfig.DataDir, "directory in which to keep the pebble-backed slot database")
	f.Bool(prefix+".sync", DefaultPebbleConfig.Sync, "fsync writes to the slot database before acknowledging them")
}

// Pebble is a SlotStore over a pebble LSM database, one entry per set
// slot. Same layout as the badger backend; pick whichever engine the
// host already operates.
type Pebble struct {
	db        *pebble.DB
	dirPath   string
	writeOpts *pebble.WriteOptions
}

func NewPebble(config PebbleConfig) (*Pebble, error) {
	db, err := pebble.Open(config.DataDir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening pebble slot store: %w", err)
	}
	writeOpts := pebble.NoSync
	if config.Sync {
		writeOpts = pebble.Sync
	}
	log.Info("opened pebble slot store", "dir", config.DataDir, "sync", config.Sync)
	return &Pebble{
		db:        db,
		dirPath:   config.DataDir,
		writeOpts: writeOpts,
	}, nil
}

func (p *Pebble) Load(key common.Hash, dst []byte, n uint64) (bool, error) {
	all := true
	for i := uint64(0); i < n; i++ {
		window := dst[i*SlotSize : (i+1)*SlotSize]
		val, closer, err := p.db.Get(KeyOffset(key, i).Bytes())
		if errors.Is(err, pebble.ErrNotFound) {
			all = false
			for j := range window {
				window[j] = 0
			}
			continue
		}
		if err != nil {
			return false, fmt.Errorf("loading %d slots at %v: %w", n, key, err)
		}
		copy(window, val)
		if err := closer.Close(); err != nil {
			return false, fmt.Errorf("loading %d slots at %v: %w", n, key, err)
		}
	}
	return all, nil
}

func (p *Pebble) Store(key common.Hash, src []byte, n uint64) error {
	batch := p.db.NewBatch()
	defer batch.Close()
	for i := uint64(0); i < n; i++ {
		if err := batch.Set(KeyOffset(key, i).Bytes(), src[i*SlotSize:(i+1)*SlotSize], nil); err != nil {
			return fmt.Errorf("storing %d slots at %v: %w", n, key, err)
		}
	}
	if err := batch.Commit(p.writeOpts); err != nil {
		return fmt.Errorf("storing %d slots at %v: %w", n, key, err)
	}
	return nil
}

func (p *Pebble) Clear(key common.Hash, n uint64) (bool, error) {
	all := true
	batch := p.db.NewBatch()
	defer batch.Close()
	for i := uint64(0); i < n; i++ {
		k := KeyOffset(key, i).Bytes()
		_, closer, err := p.db.Get(k)
		if errors.Is(err, pebble.ErrNotFound) {
			all = false
			continue
		}
		if err != nil {
			return false, fmt.Errorf("clearing %d slots at %v: %w", n, key, err)
		}
		if err := closer.Close(); err != nil {
			return false, fmt.Errorf("clearing %d slots at %v: %w", n, key, err)
		}
		if err := batch.Delete(k, nil); err != nil {
			return false, fmt.Errorf("clearing %d slots at %v: %w", n, key, err)
		}
	}
	if err := batch.Commit(p.writeOpts); err != nil {
		return false, fmt.Errorf("clearing %d slots at %v: %w", n, key, err)
	}
	return all, nil
}

func (p *Pebble) Close() error {
	if err := p.db.Close(); err != nil {
		log.Error("failed to close pebble slot store", "dir", p.dirPath, "err", err)
		return err
	}
	return nil
}

func (p *Pebble) String() string {
	return fmt.Sprintf("Pebble(%s)", p.dirPath)
}
