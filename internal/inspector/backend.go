// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package inspector

import (
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/ChainSafe/ssi/internal/database/badger"
	"github.com/ChainSafe/ssi/internal/database/bolt"
	"github.com/ChainSafe/ssi/internal/database/leveldb"
)

// Database backends.
const (
	BackendPebble  = "pebble"
	BackendBadger  = "badger"
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"
)

func isBackendKnown(backend string) bool {
	switch backend {
	case BackendPebble, BackendBadger, BackendLevelDB, BackendBolt:
		return true
	default:
		return false
	}
}

// OpenDatabase opens the database at path read only. Namespaces are buckets
// for bolt and key prefixes for every other backend.
func OpenDatabase(backend, path string) (db database.Namespaced, err error) {
	var flat database.Database
	switch backend {
	case BackendPebble:
		flat, err = database.NewPebble(path, false, true)
	case BackendBadger:
		readOnly := true
		flat, err = badger.New(badger.Settings{
			Path:     &path,
			ReadOnly: &readOnly,
		})
	case BackendLevelDB:
		flat, err = leveldb.New(path, true)
	case BackendBolt:
		db, err = bolt.New(path, true)
		if err != nil {
			return nil, fmt.Errorf("opening %s database: %w", backend, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnknown, backend)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", backend, err)
	}
	return database.WithPrefixTables(flat), nil
}
