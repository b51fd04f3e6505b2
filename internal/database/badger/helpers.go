// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/ssi/internal/database"
	"github.com/dgraph-io/badger/v3"
)

// transformError transforms a badger error into a database error
// eventually, for errors defined in the parent database package.
func transformError(badgerErr error) (err error) {
	switch {
	case errors.Is(badgerErr, badger.ErrDBClosed):
		return fmt.Errorf("%w", database.ErrClosed)
	case errors.Is(badgerErr, badger.ErrReadOnlyTxn):
		return fmt.Errorf("%w: %s", database.ErrReadOnly, badgerErr)
	}
	return badgerErr
}
