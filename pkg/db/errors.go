/*
 * Copyright 2026 Netswap Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDatabaseError  = errors.New("database error")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToScan   = errors.New("failed to scan")

	// ErrDeadlock marks serialization failures and deadlocks; collection
	// cycles retry when errors.Is reports it.
	ErrDeadlock = errors.New("database deadlock")
)

// SQLSTATEs that the cycle-level retry covers.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// wrapDeadlock folds serialization/deadlock SQLSTATEs onto ErrDeadlock
// so callers match structurally instead of on message text.
func wrapDeadlock(err error) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		if pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected {
			return fmt.Errorf("%w: %w", ErrDeadlock, err)
		}
	}

	return err
}
