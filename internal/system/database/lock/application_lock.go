/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package lock

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// DistributedLock serializes writers that target the same stored record.
// Locks are transaction scoped: acquisition binds to the supplied
// transaction's session and is released automatically at commit or rollback,
// so a crashed writer can never leave a record locked.
type DistributedLock interface {
	AcquireForTx(tx *sql.Tx, key string) (bool, error)
}

// PostgresLock implements DistributedLock using PostgreSQL advisory locks.
type PostgresLock struct{}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{}
}

// PostgreSQL advisory locks key on a bigint. String keys are hashed down.
func (l *PostgresLock) generateLockKey(key string) (int64, error) {

	logger := log.GetLogger()
	h := fnv.New64a()
	_, err := h.Write([]byte(key))
	if err != nil {
		errorMsg := fmt.Sprintf("failed to hash lock key '%s'", key)
		logger.Debug(errorMsg, log.Error(err))
		serverError := errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_KEY_GEN.Code,
			Message:     errors.LOCK_KEY_GEN.Message,
			Description: errorMsg,
		}, err)
		return 0, serverError
	}
	return int64(h.Sum64()), nil
}

// AcquireForTx attempts to take the advisory lock for the given key on the
// transaction's session without blocking. Returns false when another writer
// currently holds the lock.
func (l *PostgresLock) AcquireForTx(tx *sql.Tx, key string) (bool, error) {

	logger := log.GetLogger()
	lockID, err := l.generateLockKey(key)
	if err != nil {
		return false, err
	}
	logger.Debug(fmt.Sprintf("Generated lock Id: %d", lockID))

	var acquired bool
	if err := tx.QueryRow("SELECT pg_try_advisory_xact_lock($1)", lockID).Scan(&acquired); err != nil {
		errorMsg := fmt.Sprintf("Failed to execute pg_try_advisory_xact_lock for lock Id %d", lockID)
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}
	return acquired, nil
}

// BeginLockedTx starts a transaction via begin and takes the advisory lock
// for the given key on it, retrying while another writer holds the lock. The
// lock travels with the returned transaction and releases when it ends.
func BeginLockedTx(begin func() (*sql.Tx, error), key string) (*sql.Tx, error) {

	appLock := NewPostgresLock()
	for i := 0; i < constants.MaxRetryAttempts; i++ {
		tx, err := begin()
		if err != nil {
			return nil, errors.NewServerError(errors.ErrorMessage{
				Code:        errors.QUERY_EXECUTION.Code,
				Message:     errors.QUERY_EXECUTION.Message,
				Description: fmt.Sprintf("Failed to begin transaction for lock %s", key),
			}, err)
		}

		acquired, err := appLock.AcquireForTx(tx, key)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		if acquired {
			return tx, nil
		}

		_ = tx.Rollback()
		time.Sleep(constants.RetryDelay)
	}
	return nil, errors.NewServerError(errors.ErrorMessage{
		Code:        errors.LOCK_ACQUIRE.Code,
		Message:     errors.LOCK_ACQUIRE.Message,
		Description: fmt.Sprintf("Could not acquire lock %s after %d attempts", key, constants.MaxRetryAttempts),
	}, nil)
}
