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

// Package service provides the business logic for the signature history.
// Every deploy and rollback preserves the signature it is about to replace,
// so an admin can always restore what a user had before.
package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/wso2/identity-email-signature-service/internal/history/model"
	"github.com/wso2/identity-email-signature-service/internal/history/store"
	"github.com/wso2/identity-email-signature-service/internal/system/config"
)

const defaultHistoryLimit = 20

// HistoryServiceInterface defines the operations on the signature history.
type HistoryServiceInterface interface {
	RecordSnapshot(userId, mail, html, plainText, source string) (*model.SignatureSnapshot, error)
	GetHistory(userId string, limit int) ([]model.SignatureSnapshot, error)
	GetLatestSnapshot(userId string) (*model.SignatureSnapshot, error)
}

// HistoryService is the default implementation of the
// HistoryServiceInterface.
type HistoryService struct{}

// GetHistoryService creates a new instance of HistoryService.
func GetHistoryService() HistoryServiceInterface {

	return &HistoryService{}
}

// RecordSnapshot preserves a signature value before it gets replaced.
func (hs *HistoryService) RecordSnapshot(userId, mail, html, plainText, source string) (*model.SignatureSnapshot, error) {

	snapshot := model.SignatureSnapshot{
		SnapshotId: uuid.New().String(),
		UserId:     userId,
		Mail:       mail,
		Html:       html,
		PlainText:  plainText,
		CapturedAt: time.Now().Unix(),
		Source:     source,
	}
	if err := store.InsertSnapshot(snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetHistory returns the most recent snapshots of a user, newest first. A
// limit of zero or less falls back to the configured history limit.
func (hs *HistoryService) GetHistory(userId string, limit int) ([]model.SignatureSnapshot, error) {

	if limit <= 0 {
		limit = config.GetESSRuntime().Config.Audit.HistoryLimit
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	snapshots, err := store.GetSnapshotsByUserId(userId, int64(limit))
	if err != nil {
		return nil, err
	}
	if snapshots == nil {
		snapshots = []model.SignatureSnapshot{}
	}
	return snapshots, nil
}

// GetLatestSnapshot returns the most recent snapshot of a user, nil when
// the user has none.
func (hs *HistoryService) GetLatestSnapshot(userId string) (*model.SignatureSnapshot, error) {

	return store.GetLatestSnapshotByUserId(userId)
}
