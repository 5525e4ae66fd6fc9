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

package store

import (
	"encoding/json"
	"fmt"

	"github.com/wso2/identity-email-signature-service/internal/overrides/model"
	"github.com/wso2/identity-email-signature-service/internal/system/database/lock"
	"github.com/wso2/identity-email-signature-service/internal/system/database/provider"
	"github.com/wso2/identity-email-signature-service/internal/system/database/scripts"
	errors2 "github.com/wso2/identity-email-signature-service/internal/system/errors"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// UpsertOverride inserts or replaces the override record for a user. The
// write runs in a transaction holding the user's advisory lock; concurrent
// saves to the same user resolve last-writer-wins.
func UpsertOverride(record model.OverrideRecord) error {

	logger := log.GetLogger()

	hiddenJSON, err := json.Marshal(record.HiddenFields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to marshal hidden fields for user: %s", record.UserId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for saving override of user: %s", record.UserId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := lock.BeginLockedTx(dbClient.BeginTx, "lock:override:"+record.UserId)
	if err != nil {
		return err
	}

	query := scripts.UpsertOverride[provider.NewDBProvider().GetDBType()]
	_, err = tx.Exec(query,
		record.UserId, record.Name, record.JobTitle, record.Department,
		record.BusinessPhone, record.MobilePhone, record.WorkingDays,
		record.Pronouns, record.DectPhone, string(hiddenJSON), record.LastModified)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to save override for user: %s", record.UserId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit override save for user: %s", record.UserId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Successfully saved override for user_id: " + record.UserId)
	return nil
}

// GetOverrideByUserId fetches the override record of one user. Returns nil
// when the user has no overrides.
func GetOverrideByUserId(userId string) (*model.OverrideRecord, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching override of user: %s", userId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetOverrideByUserId[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, userId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching override for user_id: %s", userId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No override found for user_id: %s", userId))
		return nil, nil
	}

	record, err := buildOverride(results[0])
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetAllOverrides fetches every override record ordered by user id.
func GetAllOverrides() ([]model.OverrideRecord, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed to get database client for fetching overrides"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetAllOverrides[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in fetching overrides"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}

	records := make([]model.OverrideRecord, 0, len(results))
	for _, row := range results {
		record, err := buildOverride(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteOverrideByUserId removes the override record of one user. Returns
// false when the user had none.
func DeleteOverrideByUserId(userId string) (bool, error) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for deleting override of user: %s", userId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := lock.BeginLockedTx(dbClient.BeginTx, "lock:override:"+userId)
	if err != nil {
		return false, err
	}

	query := scripts.DeleteOverrideByUserId[provider.NewDBProvider().GetDBType()]
	result, err := tx.Exec(query, userId)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to delete override for user: %s", userId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	affected, _ := result.RowsAffected()

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit override deletion for user: %s", userId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.QUERY_EXECUTION.Code,
			Message:     errors2.QUERY_EXECUTION.Message,
			Description: errorMsg,
		}, err)
	}
	if affected == 0 {
		return false, nil
	}

	logger.Info("Successfully deleted override for user_id: " + userId)
	return true, nil
}

// buildOverride maps a result row onto an OverrideRecord.
func buildOverride(row map[string]interface{}) (model.OverrideRecord, error) {

	record := model.OverrideRecord{
		UserId:        rowString(row, "user_id"),
		Name:          rowString(row, "name"),
		JobTitle:      rowString(row, "job_title"),
		Department:    rowString(row, "department"),
		BusinessPhone: rowString(row, "business_phone"),
		MobilePhone:   rowString(row, "mobile_phone"),
		WorkingDays:   rowString(row, "working_days"),
		Pronouns:      rowString(row, "pronouns"),
		DectPhone:     rowString(row, "dect_phone"),
		LastModified:  rowInt64(row, "last_modified"),
	}

	hiddenJSON := rowString(row, "hidden_fields")
	if hiddenJSON != "" {
		if err := json.Unmarshal([]byte(hiddenJSON), &record.HiddenFields); err != nil {
			errorMsg := fmt.Sprintf("Failed to unmarshal hidden fields for user: %s", record.UserId)
			log.GetLogger().Debug(errorMsg, log.Error(err))
			return model.OverrideRecord{}, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return record, nil
}

func rowString(row map[string]interface{}, key string) string {

	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func rowInt64(row map[string]interface{}, key string) int64 {

	if v, ok := row[key].(int64); ok {
		return v
	}
	return 0
}
