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

package errors

const errorPrefix = "ESS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	QUERY_EXECUTION = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Advisory lock acquisition failed",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error generating advisory lock key",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while un-marshalling JSON.",
	}

	MONGO_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Unable to initialize document store client.",
	}

	MONGO_EXECUTION = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while executing document store operation.",
	}

	ADD_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while adding signature template.",
	}

	GET_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching signature template(s).",
	}

	UPDATE_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while updating signature template.",
	}

	DELETE_TEMPLATE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while deleting signature template.",
	}

	SAVE_OVERRIDE = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while saving signature override.",
	}

	GET_OVERRIDE = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while fetching signature override(s).",
	}

	DELETE_OVERRIDE = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while deleting signature override.",
	}

	TEMPLATE_MIGRATION = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Signature template schema migration failed.",
	}

	DIRECTORY_REQUEST = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Directory service request failed.",
	}

	DIRECTORY_TOKEN = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while fetching directory access token.",
	}

	MAILBOX_REQUEST = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Mailbox service request failed.",
	}

	ADD_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Error while recording signature snapshot.",
	}

	GET_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15021",
		Message: "Error while fetching signature snapshot(s).",
	}

	AUDIT_RUN = ErrorMessage{
		Code:    errorPrefix + "15022",
		Message: "Audit run execution failed.",
	}

	INTROSPECTION_FAILED = ErrorMessage{
		Code:    errorPrefix + "15023",
		Message: "Introspection failed.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15024",
		Message: "Parsing token failed.",
	}

	DEPLOY_SIGNATURE = ErrorMessage{
		Code:    errorPrefix + "15025",
		Message: "Error while deploying signature.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}

	TEMPLATE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Signature template not found.",
		Description: "No signature template record found for the given template_id",
	}

	TEMPLATE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Validation failed for signature template.",
	}

	DEFAULT_TEMPLATE_DELETE = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Default template cannot be deleted.",
		Description: "The designated default signature template is required by audits and cannot be deleted.",
	}

	OVERRIDE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Signature override not found.",
		Description: "No signature override record found for the given user_id",
	}

	OVERRIDE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Validation failed for signature override.",
	}

	USER_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "User not found.",
		Description: "No directory user found for the given identifier",
	}

	AUDIT_RUN_IN_PROGRESS = ErrorMessage{
		Code:        errorPrefix + "11010",
		Message:     "An audit run is already in progress.",
		Description: "Only one audit run may execute at a time. Cancel the running audit or wait for it to complete.",
	}

	AUDIT_RUN_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11011",
		Message:     "No audit run found.",
		Description: "No audit run has been executed yet.",
	}

	SNAPSHOT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11012",
		Message:     "No signature snapshot found.",
		Description: "No signature history exists for the given user_id to roll back to.",
	}

	SIGNATURE_NOT_DEPLOYABLE = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Signature is not in a deployable state.",
	}

	PROFILE_UPDATE_FAILED = ErrorMessage{
		Code:    errorPrefix + "11014",
		Message: "Directory profile update failed.",
	}

	DEFAULT_TEMPLATE_MISSING = ErrorMessage{
		Code:        errorPrefix + "11015",
		Message:     "No default template designated.",
		Description: "Audits require exactly one signature template to be designated as default.",
	}
)
