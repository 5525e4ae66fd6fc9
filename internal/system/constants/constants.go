package constants

import "time"

const ApiBasePath = "/signature-service/v1"

const MaxRetryAttempts = 10
const RetryDelay = 100 * time.Millisecond
const DefaultQueueSize = 100
const TemplateApiPath = "templates"
const OverrideApiPath = "overrides"
const SignatureApiPath = "signatures"
const AuditApiPath = "audits"
const UserApiPath = "users"

type contextKey string

const TraceIDContextKey contextKey = "traceId"

// Resource names used when logging response encoding failures.
const (
	TemplateResource  = "signature template"
	OverrideResource  = "signature override"
	SignatureResource = "signature"
	AuditResource     = "audit run"
	ProfileResource   = "directory profile"
	HealthResource    = "health status"
)

// Canonical field identifiers. FieldSpec ids are stored lowercase; matching
// is case-insensitive everywhere.
const (
	FieldName          = "name"
	FieldJobTitle      = "jobtitle"
	FieldDepartment    = "department"
	FieldBusinessPhone = "businessphone"
	FieldMobilePhone   = "mobilephone"
	FieldEmail         = "email"
	FieldWorkingDays   = "workingdays"
	FieldDectPhone     = "dectphone"
)

// CanonicalFieldIds defines the fixed field identifiers every template is
// reconciled against. Anything else is a custom field.
var CanonicalFieldIds = map[string]bool{
	FieldName:          true,
	FieldJobTitle:      true,
	FieldDepartment:    true,
	FieldBusinessPhone: true,
	FieldMobilePhone:   true,
	FieldEmail:         true,
	FieldWorkingDays:   true,
	FieldDectPhone:     true,
}

// Discrepancy field labels used in audit results.
const (
	DiscrepancyJobTitle      = "JobTitle"
	DiscrepancyDepartment    = "Department"
	DiscrepancyPhone         = "Phone"
	DiscrepancyMailboxAccess = "MailboxAccess"
	DiscrepancySignature     = "Signature"
	DiscrepancyName          = "Name"
	DiscrepancyEmail         = "Email"
	DiscrepancyContent       = "Content"
)

// Signature snapshot sources.
const (
	SnapshotSourceDeploy   = "deploy"
	SnapshotSourceRollback = "rollback"
	SnapshotSourceManual   = "manual"
)

// Audit run states.
const (
	RunStateRunning   = "running"
	RunStateCompleted = "completed"
	RunStateCancelled = "cancelled"
	RunStateFailed    = "failed"
)
