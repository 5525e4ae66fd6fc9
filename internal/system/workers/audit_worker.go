package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	auditmodel "github.com/wso2/identity-email-signature-service/internal/audit/model"
	auditservice "github.com/wso2/identity-email-signature-service/internal/audit/service"
	"github.com/wso2/identity-email-signature-service/internal/system/constants"
	"github.com/wso2/identity-email-signature-service/internal/system/log"
)

// AuditRunRequest carries a registered run to the worker together with the
// context the run must honor for cancellation.
type AuditRunRequest struct {
	Run auditmodel.AuditRun
	Ctx context.Context
}

var AuditRunQueue chan AuditRunRequest

// StartAuditWorker starts the background executor for audit runs. Runs are
// executed one at a time in enqueue order.
func StartAuditWorker() {

	AuditRunQueue = make(chan AuditRunRequest, constants.DefaultQueueSize)

	go func() {
		for request := range AuditRunQueue {
			executeAuditRun(request)
		}
	}()
}

// EnqueueAuditRun hands a registered run to the executor.
func EnqueueAuditRun(request AuditRunRequest) {
	if AuditRunQueue != nil {
		AuditRunQueue <- request
	}
}

func executeAuditRun(request AuditRunRequest) {

	logger := log.GetLogger()
	registry := auditservice.GetRunRegistry()
	audit := auditservice.GetAuditService()

	logger.Info(fmt.Sprintf("Executing audit run: %s", request.Run.RunId))
	start := time.Now()
	results, err := audit.AuditAll(request.Ctx, registry.UpdateProgress)
	switch {
	case err == nil:
		registry.CompleteRun(results, audit.Summarize(results, time.Since(start)))
		logger.Info(fmt.Sprintf("Audit run completed: %s", request.Run.RunId))
	case errors.Is(err, context.Canceled):
		registry.RecordCancellation(results, audit.Summarize(results, time.Since(start)))
		logger.Info(fmt.Sprintf("Audit run cancelled: %s", request.Run.RunId))
	default:
		registry.FailRun(err.Error())
		logger.Error(fmt.Sprintf("Audit run failed: %s", request.Run.RunId), log.Error(err))
	}
}
