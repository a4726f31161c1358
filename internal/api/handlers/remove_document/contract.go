package remove_document

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type FlowService interface {
	RemoveDocument(ctx context.Context, citizenNIC string, req *models.RemoveDocumentRequest) (*models.FlowStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
