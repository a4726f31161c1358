package attach_document

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type FlowService interface {
	AttachDocument(ctx context.Context, citizenNIC string, req *models.AttachDocumentRequest) (*models.FlowStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
