package restart_flow

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type FlowService interface {
	Restart(ctx context.Context, citizenNIC string) (*models.FlowStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
