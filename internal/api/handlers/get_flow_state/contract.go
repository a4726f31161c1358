package get_flow_state

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type FlowService interface {
	GetState(ctx context.Context, citizenNIC string) (*models.FlowStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
