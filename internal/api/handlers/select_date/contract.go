package select_date

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type FlowService interface {
	SelectDate(ctx context.Context, citizenNIC string, req *models.SelectDateRequest) (*models.FlowStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
