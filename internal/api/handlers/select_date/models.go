package select_date

import (
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

// SelectDateRequest HTTP request model
type SelectDateRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// ToServiceRequest парсит дату и создает запрос сервиса потока
func (r *SelectDateRequest) ToServiceRequest() (*models.SelectDateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.SelectDateRequest{Date: date}, nil
}
