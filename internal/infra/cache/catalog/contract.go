package catalog

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/govservice"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CatalogClient интерфейс клиента каталога, который оборачивает кэш
type CatalogClient interface {
	GetOffices(ctx context.Context, categoryID *int64) ([]govservice.Office, error)
	GetServices(ctx context.Context, officeID int64) ([]govservice.Service, error)
	GetDocumentType(ctx context.Context, documentTypeID int64) (*govservice.DocumentType, error)
}
