package flow

import (
	"context"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/govservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
)

// DraftRepository интерфейс репозитория черновиков бронирования
type DraftRepository interface {
	GetByCitizen(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error)
	Save(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error)
	Delete(ctx context.Context, citizenNIC string) error
}

// CatalogClient интерфейс клиента каталога GovService
type CatalogClient interface {
	GetOffices(ctx context.Context, categoryID *int64) ([]govservice.Office, error)
	GetServices(ctx context.Context, officeID int64) ([]govservice.Service, error)
	GetDocumentType(ctx context.Context, documentTypeID int64) (*govservice.DocumentType, error)
}

// BlobServiceClient интерфейс клиента хранилища блобов
type BlobServiceClient interface {
	Upload(ctx context.Context, req blobservice.UploadRequest) (*blobservice.UploadResponse, error)
}

// ReservationClient интерфейс клиента сервиса резервирования
type ReservationClient interface {
	GetAvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]reservationservice.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
