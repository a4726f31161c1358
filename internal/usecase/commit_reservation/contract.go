package commit_reservation

import (
	"context"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
)

// DraftRepository интерфейс репозитория черновиков бронирования
type DraftRepository interface {
	GetByCitizen(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error)
	Save(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error)
	Delete(ctx context.Context, citizenNIC string) error
}

// ReservationClient интерфейс клиента сервиса резервирования
type ReservationClient interface {
	Reserve(ctx context.Context, citizenNIC string, slotID int64, idempotencyKey string) (*reservationservice.ReservedUser, error)
	GetReservedSlots(ctx context.Context, citizenNIC string) ([]reservationservice.Slot, error)
}

// BlobServiceClient интерфейс клиента хранилища блобов
type BlobServiceClient interface {
	UpdateCitizenDocuments(ctx context.Context, citizenNIC string, links []blobservice.DocumentLink) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
