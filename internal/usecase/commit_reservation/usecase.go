package commit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	draftRepo "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/storage/draft"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	reservationClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/ptr"
)

// UseCase use case подтверждения бронирования.
// Единственная точка, где намерение гражданина превращается в резервирование
// у авторитетного сервиса. Черновик удаляется только после подтверждения
type UseCase struct {
	draftRepo   DraftRepository
	reservation ReservationClient
	blobClient  BlobServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	draftRepo DraftRepository,
	reservation ReservationClient,
	blobClient BlobServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		draftRepo:   draftRepo,
		reservation: reservation,
		blobClient:  blobClient,
		logger:      logger,
	}
}

// Execute выполняет подтверждение бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CommitReservation: citizen=%s", req.CitizenNIC)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем черновик
	draft, err := uc.draftRepo.GetByCitizen(ctx, req.CitizenNIC)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) || errors.Is(err, draftRepo.ErrDraftCorrupted) {
			uc.logger.Warn("CommitReservation: no committable draft for citizen=%s: %v", req.CitizenNIC, err)
			return nil, fmt.Errorf("%w: no draft to commit", ErrFlowIncomplete)
		}
		uc.logger.Error("CommitReservation: repository error for citizen=%s: %v", req.CitizenNIC, err)
		return nil, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}

	// 3. Проверяем готовность всех шагов
	if err := validateDraftComplete(draft); err != nil {
		uc.logger.Warn("CommitReservation: draft is not complete for citizen=%s: %v", req.CitizenNIC, err)
		return nil, err
	}

	// 4. Закрепляем загруженные документы за гражданином.
	// Ошибка здесь временная: черновик не меняется, подтверждение повторяемо
	if links := documentLinks(draft); len(links) > 0 {
		if err := uc.blobClient.UpdateCitizenDocuments(ctx, req.CitizenNIC, links); err != nil {
			uc.logger.Error("CommitReservation: finalize documents for citizen=%s: %v", req.CitizenNIC, err)
			return nil, fmt.Errorf("%w: failed to finalize documents: %v", ErrReserveTransient, err)
		}
	}

	// 5. Резервируем слот с идемпотентным ключом черновика:
	// повтор после сбоя не создаёт второго резервирования
	reserved, err := uc.reservation.Reserve(ctx, req.CitizenNIC, draft.Slot.ID, draft.CommitKey)
	if err != nil {
		return uc.handleReserveError(ctx, draft, err)
	}

	reservation := reserved.ToDomain()

	// 6. Удаляем черновик: бронирование подтверждено.
	// Ошибка очистки не отменяет уже созданное резервирование
	if err := uc.draftRepo.Delete(ctx, req.CitizenNIC); err != nil {
		uc.logger.Error("CommitReservation: delete draft for citizen=%s after commit: %v", req.CitizenNIC, err)
	}

	uc.logger.Info("CommitReservation: committed reservation reference=%d slot=%d citizen=%s",
		reservation.ReferenceID, reservation.SlotID, req.CitizenNIC)

	return &Response{
		ReferenceID: ptr.Ptr(reservation.ReferenceID),
		SlotID:      reservation.SlotID,
		CitizenNIC:  reservation.CitizenNIC,
	}, nil
}

// handleReserveError разбирает исход неудавшегося резервирования
func (uc *UseCase) handleReserveError(ctx context.Context, draft *domain.DraftBooking, reserveErr error) (*Response, error) {
	switch {
	case errors.Is(reserveErr, reservationClient.ErrSlotFull):
		// Слот заполнился между выбором и подтверждением:
		// сбрасываем только выбор слота, остальной черновик сохраняем
		uc.logger.Warn("CommitReservation: slot=%d is full for citizen=%s", draft.Slot.ID, draft.CitizenNIC)
		draft.ClearSlotSelection()
		if _, err := uc.draftRepo.Save(ctx, draft); err != nil {
			if errors.Is(err, draftRepo.ErrVersionConflict) {
				return nil, ErrDraftConflict
			}
			uc.logger.Error("CommitReservation: save draft after slot conflict: %v", err)
			return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
		}
		return nil, ErrSlotConflict

	case errors.Is(reserveErr, reservationClient.ErrTimeout):
		// Исход неизвестен: проверяем у авторитетного сервиса,
		// не было ли резервирование всё же создано
		uc.logger.Warn("CommitReservation: reserve timed out for citizen=%s, probing", draft.CitizenNIC)
		return uc.probeAfterTimeout(ctx, draft)

	default:
		uc.logger.Error("CommitReservation: reserve failed for citizen=%s: %v", draft.CitizenNIC, reserveErr)
		return nil, fmt.Errorf("%w: reserve failed: %v", ErrReserveTransient, reserveErr)
	}
}

// probeAfterTimeout проверяет существование резервирования после таймаута.
// Подтверждённое резервирование завершает поток; иначе черновик сохраняется
// и возвращается неопределённый исход
func (uc *UseCase) probeAfterTimeout(ctx context.Context, draft *domain.DraftBooking) (*Response, error) {
	reservedSlots, err := uc.reservation.GetReservedSlots(ctx, draft.CitizenNIC)
	if err != nil {
		uc.logger.Error("CommitReservation: probe failed for citizen=%s: %v", draft.CitizenNIC, err)
		return nil, ErrCommitIndeterminate
	}

	for i := range reservedSlots {
		if reservedSlots[i].SlotID != draft.Slot.ID {
			continue
		}
		uc.logger.Info("CommitReservation: probe confirmed reservation slot=%d citizen=%s", draft.Slot.ID, draft.CitizenNIC)
		if err := uc.draftRepo.Delete(ctx, draft.CitizenNIC); err != nil {
			uc.logger.Error("CommitReservation: delete draft after probe for citizen=%s: %v", draft.CitizenNIC, err)
		}
		return &Response{
			SlotID:     draft.Slot.ID,
			CitizenNIC: draft.CitizenNIC,
		}, nil
	}

	uc.logger.Warn("CommitReservation: probe found no reservation for citizen=%s slot=%d", draft.CitizenNIC, draft.Slot.ID)
	return nil, ErrCommitIndeterminate
}

// documentLinks собирает ссылки на загруженные документы в порядке требований
func documentLinks(draft *domain.DraftBooking) []blobservice.DocumentLink {
	links := make([]blobservice.DocumentLink, 0, len(draft.Requirements))
	for _, req := range draft.Requirements {
		doc, ok := draft.Documents[req.ID]
		if !ok || !doc.IsUploaded() {
			continue
		}
		uploadedAt := ""
		if doc.UploadedAt != nil {
			uploadedAt = doc.UploadedAt.Format(time.RFC3339)
		}
		links = append(links, blobservice.DocumentLink{
			Title:      doc.Title,
			UploadedAt: uploadedAt,
			URL:        *doc.URL,
		})
	}
	return links
}
