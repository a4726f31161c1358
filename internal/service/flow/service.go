package flow

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	draftRepo "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/storage/draft"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	reservationClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

// Service пошаговый контроллер потока бронирования.
// Все операции загружают черновик гражданина, применяют изменение
// и сохраняют результат; состояние потока всегда вычисляется из черновика
type Service struct {
	draftRepo   DraftRepository
	catalog     CatalogClient
	blobClient  BlobServiceClient
	reservation ReservationClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса потока бронирования
func NewService(
	draftRepo DraftRepository,
	catalog CatalogClient,
	blobClient BlobServiceClient,
	reservation ReservationClient,
	logger Logger,
) *Service {
	return &Service{
		draftRepo:   draftRepo,
		catalog:     catalog,
		blobClient:  blobClient,
		reservation: reservation,
		logger:      logger,
	}
}

// GetState возвращает текущее состояние потока гражданина.
// Отсутствие черновика не является ошибкой: возвращается пустой поток
func (s *Service) GetState(ctx context.Context, citizenNIC string) (*models.FlowStateResponse, error) {
	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDraft(draft), nil
}

// SelectOffice выбирает учреждение. Выбор другого учреждения сбрасывает
// все последующие шаги; при недоступном каталоге черновик не меняется
func (s *Service) SelectOffice(ctx context.Context, citizenNIC string, req *models.SelectOfficeRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("SelectOffice: citizen=%s office=%d", citizenNIC, req.OfficeID)

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	offices, err := s.catalog.GetOffices(ctx, nil)
	if err != nil {
		s.logger.Error("SelectOffice: catalog error: %v", err)
		return nil, fmt.Errorf("%w: SelectOffice - fetch offices: %v", ErrCatalogUnavailable, err)
	}

	var office *domain.Office
	for i := range offices {
		if offices[i].ID == req.OfficeID {
			d := offices[i].ToDomain()
			office = &d
			break
		}
	}
	if office == nil {
		s.logger.Warn("SelectOffice: office=%d not found", req.OfficeID)
		return nil, ErrOfficeNotFound
	}

	draft.SelectOffice(*office)

	return s.saveDraft(ctx, draft)
}

// SelectService выбирает услугу учреждения и подгружает список требуемых
// документов. Неактивные услуги недоступны для записи
func (s *Service) SelectService(ctx context.Context, citizenNIC string, req *models.SelectServiceRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("SelectService: citizen=%s service=%d", citizenNIC, req.ServiceID)

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	if draft.Office == nil {
		return nil, fmt.Errorf("%w: office is not selected", ErrStepIncomplete)
	}

	services, err := s.catalog.GetServices(ctx, draft.Office.ID)
	if err != nil {
		s.logger.Error("SelectService: catalog error: %v", err)
		return nil, fmt.Errorf("%w: SelectService - fetch services: %v", ErrCatalogUnavailable, err)
	}

	var service *domain.Service
	for i := range services {
		if services[i].ServiceID == req.ServiceID {
			d := services[i].ToDomain()
			service = &d
			break
		}
	}
	if service == nil || !service.IsActive {
		s.logger.Warn("SelectService: service=%d not found or inactive for office=%d", req.ServiceID, draft.Office.ID)
		return nil, ErrServiceNotFound
	}

	// Список требований загружается вместе с выбором услуги,
	// чтобы набор шагов был известен сразу
	requirements := make([]domain.DocumentRequirement, 0, len(service.RequiredDocumentTypeIDs))
	for _, documentTypeID := range service.RequiredDocumentTypeIDs {
		documentType, err := s.catalog.GetDocumentType(ctx, documentTypeID)
		if err != nil {
			s.logger.Error("SelectService: fetch document type=%d: %v", documentTypeID, err)
			return nil, fmt.Errorf("%w: SelectService - fetch document type: %v", ErrCatalogUnavailable, err)
		}
		requirements = append(requirements, documentType.ToDomain())
	}

	draft.SelectService(*service, requirements)

	return s.saveDraft(ctx, draft)
}

// AttachDocument загружает файл в хранилище блобов и записывает документ
// в черновик. Повторная загрузка того же типа заменяет предыдущий документ
func (s *Service) AttachDocument(ctx context.Context, citizenNIC string, req *models.AttachDocumentRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("AttachDocument: citizen=%s document_type=%d file=%s", citizenNIC, req.DocumentTypeID, req.FileName)

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	if draft.Service == nil || !draft.RequirementsLoaded {
		return nil, fmt.Errorf("%w: service is not selected", ErrStepIncomplete)
	}

	var requirement *domain.DocumentRequirement
	for i := range draft.Requirements {
		if draft.Requirements[i].ID == req.DocumentTypeID {
			requirement = &draft.Requirements[i]
			break
		}
	}
	if requirement == nil {
		s.logger.Warn("AttachDocument: document_type=%d is not required by service=%d", req.DocumentTypeID, draft.Service.ID)
		return nil, ErrDocumentNotRequired
	}

	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	if len(req.Data) > domain.MaxDocumentSizeBytes {
		s.logger.Warn("AttachDocument: file %s exceeds size limit (%d bytes)", req.FileName, len(req.Data))
		return nil, ErrDocumentTooLarge
	}
	blobContentType, ok := domain.AllowedDocumentContentTypes[req.ContentType]
	if !ok {
		s.logger.Warn("AttachDocument: unsupported content type %s", req.ContentType)
		return nil, ErrUnsupportedDocumentType
	}

	uploaded, err := s.blobClient.Upload(ctx, blobservice.UploadRequest{
		ContentType: blobContentType,
		File:        base64.StdEncoding.EncodeToString(req.Data),
		Filename:    req.FileName,
	})
	if err != nil {
		s.logger.Error("AttachDocument: upload failed for citizen=%s file=%s: %v", citizenNIC, req.FileName, err)
		return nil, fmt.Errorf("%w: AttachDocument - upload: %v", ErrUploadFailed, err)
	}

	now := time.Now().UTC()
	draft.AttachDocument(domain.UploadedDocument{
		DocumentTypeID: requirement.ID,
		Title:          requirement.Name.Get("en"),
		FileName:       uploaded.Filename,
		URL:            &uploaded.URL,
		Uploaded:       true,
		UploadedAt:     &now,
	})

	return s.saveDraft(ctx, draft)
}

// RemoveDocument удаляет загруженный документ из черновика
func (s *Service) RemoveDocument(ctx context.Context, citizenNIC string, req *models.RemoveDocumentRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("RemoveDocument: citizen=%s document_type=%d", citizenNIC, req.DocumentTypeID)

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	draft.RemoveDocument(req.DocumentTypeID)

	return s.saveDraft(ctx, draft)
}

// SelectDate выбирает дату записи. Смена даты сбрасывает выбранный слот
func (s *Service) SelectDate(ctx context.Context, citizenNIC string, req *models.SelectDateRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("SelectDate: citizen=%s date=%s", citizenNIC, req.Date.Format(domain.DateFormat))

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	if draft.Service == nil {
		return nil, fmt.Errorf("%w: service is not selected", ErrStepIncomplete)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date.Before(today) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	draft.SelectDate(req.Date)

	return s.saveDraft(ctx, draft)
}

// SelectSlot выбирает временной слот из актуального расписания на выбранную
// дату. Слот без свободных мест выбрать нельзя
func (s *Service) SelectSlot(ctx context.Context, citizenNIC string, req *models.SelectSlotRequest) (*models.FlowStateResponse, error) {
	s.logger.Info("SelectSlot: citizen=%s slot=%d", citizenNIC, req.SlotID)

	draft, err := s.loadDraft(ctx, citizenNIC)
	if err != nil {
		return nil, err
	}

	if draft.Service == nil || draft.AppointmentDate == nil {
		return nil, fmt.Errorf("%w: date is not selected", ErrStepIncomplete)
	}

	// Расписание перечитывается у авторитетного сервиса, снапшот в черновике
	// не используется для проверки доступности
	slots, err := s.reservation.GetAvailableSlots(ctx, draft.Service.ID, *draft.AppointmentDate)
	if err != nil {
		if errors.Is(err, reservationClient.ErrSlotNotFound) {
			s.logger.Warn("SelectSlot: no schedule for service=%d date=%s", draft.Service.ID, draft.AppointmentDate.Format(domain.DateFormat))
			return nil, ErrSlotNotFound
		}
		s.logger.Error("SelectSlot: reservation service error: %v", err)
		return nil, fmt.Errorf("%w: SelectSlot - fetch slots: %v", ErrScheduleUnavailable, err)
	}

	var slot *domain.TimeSlot
	for i := range slots {
		if slots[i].SlotID == req.SlotID {
			converted, convErr := slots[i].ToDomain()
			if convErr != nil {
				s.logger.Error("SelectSlot: decode slot=%d: %v", req.SlotID, convErr)
				return nil, fmt.Errorf("%w: SelectSlot - decode slot: %v", ErrInternal, convErr)
			}
			slot = &converted
			break
		}
	}
	if slot == nil {
		s.logger.Warn("SelectSlot: slot=%d not found for service=%d", req.SlotID, draft.Service.ID)
		return nil, ErrSlotNotFound
	}

	if slot.IsFull() {
		s.logger.Warn("SelectSlot: slot=%d is full", req.SlotID)
		return nil, ErrSlotFull
	}

	draft.SelectSlot(*slot)

	return s.saveDraft(ctx, draft)
}

// Restart удаляет черновик гражданина и возвращает пустое состояние потока
func (s *Service) Restart(ctx context.Context, citizenNIC string) (*models.FlowStateResponse, error) {
	s.logger.Info("Restart: citizen=%s", citizenNIC)

	if err := s.draftRepo.Delete(ctx, citizenNIC); err != nil {
		s.logger.Error("Restart: delete draft for citizen=%s: %v", citizenNIC, err)
		return nil, fmt.Errorf("%w: Restart - delete draft: %v", ErrInternal, err)
	}

	return models.FromDomainDraft(domain.NewDraftBooking(citizenNIC)), nil
}

// loadDraft загружает черновик гражданина. Отсутствующий черновик заменяется
// новым пустым; повреждённый черновик удаляется и поток начинается заново
func (s *Service) loadDraft(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error) {
	draft, err := s.draftRepo.GetByCitizen(ctx, citizenNIC)
	if err != nil {
		switch {
		case errors.Is(err, draftRepo.ErrDraftNotFound):
			return domain.NewDraftBooking(citizenNIC), nil
		case errors.Is(err, draftRepo.ErrDraftCorrupted):
			s.logger.Warn("loadDraft: corrupted draft for citizen=%s, starting over: %v", citizenNIC, err)
			if err := s.draftRepo.Delete(ctx, citizenNIC); err != nil {
				return nil, fmt.Errorf("%w: loadDraft - delete corrupted draft: %v", ErrInternal, err)
			}
			return domain.NewDraftBooking(citizenNIC), nil
		default:
			s.logger.Error("loadDraft: repository error for citizen=%s: %v", citizenNIC, err)
			return nil, fmt.Errorf("%w: loadDraft - repository error: %v", ErrInternal, err)
		}
	}
	return draft, nil
}

// saveDraft сохраняет черновик и возвращает свежее состояние потока
func (s *Service) saveDraft(ctx context.Context, draft *domain.DraftBooking) (*models.FlowStateResponse, error) {
	saved, err := s.draftRepo.Save(ctx, draft)
	if err != nil {
		if errors.Is(err, draftRepo.ErrVersionConflict) {
			s.logger.Warn("saveDraft: version conflict for citizen=%s", draft.CitizenNIC)
			return nil, ErrDraftConflict
		}
		s.logger.Error("saveDraft: repository error for citizen=%s: %v", draft.CitizenNIC, err)
		return nil, fmt.Errorf("%w: saveDraft - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDraft(saved), nil
}
