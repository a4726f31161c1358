package models

import (
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
)

// Request модели

// SelectOfficeRequest запрос выбора учреждения
type SelectOfficeRequest struct {
	OfficeID int64 `json:"office_id"`
}

// SelectServiceRequest запрос выбора услуги
type SelectServiceRequest struct {
	ServiceID int64 `json:"service_id"`
}

// AttachDocumentRequest запрос загрузки документа по одному из требований
// Data содержит уже декодированное содержимое файла
type AttachDocumentRequest struct {
	DocumentTypeID int64
	FileName       string
	ContentType    string
	Data           []byte
}

// RemoveDocumentRequest запрос удаления загруженного документа
type RemoveDocumentRequest struct {
	DocumentTypeID int64 `json:"document_type_id"`
}

// SelectDateRequest запрос выбора даты записи
type SelectDateRequest struct {
	Date time.Time
}

// SelectSlotRequest запрос выбора временного слота
type SelectSlotRequest struct {
	SlotID int64 `json:"slot_id"`
}

// Response модели

// LocalizedTextResponse локализованный текст на трёх языках
type LocalizedTextResponse struct {
	EN string `json:"en"`
	SI string `json:"si"`
	TA string `json:"ta"`
}

// OfficeResponse выбранное учреждение в состоянии потока
type OfficeResponse struct {
	ID          int64                 `json:"id"`
	Name        LocalizedTextResponse `json:"name"`
	Description LocalizedTextResponse `json:"description"`
	Location    string                `json:"location"`
	CategoryID  int64                 `json:"category_id"`
	Email       string                `json:"email"`
}

// ServiceResponse выбранная услуга в состоянии потока
type ServiceResponse struct {
	ID          int64                 `json:"id"`
	OfficeID    int64                 `json:"office_id"`
	Name        LocalizedTextResponse `json:"name"`
	Description LocalizedTextResponse `json:"description"`
	IsActive    bool                  `json:"is_active"`
}

// RequirementResponse требуемый документ выбранной услуги
type RequirementResponse struct {
	ID          int64                 `json:"id"`
	Name        LocalizedTextResponse `json:"name"`
	Description LocalizedTextResponse `json:"description"`
}

// DocumentResponse состояние загруженного документа
type DocumentResponse struct {
	DocumentTypeID int64      `json:"document_type_id"`
	Title          string     `json:"title"`
	FileName       string     `json:"file_name"`
	URL            *string    `json:"url,omitempty"`
	Uploaded       bool       `json:"uploaded"`
	UploadedAt     *time.Time `json:"uploaded_at,omitempty"`
}

// SlotResponse выбранный временной слот
type SlotResponse struct {
	ID             int64  `json:"slot_id"`
	ServiceID      int64  `json:"service_id"`
	BookingDate    string `json:"booking_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MaxCapacity    int    `json:"max_capacity"`
	ReservedCount  int    `json:"reserved_count"`
	AvailableSpots int    `json:"available_spots"`
	Availability   string `json:"availability"`
}

// StepState шаг потока и признак его завершения
type StepState struct {
	Step      string `json:"step"`
	Completed bool   `json:"completed"`
}

// FlowStateResponse полное состояние потока бронирования гражданина
type FlowStateResponse struct {
	CitizenNIC      string                `json:"citizen_nic"`
	CurrentStep     string                `json:"current_step"`
	Steps           []StepState           `json:"steps"`
	Office          *OfficeResponse       `json:"office,omitempty"`
	Service         *ServiceResponse      `json:"service,omitempty"`
	Requirements    []RequirementResponse `json:"requirements,omitempty"`
	Documents       []DocumentResponse    `json:"documents,omitempty"`
	AppointmentDate *string               `json:"appointment_date,omitempty"`
	Slot            *SlotResponse         `json:"slot,omitempty"`
	ReadyToCommit   bool                  `json:"ready_to_commit"`
}

// FromDomainDraft конвертирует доменный черновик в ответ API
func FromDomainDraft(draft *domain.DraftBooking) *FlowStateResponse {
	resp := &FlowStateResponse{
		CitizenNIC:    draft.CitizenNIC,
		CurrentStep:   string(draft.CurrentStep()),
		ReadyToCommit: draft.IsComplete(),
	}

	for _, step := range draft.Steps() {
		if step == domain.StepDone {
			continue
		}
		resp.Steps = append(resp.Steps, StepState{
			Step:      string(step),
			Completed: draft.StepCompleted(step),
		})
	}

	if draft.Office != nil {
		resp.Office = fromDomainOffice(draft.Office)
	}
	if draft.Service != nil {
		resp.Service = fromDomainService(draft.Service)
	}
	for _, req := range draft.Requirements {
		resp.Requirements = append(resp.Requirements, RequirementResponse{
			ID:          req.ID,
			Name:        fromDomainText(req.Name),
			Description: fromDomainText(req.Description),
		})
		// Документы отдаются в порядке требований
		if doc, ok := draft.Documents[req.ID]; ok {
			resp.Documents = append(resp.Documents, DocumentResponse{
				DocumentTypeID: doc.DocumentTypeID,
				Title:          doc.Title,
				FileName:       doc.FileName,
				URL:            doc.URL,
				Uploaded:       doc.Uploaded,
				UploadedAt:     doc.UploadedAt,
			})
		}
	}
	if draft.AppointmentDate != nil {
		date := draft.AppointmentDate.Format(domain.DateFormat)
		resp.AppointmentDate = &date
	}
	if draft.Slot != nil {
		resp.Slot = FromDomainSlot(draft.Slot)
	}

	return resp
}

// FromDomainSlot конвертирует доменный слот в ответ API
func FromDomainSlot(slot *domain.TimeSlot) *SlotResponse {
	return &SlotResponse{
		ID:             slot.ID,
		ServiceID:      slot.ServiceID,
		BookingDate:    slot.BookingDate.Format(domain.DateFormat),
		StartTime:      slot.StartTime.String(),
		EndTime:        slot.EndTime.String(),
		MaxCapacity:    slot.MaxCapacity,
		ReservedCount:  slot.ReservedCount,
		AvailableSpots: slot.AvailableSpots(),
		Availability:   string(slot.Availability()),
	}
}

func fromDomainOffice(office *domain.Office) *OfficeResponse {
	return &OfficeResponse{
		ID:          office.ID,
		Name:        fromDomainText(office.Name),
		Description: fromDomainText(office.Description),
		Location:    office.Location,
		CategoryID:  office.CategoryID,
		Email:       office.Email,
	}
}

func fromDomainService(service *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:          service.ID,
		OfficeID:    service.OfficeID,
		Name:        fromDomainText(service.Name),
		Description: fromDomainText(service.Description),
		IsActive:    service.IsActive,
	}
}

func fromDomainText(t domain.LocalizedText) LocalizedTextResponse {
	return LocalizedTextResponse{EN: t.EN, SI: t.SI, TA: t.TA}
}
