package draft

import (
	"time"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/types"
)

// Снапшоты каталога хранятся в JSONB-колонках черновика.
// Формат закреплен тегами, чтобы переименования доменных полей
// не ломали уже сохраненные черновики.

type localizedSnapshot struct {
	EN string `json:"en"`
	SI string `json:"si"`
	TA string `json:"ta"`
}

func toLocalizedSnapshot(t domain.LocalizedText) localizedSnapshot {
	return localizedSnapshot{EN: t.EN, SI: t.SI, TA: t.TA}
}

func (s localizedSnapshot) toDomain() domain.LocalizedText {
	return domain.LocalizedText{EN: s.EN, SI: s.SI, TA: s.TA}
}

type officeSnapshot struct {
	ID          int64             `json:"id"`
	Name        localizedSnapshot `json:"name"`
	Description localizedSnapshot `json:"description"`
	Location    string            `json:"location"`
	CategoryID  int64             `json:"category_id"`
	Email       string            `json:"email"`
}

func toOfficeSnapshot(o *domain.Office) *officeSnapshot {
	if o == nil {
		return nil
	}
	return &officeSnapshot{
		ID:          o.ID,
		Name:        toLocalizedSnapshot(o.Name),
		Description: toLocalizedSnapshot(o.Description),
		Location:    o.Location,
		CategoryID:  o.CategoryID,
		Email:       o.Email,
	}
}

func (s *officeSnapshot) toDomain() *domain.Office {
	if s == nil {
		return nil
	}
	return &domain.Office{
		ID:          s.ID,
		Name:        s.Name.toDomain(),
		Description: s.Description.toDomain(),
		Location:    s.Location,
		CategoryID:  s.CategoryID,
		Email:       s.Email,
	}
}

type serviceSnapshot struct {
	ID                      int64             `json:"id"`
	OfficeID                int64             `json:"office_id"`
	Name                    localizedSnapshot `json:"name"`
	Description             localizedSnapshot `json:"description"`
	IsActive                bool              `json:"is_active"`
	RequiredDocumentTypeIDs []int64           `json:"required_document_type_ids"`
}

func toServiceSnapshot(s *domain.Service) *serviceSnapshot {
	if s == nil {
		return nil
	}
	return &serviceSnapshot{
		ID:                      s.ID,
		OfficeID:                s.OfficeID,
		Name:                    toLocalizedSnapshot(s.Name),
		Description:             toLocalizedSnapshot(s.Description),
		IsActive:                s.IsActive,
		RequiredDocumentTypeIDs: s.RequiredDocumentTypeIDs,
	}
}

func (s *serviceSnapshot) toDomain() *domain.Service {
	if s == nil {
		return nil
	}
	return &domain.Service{
		ID:                      s.ID,
		OfficeID:                s.OfficeID,
		Name:                    s.Name.toDomain(),
		Description:             s.Description.toDomain(),
		IsActive:                s.IsActive,
		RequiredDocumentTypeIDs: s.RequiredDocumentTypeIDs,
	}
}

type requirementSnapshot struct {
	ID          int64             `json:"id"`
	Name        localizedSnapshot `json:"name"`
	Description localizedSnapshot `json:"description"`
}

func toRequirementSnapshots(reqs []domain.DocumentRequirement) []requirementSnapshot {
	if reqs == nil {
		return nil
	}
	out := make([]requirementSnapshot, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, requirementSnapshot{
			ID:          r.ID,
			Name:        toLocalizedSnapshot(r.Name),
			Description: toLocalizedSnapshot(r.Description),
		})
	}
	return out
}

func requirementsToDomain(snaps []requirementSnapshot) []domain.DocumentRequirement {
	if snaps == nil {
		return nil
	}
	out := make([]domain.DocumentRequirement, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, domain.DocumentRequirement{
			ID:          s.ID,
			Name:        s.Name.toDomain(),
			Description: s.Description.toDomain(),
		})
	}
	return out
}

type documentSnapshot struct {
	DocumentTypeID int64      `json:"document_type_id"`
	Title          string     `json:"title"`
	FileName       string     `json:"file_name"`
	URL            *string    `json:"url"`
	Uploaded       bool       `json:"uploaded"`
	UploadedAt     *time.Time `json:"uploaded_at"`
}

func toDocumentSnapshots(docs map[int64]*domain.UploadedDocument) map[int64]documentSnapshot {
	out := make(map[int64]documentSnapshot, len(docs))
	for id, d := range docs {
		out[id] = documentSnapshot{
			DocumentTypeID: d.DocumentTypeID,
			Title:          d.Title,
			FileName:       d.FileName,
			URL:            d.URL,
			Uploaded:       d.Uploaded,
			UploadedAt:     d.UploadedAt,
		}
	}
	return out
}

func documentsToDomain(snaps map[int64]documentSnapshot) map[int64]*domain.UploadedDocument {
	out := make(map[int64]*domain.UploadedDocument, len(snaps))
	for id, s := range snaps {
		out[id] = &domain.UploadedDocument{
			DocumentTypeID: s.DocumentTypeID,
			Title:          s.Title,
			FileName:       s.FileName,
			URL:            s.URL,
			Uploaded:       s.Uploaded,
			UploadedAt:     s.UploadedAt,
		}
	}
	return out
}

type slotSnapshot struct {
	ID            int64  `json:"id"`
	ServiceID     int64  `json:"service_id"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	MaxCapacity   int    `json:"max_capacity"`
	ReservedCount int    `json:"reserved_count"`
	Status        string `json:"status"`
}

func toSlotSnapshot(s *domain.TimeSlot) *slotSnapshot {
	if s == nil {
		return nil
	}
	return &slotSnapshot{
		ID:            s.ID,
		ServiceID:     s.ServiceID,
		BookingDate:   s.BookingDate.Format(domain.DateFormat),
		StartTime:     s.StartTime.String(),
		EndTime:       s.EndTime.String(),
		MaxCapacity:   s.MaxCapacity,
		ReservedCount: s.ReservedCount,
		Status:        string(s.Status),
	}
}

func (s *slotSnapshot) toDomain() (*domain.TimeSlot, error) {
	if s == nil {
		return nil, nil
	}
	bookingDate, err := time.Parse(domain.DateFormat, s.BookingDate)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(s.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(s.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.TimeSlot{
		ID:            s.ID,
		ServiceID:     s.ServiceID,
		BookingDate:   bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		MaxCapacity:   s.MaxCapacity,
		ReservedCount: s.ReservedCount,
		Status:        domain.SlotStatus(s.Status),
	}, nil
}
