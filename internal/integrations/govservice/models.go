package govservice

import "github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"

// Office модель государственного учреждения из каталога GovService
type Office struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	CategoryID    int64  `json:"category_id"`
	Location      string `json:"location"`
	NameEN        string `json:"name_en"`
	NameSI        string `json:"name_si"`
	NameTA        string `json:"name_ta"`
	DescriptionEN string `json:"description_en"`
	DescriptionSI string `json:"description_si"`
	DescriptionTA string `json:"description_ta"`
}

// ToDomain конвертирует модель каталога в доменную модель
func (o *Office) ToDomain() domain.Office {
	return domain.Office{
		ID:          o.ID,
		Name:        domain.LocalizedText{EN: o.NameEN, SI: o.NameSI, TA: o.NameTA},
		Description: domain.LocalizedText{EN: o.DescriptionEN, SI: o.DescriptionSI, TA: o.DescriptionTA},
		Location:    o.Location,
		CategoryID:  o.CategoryID,
		Email:       o.Email,
	}
}

// Service модель услуги учреждения из каталога GovService
type Service struct {
	ServiceID             int64   `json:"service_id"`
	GovNodeID             int64   `json:"gov_node_id"`
	ServiceType           string  `json:"service_type"`
	ServiceNameEN         string  `json:"service_name_en"`
	ServiceNameSI         string  `json:"service_name_si"`
	ServiceNameTA         string  `json:"service_name_ta"`
	DescriptionEN         string  `json:"description_en"`
	DescriptionSI         string  `json:"description_si"`
	DescriptionTA         string  `json:"description_ta"`
	IsActive              bool    `json:"is_active"`
	RequiredDocumentTypes []int64 `json:"required_document_types"`
}

// ToDomain конвертирует модель каталога в доменную модель
func (s *Service) ToDomain() domain.Service {
	return domain.Service{
		ID:                      s.ServiceID,
		OfficeID:                s.GovNodeID,
		Name:                    domain.LocalizedText{EN: s.ServiceNameEN, SI: s.ServiceNameSI, TA: s.ServiceNameTA},
		Description:             domain.LocalizedText{EN: s.DescriptionEN, SI: s.DescriptionSI, TA: s.DescriptionTA},
		IsActive:                s.IsActive,
		RequiredDocumentTypeIDs: s.RequiredDocumentTypes,
	}
}

// DocumentType модель типа документа из каталога GovService
type DocumentType struct {
	ID            int64  `json:"id"`
	NameEN        string `json:"name_en"`
	NameSI        string `json:"name_si"`
	NameTA        string `json:"name_ta"`
	DescriptionEN string `json:"description_en"`
	DescriptionSI string `json:"description_si"`
	DescriptionTA string `json:"description_ta"`
}

// ToDomain конвертирует модель каталога в доменную модель
func (d *DocumentType) ToDomain() domain.DocumentRequirement {
	return domain.DocumentRequirement{
		ID:          d.ID,
		Name:        domain.LocalizedText{EN: d.NameEN, SI: d.NameSI, TA: d.NameTA},
		Description: domain.LocalizedText{EN: d.DescriptionEN, SI: d.DescriptionSI, TA: d.DescriptionTA},
	}
}

// ErrorResponse модель ошибки от GovService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
