package domain

// LocalizedText текст на трех языках портала
type LocalizedText struct {
	EN string
	SI string
	TA string
}

// Get returns the text for the given language code, falling back to English
func (t LocalizedText) Get(lang string) string {
	switch lang {
	case "si":
		if t.SI != "" {
			return t.SI
		}
	case "ta":
		if t.TA != "" {
			return t.TA
		}
	}
	return t.EN
}

// Office represents a government office from the catalog gateway.
// Immutable within a booking session.
type Office struct {
	ID          int64
	Name        LocalizedText
	Description LocalizedText
	Location    string
	CategoryID  int64
	Email       string
}

// Service represents a bookable government service from the catalog gateway.
// Immutable within a booking session.
type Service struct {
	ID                      int64
	OfficeID                int64
	Name                    LocalizedText
	Description             LocalizedText
	IsActive                bool
	RequiredDocumentTypeIDs []int64
}

// RequiresDocuments returns true if the service has required document types
func (s *Service) RequiresDocuments() bool {
	return len(s.RequiredDocumentTypeIDs) > 0
}

// DocumentRequirement represents a document type a service requires
type DocumentRequirement struct {
	ID          int64
	Name        LocalizedText
	Description LocalizedText
}
