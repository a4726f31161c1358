package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot availability classification
const (
	// FillingFastThreshold максимальное число свободных мест,
	// при котором слот классифицируется как "заполняется быстро"
	FillingFastThreshold = 3
)

// Document upload validation constants
const (
	MaxDocumentSizeBytes = 10 * 1024 * 1024 // 10MB
)

// AllowedDocumentContentTypes допустимые MIME-типы загружаемых документов
// и соответствующий им content_type хранилища блобов
var AllowedDocumentContentTypes = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "image",
	"image/png":       "image",
}
