package domain

import "time"

// UploadedDocument состояние одного загружаемого документа в черновике
// Жизненный цикл: pending (файл выбран) -> uploading -> uploaded,
// при ошибке загрузки возвращается в pending
type UploadedDocument struct {
	DocumentTypeID int64
	Title          string // localized requirement name, becomes the document link title
	FileName       string
	URL            *string // remote storage reference, nil until the upload succeeds
	Uploading      bool
	Uploaded       bool
	UploadedAt     *time.Time
}

// IsUploaded returns true if the document reached remote storage
func (d *UploadedDocument) IsUploaded() bool {
	return d.Uploaded && d.URL != nil
}
