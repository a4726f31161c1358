package attach_document

import (
	"encoding/base64"
	"fmt"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

// AttachDocumentRequest HTTP request model
// Файл передается в base64, как того требует хранилище блобов
type AttachDocumentRequest struct {
	DocumentTypeID int64  `json:"document_type_id"`
	FileName       string `json:"filename"`
	ContentType    string `json:"content_type"`
	File           string `json:"file"`
}

// ToServiceRequest декодирует файл и создает запрос сервиса потока
func (r *AttachDocumentRequest) ToServiceRequest() (*models.AttachDocumentRequest, error) {
	data, err := base64.StdEncoding.DecodeString(r.File)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 file content: %v", err)
	}

	return &models.AttachDocumentRequest{
		DocumentTypeID: r.DocumentTypeID,
		FileName:       r.FileName,
		ContentType:    r.ContentType,
		Data:           data,
	}, nil
}
