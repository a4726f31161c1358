package blobservice

// UploadRequest запрос на загрузку файла в хранилище блобов
// Файл передается в base64, content_type принимает "pdf" или "image"
type UploadRequest struct {
	ContentType string `json:"content_type"`
	File        string `json:"file"`
	Filename    string `json:"filename"`
}

// UploadResponse ответ хранилища с постоянной ссылкой на файл
type UploadResponse struct {
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
	URL        string `json:"url"`
}

// DocumentLink ссылка на документ, закрепляемая за гражданином
type DocumentLink struct {
	Title      string `json:"title"`
	UploadedAt string `json:"uploaded_at"`
	URL        string `json:"url"`
}

// updateDocumentsRequest тело запроса обновления документов гражданина
type updateDocumentsRequest struct {
	NIC           string         `json:"nic"`
	DocumentLinks []DocumentLink `json:"document_links"`
}

// ErrorResponse модель ошибки от сервиса блобов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
