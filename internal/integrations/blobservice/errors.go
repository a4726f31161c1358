package blobservice

import "errors"

var (
	// ErrUploadFailed возвращается, когда хранилище отклонило загрузку файла
	// Ошибка локальна для одного документа и не влияет на остальные
	ErrUploadFailed = errors.New("blobservice client: upload failed")

	// ErrUnavailable возвращается при недоступности сервиса (сетевые ошибки, 5xx)
	ErrUnavailable = errors.New("blobservice client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("blobservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("blobservice client: invalid response")
)
