package govservice

import "errors"

var (
	// ErrNotFound возвращается, когда запрошенный объект каталога не найден
	ErrNotFound = errors.New("govservice client: not found")

	// ErrUnavailable возвращается при недоступности каталога (сетевые ошибки, 5xx)
	// Ошибка восстановимая: вызывающий может повторить запрос
	ErrUnavailable = errors.New("govservice client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("govservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("govservice client: invalid response")
)
