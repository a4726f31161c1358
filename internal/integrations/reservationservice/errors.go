package reservationservice

import "errors"

var (
	// ErrSlotFull возвращается, когда авторитетный сервис отклонил
	// резервирование из-за исчерпанной вместимости слота
	ErrSlotFull = errors.New("reservationservice client: slot is full")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reservationservice client: slot not found")

	// ErrTimeout возвращается при таймауте запроса резервирования.
	// Исход неопределен: резервирование могло как пройти, так и нет,
	// поэтому перед повтором обязательна проверка существования
	ErrTimeout = errors.New("reservationservice client: request timed out")

	// ErrUnavailable возвращается при недоступности сервиса (сетевые ошибки, 5xx)
	ErrUnavailable = errors.New("reservationservice client: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("reservationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("reservationservice client: invalid response")
)
