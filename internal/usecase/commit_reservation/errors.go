package commit_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrFlowIncomplete возвращается при попытке подтвердить незавершённый
	// поток бронирования
	ErrFlowIncomplete = errors.New("booking flow is not complete")

	// ErrSlotConflict возвращается, когда выбранный слот успел заполниться.
	// Выбор слота сбрасывается, остальной черновик сохраняется
	ErrSlotConflict = errors.New("slot is no longer available")

	// ErrReserveTransient возвращается при временной ошибке резервирования;
	// черновик сохраняется и подтверждение можно повторить
	ErrReserveTransient = errors.New("reservation request failed, try again")

	// ErrCommitIndeterminate возвращается, когда исход резервирования
	// неизвестен (таймаут без подтверждения). Черновик сохраняется,
	// повтор с тем же идемпотентным ключом безопасен
	ErrCommitIndeterminate = errors.New("reservation outcome is unknown")

	// ErrDraftConflict возвращается, когда черновик был изменён
	// конкурентным запросом во время подтверждения
	ErrDraftConflict = errors.New("draft was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
