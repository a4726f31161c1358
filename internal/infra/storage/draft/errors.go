package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда у гражданина нет сохраненного черновика
	ErrDraftNotFound = errors.New("draft storage: draft not found")

	// ErrDraftCorrupted возвращается, когда сохраненный черновик не удалось
	// десериализовать (поврежденные или устаревшие данные).
	// Вызывающий обязан деградировать до пустого черновика, а не падать
	ErrDraftCorrupted = errors.New("draft storage: draft corrupted")

	// ErrVersionConflict возвращается при нарушении оптимистичной блокировки:
	// черновик был изменен после загрузки
	ErrVersionConflict = errors.New("draft storage: version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("draft storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("draft storage: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("draft storage: failed to scan row")
)
