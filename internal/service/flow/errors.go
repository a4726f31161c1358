package flow

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStepIncomplete возвращается при попытке выполнить шаг,
	// предыдущие шаги которого ещё не завершены
	ErrStepIncomplete = errors.New("previous flow step is not complete")

	// ErrOfficeNotFound возвращается, когда учреждение не найдено в каталоге
	ErrOfficeNotFound = errors.New("office not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	// у выбранного учреждения или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrDocumentNotRequired возвращается при загрузке документа типа,
	// которого нет в списке требований выбранной услуги
	ErrDocumentNotRequired = errors.New("document type is not required by the selected service")

	// ErrDocumentTooLarge возвращается, когда размер файла превышает лимит
	ErrDocumentTooLarge = errors.New("document exceeds the maximum allowed size")

	// ErrUnsupportedDocumentType возвращается при недопустимом MIME-типе файла
	ErrUnsupportedDocumentType = errors.New("unsupported document content type")

	// ErrUploadFailed возвращается, когда загрузка файла в хранилище
	// блобов не удалась; документ остаётся незагруженным
	ErrUploadFailed = errors.New("document upload failed")

	// ErrCatalogUnavailable возвращается, когда каталог недоступен;
	// черновик не изменяется, операцию можно повторить
	ErrCatalogUnavailable = errors.New("catalog is unavailable")

	// ErrScheduleUnavailable возвращается, когда сервис резервирования
	// недоступен для получения расписания слотов
	ErrScheduleUnavailable = errors.New("slot schedule is unavailable")

	// ErrSlotNotFound возвращается, когда выбранный слот отсутствует
	// в актуальном расписании на выбранную дату
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotFull возвращается при попытке выбрать заполненный слот
	ErrSlotFull = errors.New("slot is full")

	// ErrDraftConflict возвращается, когда черновик был изменён
	// конкурентным запросом; клиент должен перечитать состояние
	ErrDraftConflict = errors.New("draft was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("flow service: internal error")
)
