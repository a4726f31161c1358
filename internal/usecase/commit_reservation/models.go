package commit_reservation

// Request модель запроса подтверждения бронирования
type Request struct {
	CitizenNIC string
}

// Response модель подтверждённого бронирования.
// ReferenceID равен nil, когда резервирование подтверждено косвенно
// (по повторной проверке после таймаута) и номер брони неизвестен
type Response struct {
	ReferenceID *int64
	SlotID      int64
	CitizenNIC  string
}
