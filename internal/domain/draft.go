package domain

import (
	"time"

	"github.com/google/uuid"
)

// DraftBooking is the single mutable aggregate of an in-progress booking.
// Exactly one draft exists per citizen; it records intent only and is never
// proof of a committed reservation.
type DraftBooking struct {
	CitizenNIC string

	// CommitKey идемпотентный ключ для запроса резервирования,
	// генерируется один раз при создании черновика
	CommitKey string

	Office  *Office
	Service *Service

	// Requirements список требуемых документов выбранной услуги.
	// RequirementsLoaded отличает "ещё не загружен" от "загружен и пуст".
	Requirements       []DocumentRequirement
	RequirementsLoaded bool

	// Documents загруженные документы по ID типа документа
	Documents map[int64]*UploadedDocument

	AppointmentDate *time.Time
	Slot            *TimeSlot

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraftBooking creates an empty draft for the citizen
func NewDraftBooking(citizenNIC string) *DraftBooking {
	return &DraftBooking{
		CitizenNIC: citizenNIC,
		CommitKey:  uuid.NewString(),
		Documents:  make(map[int64]*UploadedDocument),
	}
}

// IsEmpty returns true if no selection has been made yet
func (d *DraftBooking) IsEmpty() bool {
	return d.Office == nil && d.Service == nil && d.AppointmentDate == nil && d.Slot == nil && len(d.Documents) == 0
}

// Steps returns the ordered step set computed from currently known data.
// The upload steps exist only once a service with a non-empty required
// document list is selected; until the list is fetched they are absent.
func (d *DraftBooking) Steps() []FlowStep {
	steps := []FlowStep{StepSelectOffice, StepSelectService}
	if d.Service != nil && d.RequirementsLoaded && len(d.Requirements) > 0 {
		steps = append(steps, StepViewInstructions, StepUploadDocuments)
	}
	return append(steps, StepSelectDateTime, StepDone)
}

// StepCompleted reports whether the given step is complete for this draft
func (d *DraftBooking) StepCompleted(step FlowStep) bool {
	switch step {
	case StepSelectOffice:
		return d.Office != nil
	case StepSelectService:
		return d.Service != nil && d.RequirementsLoaded
	case StepViewInstructions:
		// instructions are presented together with the requirement list
		return d.Service != nil && d.RequirementsLoaded
	case StepUploadDocuments:
		return d.DocumentsComplete()
	case StepSelectDateTime:
		return d.AppointmentDate != nil && d.Slot != nil
	default:
		return false
	}
}

// CurrentStep returns the first incomplete step of the computed step set
func (d *DraftBooking) CurrentStep() FlowStep {
	for _, step := range d.Steps() {
		if step == StepDone {
			break
		}
		if !d.StepCompleted(step) {
			return step
		}
	}
	return StepDone
}

// DocumentsComplete returns true if every required document type has a
// successfully uploaded document. Vacuously true for services without
// document requirements.
func (d *DraftBooking) DocumentsComplete() bool {
	if !d.RequirementsLoaded {
		return false
	}
	for _, req := range d.Requirements {
		doc, ok := d.Documents[req.ID]
		if !ok || !doc.IsUploaded() {
			return false
		}
	}
	return true
}

// IsComplete returns true if every upstream step is complete and the draft
// is ready for the reservation commit
func (d *DraftBooking) IsComplete() bool {
	return d.CurrentStep() == StepDone
}

// SelectOffice records the office selection. Picking a different office
// resets every downstream selection to avoid stale incompatible state.
func (d *DraftBooking) SelectOffice(office Office) {
	if d.Office != nil && d.Office.ID == office.ID {
		d.Office = &office
		return
	}
	d.Office = &office
	d.resetService()
}

// SelectService records the service selection together with its fetched
// document requirements. Picking a different service resets downstream state.
func (d *DraftBooking) SelectService(service Service, requirements []DocumentRequirement) {
	d.Service = &service
	d.Requirements = requirements
	d.RequirementsLoaded = true
	d.Documents = make(map[int64]*UploadedDocument)
	d.resetSchedule()
}

// AttachDocument записывает загруженный документ, заменяя предыдущий
// документ того же типа
func (d *DraftBooking) AttachDocument(doc UploadedDocument) {
	if d.Documents == nil {
		d.Documents = make(map[int64]*UploadedDocument)
	}
	d.Documents[doc.DocumentTypeID] = &doc
}

// RemoveDocument удаляет документ указанного типа из черновика
func (d *DraftBooking) RemoveDocument(documentTypeID int64) {
	delete(d.Documents, documentTypeID)
}

// SelectDate records the appointment date. Changing the date invalidates any
// previously chosen slot; slots are re-fetched for the new date.
func (d *DraftBooking) SelectDate(date time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	d.AppointmentDate = &day
	d.Slot = nil
}

// SelectSlot records the chosen time slot snapshot
func (d *DraftBooking) SelectSlot(slot TimeSlot) {
	d.Slot = &slot
}

// ClearSlotSelection drops the slot selection, keeping date and everything
// upstream. Used when the authority reports the slot became full.
func (d *DraftBooking) ClearSlotSelection() {
	d.Slot = nil
}

// resetService сбрасывает выбор услуги и всё, что от него зависит
func (d *DraftBooking) resetService() {
	d.Service = nil
	d.Requirements = nil
	d.RequirementsLoaded = false
	d.Documents = make(map[int64]*UploadedDocument)
	d.resetSchedule()
}

// resetSchedule сбрасывает выбор даты и слота
func (d *DraftBooking) resetSchedule() {
	d.AppointmentDate = nil
	d.Slot = nil
}
