package flow

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	draftRepo "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/storage/draft"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/govservice"
	reservationClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/service/flow/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeDraftRepo struct {
	drafts    map[string]*domain.DraftBooking
	getErr    error
	deleteLog []string
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*domain.DraftBooking)}
}

func (r *fakeDraftRepo) GetByCitizen(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	draft, ok := r.drafts[citizenNIC]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (r *fakeDraftRepo) Save(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error) {
	copied := *draft
	copied.Version++
	r.drafts[draft.CitizenNIC] = &copied
	result := copied
	return &result, nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, citizenNIC string) error {
	r.deleteLog = append(r.deleteLog, citizenNIC)
	delete(r.drafts, citizenNIC)
	return nil
}

type fakeCatalog struct {
	offices       []govservice.Office
	services      []govservice.Service
	documentTypes map[int64]*govservice.DocumentType
	err           error
}

func (c *fakeCatalog) GetOffices(ctx context.Context, categoryID *int64) ([]govservice.Office, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.offices, nil
}

func (c *fakeCatalog) GetServices(ctx context.Context, officeID int64) ([]govservice.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.services, nil
}

func (c *fakeCatalog) GetDocumentType(ctx context.Context, documentTypeID int64) (*govservice.DocumentType, error) {
	if c.err != nil {
		return nil, c.err
	}
	dt, ok := c.documentTypes[documentTypeID]
	if !ok {
		return nil, govservice.ErrNotFound
	}
	return dt, nil
}

type fakeBlob struct {
	uploadErr   error
	uploadCalls int
	lastReq     blobservice.UploadRequest
}

func (f *fakeBlob) Upload(ctx context.Context, req blobservice.UploadRequest) (*blobservice.UploadResponse, error) {
	f.uploadCalls++
	f.lastReq = req
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &blobservice.UploadResponse{
		Filename:   req.Filename,
		UploadedAt: "2026-08-28T10:00:00Z",
		URL:        "https://blob.example/" + req.Filename,
	}, nil
}

type fakeSchedule struct {
	slots []reservationClient.Slot
	err   error
}

func (f *fakeSchedule) GetAvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]reservationClient.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		offices: []govservice.Office{
			{ID: 1, NameEN: "DMT Colombo", CategoryID: 3},
			{ID: 2, NameEN: "DMT Kandy", CategoryID: 3},
		},
		services: []govservice.Service{
			{ServiceID: 10, GovNodeID: 1, ServiceNameEN: "Driving licence renewal", IsActive: true, RequiredDocumentTypes: []int64{11}},
			{ServiceID: 12, GovNodeID: 1, ServiceNameEN: "Vehicle transfer inquiry", IsActive: true},
			{ServiceID: 13, GovNodeID: 1, ServiceNameEN: "Retired service", IsActive: false},
		},
		documentTypes: map[int64]*govservice.DocumentType{
			11: {ID: 11, NameEN: "National ID copy"},
		},
	}
}

func newTestService(repo *fakeDraftRepo, catalog *fakeCatalog, blob *fakeBlob, schedule *fakeSchedule) *Service {
	return NewService(repo, catalog, blob, schedule, nopLogger{})
}

const testNIC = "991234567V"

func TestGetState_EmptyFlow(t *testing.T) {
	svc := newTestService(newFakeDraftRepo(), testCatalog(), &fakeBlob{}, &fakeSchedule{})

	state, err := svc.GetState(context.Background(), testNIC)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepSelectOffice), state.CurrentStep)
	assert.False(t, state.ReadyToCommit)
	assert.Nil(t, state.Office)
}

func TestGetState_CorruptedDraftStartsOver(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.getErr = draftRepo.ErrDraftCorrupted
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})

	state, err := svc.GetState(context.Background(), testNIC)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepSelectOffice), state.CurrentStep)
	// Поврежденная строка удаляется, чтобы не мешать новому черновику
	assert.Contains(t, repo.deleteLog, testNIC)
}

func TestSelectOffice(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})

	state, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)

	require.NotNil(t, state.Office)
	assert.Equal(t, int64(1), state.Office.ID)
	assert.Equal(t, "DMT Colombo", state.Office.Name.EN)
	assert.Equal(t, string(domain.StepSelectService), state.CurrentStep)
}

func TestSelectOffice_NotFound(t *testing.T) {
	svc := newTestService(newFakeDraftRepo(), testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 99})
	assert.ErrorIs(t, err, ErrOfficeNotFound)
}

func TestSelectOffice_CatalogDownLeavesDraftUntouched(t *testing.T) {
	repo := newFakeDraftRepo()
	catalog := testCatalog()
	svc := newTestService(repo, catalog, &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)

	// Каталог падает: выбор не проходит, черновик остается прежним
	catalog.err = govservice.ErrUnavailable
	_, err = svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 2})
	assert.ErrorIs(t, err, ErrCatalogUnavailable)

	catalog.err = nil
	state, err := svc.GetState(context.Background(), testNIC)
	require.NoError(t, err)
	require.NotNil(t, state.Office)
	assert.Equal(t, int64(1), state.Office.ID)
}

func TestSelectService_WithDocuments(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)

	state, err := svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 10})
	require.NoError(t, err)

	// Услуга с требованиями добавляет шаги инструкций и загрузки документов
	steps := make([]string, 0, len(state.Steps))
	for _, s := range state.Steps {
		steps = append(steps, s.Step)
	}
	assert.Equal(t, []string{
		string(domain.StepSelectOffice),
		string(domain.StepSelectService),
		string(domain.StepViewInstructions),
		string(domain.StepUploadDocuments),
		string(domain.StepSelectDateTime),
	}, steps)

	require.Len(t, state.Requirements, 1)
	assert.Equal(t, "National ID copy", state.Requirements[0].Name.EN)
	assert.Equal(t, string(domain.StepUploadDocuments), state.CurrentStep)
}

func TestSelectService_WithoutDocumentsSkipsUploadSteps(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)

	state, err := svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 12})
	require.NoError(t, err)

	steps := make([]string, 0, len(state.Steps))
	for _, s := range state.Steps {
		steps = append(steps, s.Step)
	}
	assert.Equal(t, []string{
		string(domain.StepSelectOffice),
		string(domain.StepSelectService),
		string(domain.StepSelectDateTime),
	}, steps)
	assert.Equal(t, string(domain.StepSelectDateTime), state.CurrentStep)
}

func TestSelectService_InactiveOrMissing(t *testing.T) {
	svc := newTestService(newFakeDraftRepo(), testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)

	_, err = svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 13})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 99})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSelectService_RequiresOffice(t *testing.T) {
	svc := newTestService(newFakeDraftRepo(), testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 10})
	assert.ErrorIs(t, err, ErrStepIncomplete)
}

func TestChangingOfficeResetsDownstream(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})

	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)
	_, err = svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: 12})
	require.NoError(t, err)

	state, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 2})
	require.NoError(t, err)

	require.NotNil(t, state.Office)
	assert.Equal(t, int64(2), state.Office.ID)
	assert.Nil(t, state.Service)
	assert.Equal(t, string(domain.StepSelectService), state.CurrentStep)
}

func setupWithService(t *testing.T, repo *fakeDraftRepo, svc *Service, serviceID int64) {
	t.Helper()
	_, err := svc.SelectOffice(context.Background(), testNIC, &models.SelectOfficeRequest{OfficeID: 1})
	require.NoError(t, err)
	_, err = svc.SelectService(context.Background(), testNIC, &models.SelectServiceRequest{ServiceID: serviceID})
	require.NoError(t, err)
}

func TestAttachDocument(t *testing.T) {
	repo := newFakeDraftRepo()
	blob := &fakeBlob{}
	svc := newTestService(repo, testCatalog(), blob, &fakeSchedule{})
	setupWithService(t, repo, svc, 10)

	state, err := svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 11,
		FileName:       "nic-front.pdf",
		ContentType:    "application/pdf",
		Data:           []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, blob.uploadCalls)
	assert.Equal(t, "pdf", blob.lastReq.ContentType)

	require.Len(t, state.Documents, 1)
	assert.True(t, state.Documents[0].Uploaded)
	require.NotNil(t, state.Documents[0].URL)
	assert.Equal(t, "National ID copy", state.Documents[0].Title)

	// Все документы загружены: поток переходит к выбору даты
	assert.Equal(t, string(domain.StepSelectDateTime), state.CurrentStep)
}

func TestAttachDocument_Validation(t *testing.T) {
	repo := newFakeDraftRepo()
	blob := &fakeBlob{}
	svc := newTestService(repo, testCatalog(), blob, &fakeSchedule{})
	setupWithService(t, repo, svc, 10)

	_, err := svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 99,
		FileName:       "other.pdf",
		ContentType:    "application/pdf",
		Data:           []byte("x"),
	})
	assert.ErrorIs(t, err, ErrDocumentNotRequired)

	_, err = svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 11,
		FileName:       "huge.pdf",
		ContentType:    "application/pdf",
		Data:           bytes.Repeat([]byte("a"), domain.MaxDocumentSizeBytes+1),
	})
	assert.ErrorIs(t, err, ErrDocumentTooLarge)

	_, err = svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 11,
		FileName:       "movie.mp4",
		ContentType:    "video/mp4",
		Data:           []byte("x"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedDocumentType)

	assert.Zero(t, blob.uploadCalls)
}

func TestAttachDocument_UploadFailureLeavesDocumentMissing(t *testing.T) {
	repo := newFakeDraftRepo()
	blob := &fakeBlob{uploadErr: blobservice.ErrUnavailable}
	svc := newTestService(repo, testCatalog(), blob, &fakeSchedule{})
	setupWithService(t, repo, svc, 10)

	_, err := svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 11,
		FileName:       "nic-front.pdf",
		ContentType:    "application/pdf",
		Data:           []byte("x"),
	})
	assert.ErrorIs(t, err, ErrUploadFailed)

	state, err := svc.GetState(context.Background(), testNIC)
	require.NoError(t, err)
	assert.Empty(t, state.Documents)
	assert.Equal(t, string(domain.StepUploadDocuments), state.CurrentStep)
}

func TestRemoveDocument(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})
	setupWithService(t, repo, svc, 10)

	_, err := svc.AttachDocument(context.Background(), testNIC, &models.AttachDocumentRequest{
		DocumentTypeID: 11,
		FileName:       "nic-front.pdf",
		ContentType:    "application/pdf",
		Data:           []byte("x"),
	})
	require.NoError(t, err)

	state, err := svc.RemoveDocument(context.Background(), testNIC, &models.RemoveDocumentRequest{DocumentTypeID: 11})
	require.NoError(t, err)

	assert.Empty(t, state.Documents)
	assert.Equal(t, string(domain.StepUploadDocuments), state.CurrentStep)
}

func futureDate() time.Time {
	return time.Now().UTC().AddDate(0, 0, 7)
}

func TestSelectDate(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})
	setupWithService(t, repo, svc, 12)

	date := futureDate()
	state, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date})
	require.NoError(t, err)

	require.NotNil(t, state.AppointmentDate)
	assert.Equal(t, date.Format(domain.DateFormat), *state.AppointmentDate)
}

func TestSelectDate_PastDateRejected(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})
	setupWithService(t, repo, svc, 12)

	_, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{
		Date: time.Now().UTC().AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func scheduleSlot(id int64, capacity, reserved int, date time.Time) reservationClient.Slot {
	return reservationClient.Slot{
		SlotID:        id,
		ReservationID: 12,
		StartTime:     "09:00:00",
		EndTime:       "09:30:00",
		MaxCapacity:   capacity,
		ReservedCount: reserved,
		Status:        "available",
		BookingDate:   date.Format(domain.DateFormat),
	}
}

func TestSelectSlot(t *testing.T) {
	repo := newFakeDraftRepo()
	date := futureDate()
	schedule := &fakeSchedule{slots: []reservationClient.Slot{scheduleSlot(5, 10, 2, date)}}
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, schedule)
	setupWithService(t, repo, svc, 12)

	_, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date})
	require.NoError(t, err)

	state, err := svc.SelectSlot(context.Background(), testNIC, &models.SelectSlotRequest{SlotID: 5})
	require.NoError(t, err)

	require.NotNil(t, state.Slot)
	assert.Equal(t, int64(5), state.Slot.ID)
	assert.Equal(t, "09:00", state.Slot.StartTime)
	assert.True(t, state.ReadyToCommit)
	assert.Equal(t, string(domain.StepDone), state.CurrentStep)
}

func TestSelectSlot_FullSlotRejected(t *testing.T) {
	repo := newFakeDraftRepo()
	date := futureDate()
	schedule := &fakeSchedule{slots: []reservationClient.Slot{scheduleSlot(5, 10, 10, date)}}
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, schedule)
	setupWithService(t, repo, svc, 12)

	_, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date})
	require.NoError(t, err)

	_, err = svc.SelectSlot(context.Background(), testNIC, &models.SelectSlotRequest{SlotID: 5})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestSelectSlot_NotFound(t *testing.T) {
	repo := newFakeDraftRepo()
	date := futureDate()
	schedule := &fakeSchedule{slots: []reservationClient.Slot{}}
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, schedule)
	setupWithService(t, repo, svc, 12)

	_, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date})
	require.NoError(t, err)

	_, err = svc.SelectSlot(context.Background(), testNIC, &models.SelectSlotRequest{SlotID: 5})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSelectDate_ChangeInvalidatesSlot(t *testing.T) {
	repo := newFakeDraftRepo()
	date := futureDate()
	schedule := &fakeSchedule{slots: []reservationClient.Slot{scheduleSlot(5, 10, 2, date)}}
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, schedule)
	setupWithService(t, repo, svc, 12)

	_, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date})
	require.NoError(t, err)
	_, err = svc.SelectSlot(context.Background(), testNIC, &models.SelectSlotRequest{SlotID: 5})
	require.NoError(t, err)

	state, err := svc.SelectDate(context.Background(), testNIC, &models.SelectDateRequest{Date: date.AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.Nil(t, state.Slot)
	assert.False(t, state.ReadyToCommit)
}

func TestRestart(t *testing.T) {
	repo := newFakeDraftRepo()
	svc := newTestService(repo, testCatalog(), &fakeBlob{}, &fakeSchedule{})
	setupWithService(t, repo, svc, 12)

	state, err := svc.Restart(context.Background(), testNIC)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StepSelectOffice), state.CurrentStep)
	assert.Nil(t, state.Office)
	assert.Contains(t, repo.deleteLog, testNIC)
}
