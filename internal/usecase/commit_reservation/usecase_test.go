package commit_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	draftRepo "github.com/govconn-lk/GovConn-BookingFlowService/internal/infra/storage/draft"
	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/blobservice"
	reservationClient "github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/reservationservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeDraftRepo in-memory репозиторий с семантикой оптимистичной блокировки
type fakeDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]*domain.DraftBooking
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*domain.DraftBooking)}
}

func (r *fakeDraftRepo) GetByCitizen(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[citizenNIC]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (r *fakeDraftRepo) Save(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, exists := r.drafts[draft.CitizenNIC]
	if draft.Version == 0 {
		if exists {
			return nil, draftRepo.ErrVersionConflict
		}
	} else if !exists || stored.Version != draft.Version {
		return nil, draftRepo.ErrVersionConflict
	}
	copied := *draft
	copied.Version++
	r.drafts[draft.CitizenNIC] = &copied
	result := copied
	return &result, nil
}

func (r *fakeDraftRepo) Delete(ctx context.Context, citizenNIC string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, citizenNIC)
	return nil
}

func (r *fakeDraftRepo) put(draft *domain.DraftBooking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.CitizenNIC] = draft
}

func (r *fakeDraftRepo) get(citizenNIC string) *domain.DraftBooking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[citizenNIC]
}

// fakeReservation сценарный клиент резервирования
type fakeReservation struct {
	mu            sync.Mutex
	reserveErr    error
	reserved      *reservationClient.ReservedUser
	reservedSlots []reservationClient.Slot
	probeErr      error
	reserveCalls  int
	lastKey       string

	// capacity > 0 включает режим атомарного счетчика мест
	capacity int
}

func (f *fakeReservation) Reserve(ctx context.Context, citizenNIC string, slotID int64, idempotencyKey string) (*reservationClient.ReservedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	f.lastKey = idempotencyKey

	if f.capacity > 0 {
		f.capacity--
		return &reservationClient.ReservedUser{
			ReferenceID: int64(100 + f.reserveCalls),
			SlotID:      slotID,
			CitizenNIC:  citizenNIC,
		}, nil
	}
	if f.capacity == 0 && f.reserveErr == nil && f.reserved == nil {
		return nil, reservationClient.ErrSlotFull
	}

	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	return f.reserved, nil
}

func (f *fakeReservation) GetReservedSlots(ctx context.Context, citizenNIC string) ([]reservationClient.Slot, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.reservedSlots, nil
}

type fakeBlob struct {
	updateErr   error
	updateCalls int
	lastLinks   []blobservice.DocumentLink
}

func (f *fakeBlob) UpdateCitizenDocuments(ctx context.Context, citizenNIC string, links []blobservice.DocumentLink) error {
	f.updateCalls++
	f.lastLinks = links
	if f.updateErr != nil {
		return f.updateErr
	}
	return nil
}

func completeDraft(citizenNIC string) *domain.DraftBooking {
	draft := domain.NewDraftBooking(citizenNIC)
	draft.SelectOffice(domain.Office{ID: 1, Name: domain.LocalizedText{EN: "DMT Colombo"}})

	url := "https://blob.example/nic-front.pdf"
	uploadedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	draft.SelectService(
		domain.Service{ID: 2, OfficeID: 1, IsActive: true, RequiredDocumentTypeIDs: []int64{11}},
		[]domain.DocumentRequirement{{ID: 11, Name: domain.LocalizedText{EN: "National ID copy"}}},
	)
	draft.AttachDocument(domain.UploadedDocument{
		DocumentTypeID: 11,
		Title:          "National ID copy",
		FileName:       "nic-front.pdf",
		URL:            &url,
		Uploaded:       true,
		UploadedAt:     &uploadedAt,
	})
	draft.SelectDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	draft.SelectSlot(domain.TimeSlot{
		ID:          5,
		ServiceID:   2,
		BookingDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "09:30",
		MaxCapacity: 10,
	})
	draft.Version = 1
	return draft
}

func TestExecute_CommitSuccess(t *testing.T) {
	repo := newFakeDraftRepo()
	draft := completeDraft("991234567V")
	repo.put(draft)

	reservation := &fakeReservation{
		capacity: -1,
		reserved: &reservationClient.ReservedUser{ReferenceID: 42, SlotID: 5, CitizenNIC: "991234567V"},
	}
	blob := &fakeBlob{}
	uc := NewUseCase(repo, reservation, blob, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	require.NoError(t, err)

	require.NotNil(t, resp.ReferenceID)
	assert.Equal(t, int64(42), *resp.ReferenceID)
	assert.Equal(t, int64(5), resp.SlotID)

	// Идемпотентный ключ черновика передается авторитетному сервису
	assert.Equal(t, draft.CommitKey, reservation.lastKey)

	// Документы закреплены за гражданином перед резервированием
	require.Equal(t, 1, blob.updateCalls)
	require.Len(t, blob.lastLinks, 1)
	assert.Equal(t, "National ID copy", blob.lastLinks[0].Title)

	// Черновик удален после подтверждения
	assert.Nil(t, repo.get("991234567V"))
}

func TestExecute_NoDraft(t *testing.T) {
	uc := NewUseCase(newFakeDraftRepo(), &fakeReservation{capacity: -1}, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrFlowIncomplete)
}

func TestExecute_FlowIncomplete(t *testing.T) {
	repo := newFakeDraftRepo()
	draft := completeDraft("991234567V")
	draft.ClearSlotSelection()
	repo.put(draft)

	reservation := &fakeReservation{capacity: -1}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrFlowIncomplete)
	assert.Zero(t, reservation.reserveCalls)
}

func TestExecute_SlotConflictPreservesDraft(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))

	reservation := &fakeReservation{capacity: -1, reserveErr: reservationClient.ErrSlotFull}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Сбрасывается только выбор слота, остальные шаги сохраняются
	kept := repo.get("991234567V")
	require.NotNil(t, kept)
	assert.Nil(t, kept.Slot)
	assert.NotNil(t, kept.Office)
	assert.NotNil(t, kept.Service)
	assert.NotNil(t, kept.AppointmentDate)
	assert.True(t, kept.DocumentsComplete())
}

func TestExecute_TransientFailurePreservesDraft(t *testing.T) {
	repo := newFakeDraftRepo()
	draft := completeDraft("991234567V")
	repo.put(draft)

	reservation := &fakeReservation{capacity: -1, reserveErr: reservationClient.ErrUnavailable}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrReserveTransient)

	kept := repo.get("991234567V")
	require.NotNil(t, kept)
	assert.NotNil(t, kept.Slot)
	assert.Equal(t, draft.CommitKey, kept.CommitKey)
}

func TestExecute_DocumentFinalizeFailureIsTransient(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))

	reservation := &fakeReservation{capacity: -1}
	blob := &fakeBlob{updateErr: blobservice.ErrUnavailable}
	uc := NewUseCase(repo, reservation, blob, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrReserveTransient)

	// Резервирование не запускается, пока документы не закреплены
	assert.Zero(t, reservation.reserveCalls)
	assert.NotNil(t, repo.get("991234567V"))
}

func TestExecute_TimeoutProbeConfirms(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))

	reservation := &fakeReservation{
		capacity:      -1,
		reserveErr:    reservationClient.ErrTimeout,
		reservedSlots: []reservationClient.Slot{{SlotID: 5, BookingDate: "2026-09-01"}},
	}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	require.NoError(t, err)

	// Номер брони неизвестен, но резервирование подтверждено и поток завершен
	assert.Nil(t, resp.ReferenceID)
	assert.Equal(t, int64(5), resp.SlotID)
	assert.Nil(t, repo.get("991234567V"))
}

func TestExecute_TimeoutProbeFindsNothing(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))

	reservation := &fakeReservation{
		capacity:      -1,
		reserveErr:    reservationClient.ErrTimeout,
		reservedSlots: []reservationClient.Slot{},
	}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrCommitIndeterminate)

	// Черновик сохранен, повтор с тем же ключом безопасен
	assert.NotNil(t, repo.get("991234567V"))
}

func TestExecute_TimeoutProbeFails(t *testing.T) {
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))

	reservation := &fakeReservation{
		capacity:   -1,
		reserveErr: reservationClient.ErrTimeout,
		probeErr:   reservationClient.ErrUnavailable,
	}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{CitizenNIC: "991234567V"})
	assert.ErrorIs(t, err, ErrCommitIndeterminate)
	assert.NotNil(t, repo.get("991234567V"))
}

func TestExecute_ConcurrentCommitsLastSpot(t *testing.T) {
	// Два гражданина подтверждают один слот с единственным свободным местом.
	// Авторитетный сервис атомарен: ровно один получает резервирование
	repo := newFakeDraftRepo()
	repo.put(completeDraft("991234567V"))
	repo.put(completeDraft("887654321V"))

	reservation := &fakeReservation{capacity: 1}
	uc := NewUseCase(repo, reservation, &fakeBlob{}, nopLogger{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, nic := range []string{"991234567V", "887654321V"} {
		wg.Add(1)
		go func(i int, nic string) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{CitizenNIC: nic})
		}(i, nic)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}
