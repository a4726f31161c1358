package draft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/domain"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/dbmetrics"
	"github.com/govconn-lk/GovConn-BookingFlowService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с черновиками бронирования
// Один черновик на гражданина, конкурентные записи разрешаются
// оптимистичной блокировкой по колонке version
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCitizen загружает черновик гражданина.
// Возвращает ErrDraftNotFound, если черновика нет, и ErrDraftCorrupted,
// если сохраненные данные не удалось десериализовать
func (r *Repository) GetByCitizen(ctx context.Context, citizenNIC string) (*domain.DraftBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"citizen_nic",
		"commit_key",
		"office",
		"service",
		"requirements",
		"requirements_loaded",
		"documents",
		"appointment_date",
		"slot",
		"version",
		"created_at",
		"updated_at",
	).
		From("draft_bookings").
		Where(squirrel.Eq{"citizen_nic": citizenNIC}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCitizen - build select query: %v", ErrBuildQuery, err)
	}

	var (
		row             draftRow
		appointmentDate sql.NullTime
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&row.CitizenNIC,
		&row.CommitKey,
		&row.Office,
		&row.Service,
		&row.Requirements,
		&row.RequirementsLoaded,
		&row.Documents,
		&appointmentDate,
		&row.Slot,
		&row.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("%w: GetByCitizen - execute select: %v", ErrExecQuery, err)
	}

	draft, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCitizen - decode draft: %v", ErrDraftCorrupted, err)
	}

	if appointmentDate.Valid {
		d := appointmentDate.Time.UTC()
		draft.AppointmentDate = &d
	}
	draft.CreatedAt = createdAt.Time
	draft.UpdatedAt = updatedAt.Time

	return draft, nil
}

// Save сохраняет черновик с проверкой оптимистичной блокировки.
// Черновик с Version == 0 вставляется как новый; если строка гражданина
// уже существует, возвращается ErrVersionConflict. Иначе выполняется
// UPDATE с условием version = expected; при несовпадении версий
// также возвращается ErrVersionConflict
func (r *Repository) Save(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error) {
	row, err := toDraftRow(draft)
	if err != nil {
		return nil, fmt.Errorf("%w: Save - encode draft: %v", ErrBuildQuery, err)
	}

	if draft.Version == 0 {
		return r.insert(ctx, draft, row)
	}
	return r.update(ctx, draft, row)
}

func (r *Repository) insert(ctx context.Context, draft *domain.DraftBooking, row *draftRow) (*domain.DraftBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("draft_bookings").
		Columns(
			"citizen_nic",
			"commit_key",
			"office",
			"service",
			"requirements",
			"requirements_loaded",
			"documents",
			"appointment_date",
			"slot",
			"version",
		).
		Values(
			row.CitizenNIC,
			row.CommitKey,
			row.Office,
			row.Service,
			row.Requirements,
			row.RequirementsLoaded,
			row.Documents,
			appointmentDateArg(draft),
			row.Slot,
			1,
		).
		Suffix("ON CONFLICT (citizen_nic) DO NOTHING RETURNING version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&draft.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Строка уже есть: кто-то успел создать черновик раньше
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	draft.CreatedAt = createdAt.Time
	draft.UpdatedAt = updatedAt.Time

	return draft, nil
}

func (r *Repository) update(ctx context.Context, draft *domain.DraftBooking, row *draftRow) (*domain.DraftBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("draft_bookings").
		Set("commit_key", row.CommitKey).
		Set("office", row.Office).
		Set("service", row.Service).
		Set("requirements", row.Requirements).
		Set("requirements_loaded", row.RequirementsLoaded).
		Set("documents", row.Documents).
		Set("appointment_date", appointmentDateArg(draft)).
		Set("slot", row.Slot).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"citizen_nic": draft.CitizenNIC,
			"version":     draft.Version,
		}).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&draft.Version,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionConflict
		}
		return nil, fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	draft.CreatedAt = createdAt.Time
	draft.UpdatedAt = updatedAt.Time

	return draft, nil
}

// Delete удаляет черновик гражданина. Отсутствие строки не является ошибкой
func (r *Repository) Delete(ctx context.Context, citizenNIC string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("draft_bookings").
		Where(squirrel.Eq{"citizen_nic": citizenNIC}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// draftRow строка таблицы draft_bookings: JSONB-колонки как сырые байты
type draftRow struct {
	CitizenNIC         string
	CommitKey          string
	Office             []byte
	Service            []byte
	Requirements       []byte
	RequirementsLoaded bool
	Documents          []byte
	Slot               []byte
	Version            int64
}

func toDraftRow(draft *domain.DraftBooking) (*draftRow, error) {
	row := &draftRow{
		CitizenNIC:         draft.CitizenNIC,
		CommitKey:          draft.CommitKey,
		RequirementsLoaded: draft.RequirementsLoaded,
		Version:            draft.Version,
	}

	var err error
	if draft.Office != nil {
		if row.Office, err = json.Marshal(toOfficeSnapshot(draft.Office)); err != nil {
			return nil, fmt.Errorf("marshal office: %v", err)
		}
	}
	if draft.Service != nil {
		if row.Service, err = json.Marshal(toServiceSnapshot(draft.Service)); err != nil {
			return nil, fmt.Errorf("marshal service: %v", err)
		}
	}
	if draft.Requirements != nil {
		if row.Requirements, err = json.Marshal(toRequirementSnapshots(draft.Requirements)); err != nil {
			return nil, fmt.Errorf("marshal requirements: %v", err)
		}
	}
	if row.Documents, err = json.Marshal(toDocumentSnapshots(draft.Documents)); err != nil {
		return nil, fmt.Errorf("marshal documents: %v", err)
	}
	if draft.Slot != nil {
		if row.Slot, err = json.Marshal(toSlotSnapshot(draft.Slot)); err != nil {
			return nil, fmt.Errorf("marshal slot: %v", err)
		}
	}

	return row, nil
}

func (row *draftRow) toDomain() (*domain.DraftBooking, error) {
	draft := &domain.DraftBooking{
		CitizenNIC:         row.CitizenNIC,
		CommitKey:          row.CommitKey,
		RequirementsLoaded: row.RequirementsLoaded,
		Documents:          make(map[int64]*domain.UploadedDocument),
		Version:            row.Version,
	}

	if len(row.Office) > 0 {
		var snap officeSnapshot
		if err := json.Unmarshal(row.Office, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal office: %v", err)
		}
		draft.Office = snap.toDomain()
	}
	if len(row.Service) > 0 {
		var snap serviceSnapshot
		if err := json.Unmarshal(row.Service, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal service: %v", err)
		}
		draft.Service = snap.toDomain()
	}
	if len(row.Requirements) > 0 {
		var snaps []requirementSnapshot
		if err := json.Unmarshal(row.Requirements, &snaps); err != nil {
			return nil, fmt.Errorf("unmarshal requirements: %v", err)
		}
		draft.Requirements = requirementsToDomain(snaps)
	}
	if len(row.Documents) > 0 {
		var snaps map[int64]documentSnapshot
		if err := json.Unmarshal(row.Documents, &snaps); err != nil {
			return nil, fmt.Errorf("unmarshal documents: %v", err)
		}
		draft.Documents = documentsToDomain(snaps)
	}
	if len(row.Slot) > 0 {
		var snap slotSnapshot
		if err := json.Unmarshal(row.Slot, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal slot: %v", err)
		}
		slot, err := snap.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode slot: %v", err)
		}
		draft.Slot = slot
	}

	return draft, nil
}

func appointmentDateArg(draft *domain.DraftBooking) interface{} {
	if draft.AppointmentDate == nil {
		return nil
	}
	return *draft.AppointmentDate
}
