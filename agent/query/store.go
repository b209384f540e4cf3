package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	validatex "github.com/krishivaani/krishivaani/agent/validate"
)

var errDuplicateCode = errors.New("tracking code already taken")

// record is the bun row shape backing ConsultationRequest.
type record struct {
	bun.BaseModel `bun:"table:queries,alias:q"`

	ID             int64          `bun:"id,pk,autoincrement"`
	TrackingCode   string         `bun:"tracking_code,notnull,unique"`
	Name           string         `bun:"name,notnull"`
	Mobile         string         `bun:"mobile,notnull"`
	Location       string         `bun:"location,notnull"`
	Description    string         `bun:"description,notnull"`
	Status         Status         `bun:"status,notnull"`
	CreatedAt      time.Time      `bun:"created_at,notnull"`
	ExpertAssigned sql.NullString `bun:"expert_assigned"`
	Notes          sql.NullString `bun:"notes"`
}

func (r *record) toDomain() *ConsultationRequest {
	return &ConsultationRequest{
		TrackingCode:   r.TrackingCode,
		Name:           r.Name,
		Mobile:         r.Mobile,
		Location:       r.Location,
		Description:    r.Description,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ExpertAssigned: r.ExpertAssigned.String,
		Notes:          r.Notes.String,
	}
}

// Store persists consultation requests in Postgres through bun. All durable
// state lives here; Store itself carries no mutable state and is safe for
// concurrent use.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

func NewStore(db *bun.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("bun db is required")
	}
	return &Store{db: db, now: time.Now}, nil
}

// Init creates the queries table and its indexes when absent: unique on
// tracking_code (the creation hot path relies on it), secondary on mobile
// and status for expert-side listing, and created_at descending for recency
// scans.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create queries table: %w", err)
	}

	indexes := []*bun.CreateIndexQuery{
		s.db.NewCreateIndex().Model((*record)(nil)).
			Index("queries_tracking_code_key").Unique().Column("tracking_code"),
		s.db.NewCreateIndex().Model((*record)(nil)).
			Index("queries_mobile_idx").Column("mobile"),
		s.db.NewCreateIndex().Model((*record)(nil)).
			Index("queries_status_idx").Column("status"),
		s.db.NewCreateIndex().Model((*record)(nil)).
			Index("queries_created_at_idx").ColumnExpr("created_at DESC"),
	}
	for _, idx := range indexes {
		if _, err := idx.IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// Create validates the request, assigns a confirmed-unique tracking code and
// persists the document in one atomic step: either a fully-formed row is
// visible to subsequent reads or nothing is. Collisions on the unique index
// trigger regeneration, bounded by maxCodeAttempts.
func (s *Store) Create(ctx context.Context, q NewQuery) (string, error) {
	name, err := validatex.Name(q.Name)
	if err != nil {
		return "", err
	}
	mobile, err := validatex.Mobile(q.Mobile)
	if err != nil {
		return "", err
	}
	location, err := validatex.Location(q.Location)
	if err != nil {
		return "", err
	}
	description, err := validatex.Description(q.Description)
	if err != nil {
		return "", err
	}

	rec := &record{
		Name:        name,
		Mobile:      mobile,
		Location:    location,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   s.now().UTC(),
	}

	code, err := insertWithFreshCode(ctx, func(ctx context.Context, code string) error {
		rec.ID = 0
		rec.TrackingCode = code
		_, err := s.db.NewInsert().Model(rec).Exec(ctx)
		if isUniqueViolation(err) {
			return errDuplicateCode
		}
		return err
	})
	if err != nil {
		return "", err
	}

	log.Info().
		Str("tracking_code", code).
		Str("mobile", maskMobile(mobile)).
		Msg("consultation request created")
	return code, nil
}

// Get is an exact-match lookup on the normalized tracking code. Read-only.
func (s *Store) Get(ctx context.Context, trackingCode string) (*ConsultationRequest, error) {
	code := NormalizeCode(trackingCode)
	if !ValidCode(code) {
		return nil, ErrNotFound
	}

	rec := new(record)
	err := s.db.NewSelect().Model(rec).Where("tracking_code = ?", code).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select query: %w", err)
	}
	return rec.toDomain(), nil
}

// UpdateStatus advances a request through the lifecycle. It is invoked by
// the expert-facing side, never by the voice path. ExpertAssigned is only
// written on a transition to assigned; notes may be written at any status.
// The UPDATE is guarded on the observed status so a concurrent mover cannot
// be silently overwritten.
func (s *Store) UpdateStatus(ctx context.Context, trackingCode string, next Status, expertAssigned, notes string) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	current, err := s.Get(ctx, trackingCode)
	if err != nil {
		return err
	}
	if !current.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	upd := s.db.NewUpdate().Model((*record)(nil)).
		Set("status = ?", next).
		Where("tracking_code = ?", current.TrackingCode).
		Where("status = ?", current.Status)
	if next == StatusAssigned && expertAssigned != "" {
		upd = upd.Set("expert_assigned = ?", expertAssigned)
	}
	if notes != "" {
		upd = upd.Set("notes = ?", notes)
	}

	res, err := upd.Exec(ctx)
	if err != nil {
		return fmt.Errorf("update query status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update query status: %w", err)
	}
	if affected == 0 {
		// Lost the race against another mover; the transition we checked
		// is no longer the one on disk.
		return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}

	log.Info().
		Str("tracking_code", current.TrackingCode).
		Str("status", string(next)).
		Msg("consultation request status updated")
	return nil
}

// ListByStatus returns the most recent requests in the given status, for
// the expert-side worklist. Served by the status and created_at indexes so
// it stays off the tracking-code hot path.
func (s *Store) ListByStatus(ctx context.Context, st Status, limit int) ([]*ConsultationRequest, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("unknown status %q", st)
	}
	if limit <= 0 {
		limit = 20
	}

	var recs []record
	err := s.db.NewSelect().Model(&recs).
		Where("status = ?", st).
		OrderExpr("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}

	out := make([]*ConsultationRequest, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}

func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return "****"
	}
	return mobile[:4] + "****"
}
