package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"wedding-rsvp/internal/model"
)

// createMaxRetries bounds the unique-code regeneration loop in Create.
const createMaxRetries = 5

// Postgres stores household records as one jsonb document per row, keyed by
// the dash-stripped invite code.
type Postgres struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPostgres opens the database and verifies connectivity, retrying the
// initial ping with fibonacci backoff so the server survives a database that
// is still coming up.
func NewPostgres(ctx context.Context, databaseURL string, log zerolog.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Msg("database ping failed, retrying")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db, log: log}, nil
}

// Migrate runs the goose migrations from the migrations directory.
func (s *Postgres) Migrate() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) Get(ctx context.Context, key string) (*model.HouseholdRecord, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM households WHERE key = $1`, key,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, s.classify("get household", err)
	}
	return decodeHousehold(doc)
}

func (s *Postgres) QueryActive(ctx context.Context, now time.Time) ([]*model.HouseholdRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM households WHERE rsvp_deadline >= $1`, now,
	)
	if err != nil {
		return nil, s.classify("query active households", err)
	}
	defer rows.Close()

	var records []*model.HouseholdRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, s.classify("scan household", err)
		}
		rec, err := decodeHousehold(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("iterate households", err)
	}
	return records, nil
}

// ApplyResponse locks the row, merges the patch into the stored document and
// writes it back with a server-side last_modified in one transaction, so a
// rejected submission never leaves a partial update behind.
func (s *Postgres) ApplyResponse(ctx context.Context, key string, patch *HouseholdPatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.classify("begin transaction", err)
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx,
		`SELECT doc FROM households WHERE key = $1 FOR UPDATE`, key,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return s.classify("lock household", err)
	}

	rec, err := decodeHousehold(doc)
	if err != nil {
		return err
	}
	if err := applyPatch(rec, patch); err != nil {
		return err
	}

	var lastModified time.Time
	err = tx.QueryRowContext(ctx,
		`UPDATE households SET last_modified = now() WHERE key = $1 RETURNING last_modified`, key,
	).Scan(&lastModified)
	if err != nil {
		return s.classify("stamp household", err)
	}
	rec.LastModified = &lastModified

	updated, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode household: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE households SET doc = $1 WHERE key = $2`, updated, key,
	); err != nil {
		return s.classify("update household", err)
	}

	if err := tx.Commit(); err != nil {
		return s.classify("commit transaction", err)
	}
	return nil
}

// Create inserts a new household. When the record carries no invite code one
// is generated, retrying a bounded number of times on the off chance of a
// collision.
func (s *Postgres) Create(ctx context.Context, rec *model.HouseholdRecord) error {
	generate := rec.InviteCode == ""
	for attempt := 0; attempt < createMaxRetries; attempt++ {
		if generate {
			code, err := model.GenerateInviteCode()
			if err != nil {
				return err
			}
			rec.InviteCode = code
		}

		doc, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode household: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO households (key, rsvp_deadline, doc) VALUES ($1, $2, $3)`,
			rec.Key(), rec.RSVPDeadline, doc,
		)
		if err == nil {
			return nil
		}

		var pqErr *pq.Error
		if generate && errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			continue
		}
		return s.classify("create household", err)
	}
	return fmt.Errorf("failed to generate unique invite code after %d retries", createMaxRetries)
}

func (s *Postgres) ListAll(ctx context.Context) ([]*model.HouseholdRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM households ORDER BY key`)
	if err != nil {
		return nil, s.classify("list households", err)
	}
	defer rows.Close()

	var records []*model.HouseholdRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, s.classify("scan household", err)
		}
		rec, err := decodeHousehold(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("iterate households", err)
	}
	return records, nil
}

func decodeHousehold(doc []byte) (*model.HouseholdRecord, error) {
	rec := &model.HouseholdRecord{}
	if err := json.Unmarshal(doc, rec); err != nil {
		return nil, fmt.Errorf("failed to decode household: %w", err)
	}
	return rec, nil
}

// classify maps driver errors onto the store error taxonomy exactly once, at
// this boundary. Connectivity failures become ErrUnavailable (retryable by
// the user); everything else is wrapped with context and logged with detail.
func (s *Postgres) classify(op string, err error) error {
	if isConnectivityError(err) {
		s.log.Error().Err(err).Str("op", op).Msg("database unavailable")
		return fmt.Errorf("failed to %s: %w", op, ErrUnavailable)
	}
	s.log.Error().Err(err).Str("op", op).Msg("database error")
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isConnectivityError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	// Class 08 covers connection exceptions, 57P01+ admin shutdowns.
	if errors.As(err, &pqErr) {
		class := pqErr.Code.Class()
		return class == "08" || class == "57"
	}
	return false
}
