package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"salon-sync/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// sqliteStore is the relational backend, used whenever SQLite is available
// on the platform. Timestamps are stored as RFC 3339 text.
type sqliteStore struct {
	conn *sql.DB
	log  *zap.Logger
}

// OpenSQLite opens (and if needed creates) the bookings database at path.
// WAL mode is enabled so reads do not block the sync engine's writes.
func OpenSQLite(path string, log *zap.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	store := &sqliteStore{
		conn: conn,
		log:  log.With(zap.String("repository", "localstore_sqlite")),
	}

	if err := store.initSchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return store, nil
}

func (s *sqliteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		client_phone TEXT NOT NULL,
		service TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		provider_name TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		ends_at TEXT NOT NULL,
		timezone TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'confirmed',
		sync_status TEXT NOT NULL DEFAULT 'pending',
		revision INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_sync_status ON bookings(sync_status);
	CREATE INDEX IF NOT EXISTS idx_bookings_starts_at ON bookings(starts_at);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("init bookings schema: %w", err)
	}

	return nil
}

const bookingColumns = `id, client_name, client_phone, service, provider_id, provider_name,
	starts_at, ends_at, timezone, notes, status, sync_status, revision, created_at, updated_at`

func (s *sqliteStore) List(ctx context.Context) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY starts_at DESC`, bookingColumns)

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (s *sqliteStore) ListBySyncStatus(ctx context.Context, status entity.SyncStatus) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE sync_status = ? ORDER BY starts_at DESC`, bookingColumns)

	rows, err := s.conn.QueryContext(ctx, query, string(status))
	if err != nil {
		s.log.Error("Failed to list bookings by sync status",
			zap.Error(err),
			zap.String("sync_status", string(status)),
		)
		return nil, fmt.Errorf("list bookings by sync status %s: %w", status, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (s *sqliteStore) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns)

	row := s.conn.QueryRowContext(ctx, query, id.String())

	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to get booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("get booking %s: %w", id.String(), err)
	}

	return booking, nil
}

func (s *sqliteStore) Upsert(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, client_name, client_phone, service, provider_id, provider_name,
			starts_at, ends_at, timezone, notes, status, sync_status, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			client_name = excluded.client_name,
			client_phone = excluded.client_phone,
			service = excluded.service,
			provider_id = excluded.provider_id,
			provider_name = excluded.provider_name,
			starts_at = excluded.starts_at,
			ends_at = excluded.ends_at,
			timezone = excluded.timezone,
			notes = excluded.notes,
			status = excluded.status,
			sync_status = excluded.sync_status,
			revision = excluded.revision,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`

	_, err := s.conn.ExecContext(ctx, query,
		booking.ID.String(),
		booking.ClientName,
		booking.ClientPhone,
		booking.Service,
		booking.ProviderID,
		booking.ProviderName,
		booking.StartsAt.UTC().Format(time.RFC3339Nano),
		booking.EndsAt.UTC().Format(time.RFC3339Nano),
		booking.Timezone,
		booking.Notes,
		string(booking.Status),
		string(booking.SyncStatus),
		booking.Revision,
		booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		booking.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)

	if err != nil {
		s.log.Error("Failed to upsert booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("upsert booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (s *sqliteStore) MarkSyncStatus(ctx context.Context, id uuid.UUID, status entity.SyncStatus, revision int64) error {
	query := `UPDATE bookings SET sync_status = ? WHERE id = ? AND revision = ?`

	result, err := s.conn.ExecContext(ctx, query, string(status), id.String(), revision)
	if err != nil {
		s.log.Error("Failed to mark sync status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("sync_status", string(status)),
		)
		return fmt.Errorf("mark booking %s sync status %s: %w", id.String(), status, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark booking %s sync status %s: %w", id.String(), status, err)
	}

	if affected == 0 {
		var exists int
		row := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id.String())
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("mark booking %s sync status %s: %w", id.String(), status, err)
		}
		if exists == 0 {
			return fmt.Errorf("mark booking %s: %w", id.String(), ErrNotFound)
		}
		return fmt.Errorf("mark booking %s at revision %d: %w", id.String(), revision, ErrRevisionMismatch)
	}

	return nil
}

func (s *sqliteStore) ResetFailed(ctx context.Context) (int64, error) {
	query := `UPDATE bookings SET sync_status = ? WHERE sync_status = ?`

	result, err := s.conn.ExecContext(ctx, query,
		string(entity.SyncStatusPending), string(entity.SyncStatusFailed))
	if err != nil {
		s.log.Error("Failed to reset failed bookings", zap.Error(err))
		return 0, fmt.Errorf("reset failed bookings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset failed bookings: %w", err)
	}

	return affected, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.conn.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id.String())
	if err != nil {
		s.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}
	if affected == 0 {
		return fmt.Errorf("delete booking %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.log.Warn("Failed to checkpoint WAL on close", zap.Error(err))
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("close sqlite store: %w", err)
	}

	s.conn = nil
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var (
		booking   entity.Booking
		id        string
		startsAt  string
		endsAt    string
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&id,
		&booking.ClientName,
		&booking.ClientPhone,
		&booking.Service,
		&booking.ProviderID,
		&booking.ProviderName,
		&startsAt,
		&endsAt,
		&booking.Timezone,
		&booking.Notes,
		&booking.Status,
		&booking.SyncStatus,
		&booking.Revision,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse booking id %s: %w", id, err)
	}

	for _, field := range []struct {
		raw  string
		dest *time.Time
	}{
		{startsAt, &booking.StartsAt},
		{endsAt, &booking.EndsAt},
		{createdAt, &booking.CreatedAt},
		{updatedAt, &booking.UpdatedAt},
	} {
		parsed, err := time.Parse(time.RFC3339Nano, field.raw)
		if err != nil {
			return nil, fmt.Errorf("parse booking %s timestamp %q: %w", id, field.raw, err)
		}
		*field.dest = parsed
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}
