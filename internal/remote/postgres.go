package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// postgresClient writes straight to the hosted table over a pgx pool, for
// deployments with direct database credentials instead of a REST gateway.
type postgresClient struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewPostgresClient connects to the hosted booking database.
func NewPostgresClient(dsn string, maxConns int32, log *zap.Logger) (Client, error) {
	if dsn == "" {
		return nil, fmt.Errorf("remote postgres DSN is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse remote pool config: %w", err)
	}

	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create remote connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping remote database: %w", err)
	}

	return &postgresClient{
		pool: pool,
		log:  log.With(zap.String("client", "remote_postgres")),
	}, nil
}

func (c *postgresClient) Upsert(ctx context.Context, booking Booking) error {
	query := `
		INSERT INTO bookings (id, client_name, client_phone, service, provider_id, provider_name,
			starts_at, ends_at, timezone, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			client_name = EXCLUDED.client_name,
			client_phone = EXCLUDED.client_phone,
			service = EXCLUDED.service,
			provider_id = EXCLUDED.provider_id,
			provider_name = EXCLUDED.provider_name,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			timezone = EXCLUDED.timezone,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status
	`

	_, err := c.pool.Exec(ctx, query,
		booking.ID,
		booking.ClientName,
		booking.ClientPhone,
		booking.Service,
		booking.ProviderID,
		booking.ProviderName,
		booking.StartsAt,
		booking.EndsAt,
		booking.Timezone,
		booking.Notes,
		booking.Status,
	)

	if err != nil {
		c.log.Error("Failed to upsert remote booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID),
		)
		return fmt.Errorf("remote upsert booking %s: %w", booking.ID, err)
	}

	return nil
}

func (c *postgresClient) Close() {
	c.pool.Close()
}
