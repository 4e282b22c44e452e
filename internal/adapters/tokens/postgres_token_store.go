package tokens

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/db"
	"activity-map-service/internal/platform/obs"
	"activity-map-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresTokenStore is a pgx-backed credential store.
type PostgresTokenStore struct {
	DB db.Querier
}

func NewPostgresTokenStore(q db.Querier) *PostgresTokenStore {
	return &PostgresTokenStore{DB: q}
}

func (s *PostgresTokenStore) Get(ctx context.Context, athleteID int64) (_ domain.Credentials, err error) {
	defer obs.Time(ctx, "tokens.postgres.Get")(&err)

	if s.DB == nil {
		return domain.Credentials{}, errors.New("token store: db is nil")
	}

	creds := domain.Credentials{AthleteID: athleteID}
	err = s.DB.QueryRow(ctx, `
	SELECT access_token, refresh_token, expires_at
	FROM athlete_tokens
	WHERE athlete_id = $1;
	`, athleteID).Scan(&creds.AccessToken, &creds.RefreshToken, &creds.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Credentials{}, fmt.Errorf("get tokens athlete=%d: %w", athleteID, ports.ErrCredentialsNotFound)
		}
		return domain.Credentials{}, fmt.Errorf("get tokens athlete=%d: scan row: %w", athleteID, err)
	}

	return creds, nil
}

func (s *PostgresTokenStore) Put(ctx context.Context, creds domain.Credentials) (err error) {
	defer obs.Time(ctx, "tokens.postgres.Put")(&err)

	if s.DB == nil {
		return errors.New("token store: db is nil")
	}
	if creds.AthleteID == 0 {
		return errors.New("put tokens: athlete id must be set")
	}
	if creds.AccessToken == "" {
		return fmt.Errorf("put tokens athlete=%d: access token must be non-empty", creds.AthleteID)
	}

	_, err = s.DB.Exec(ctx, `
	INSERT INTO athlete_tokens (athlete_id, access_token, refresh_token, expires_at, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (athlete_id) DO UPDATE
	SET access_token = EXCLUDED.access_token,
		refresh_token = EXCLUDED.refresh_token,
		expires_at = EXCLUDED.expires_at,
		updated_at = now();
	`, creds.AthleteID, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt)
	if err != nil {
		return fmt.Errorf("put tokens athlete=%d: %w", creds.AthleteID, err)
	}

	return nil
}

func (s *PostgresTokenStore) Delete(ctx context.Context, athleteID int64) (err error) {
	defer obs.Time(ctx, "tokens.postgres.Delete")(&err)

	if s.DB == nil {
		return errors.New("token store: db is nil")
	}

	if _, err := s.DB.Exec(ctx, `DELETE FROM athlete_tokens WHERE athlete_id = $1;`, athleteID); err != nil {
		return fmt.Errorf("delete tokens athlete=%d: %w", athleteID, err)
	}
	return nil
}
