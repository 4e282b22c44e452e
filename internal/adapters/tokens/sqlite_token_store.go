package tokens

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/platform/obs"
	"activity-map-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite backed credential store. Expiry is kept as unix seconds.
type SqliteTokenStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteTokenStore(db *sql.DB) *SqliteTokenStore {
	return &SqliteTokenStore{DB: db, now: time.Now}
}

func (s *SqliteTokenStore) Get(ctx context.Context, athleteID int64) (_ domain.Credentials, err error) {
	defer obs.Time(ctx, "tokens.sqlite.Get")(&err)

	if s.DB == nil {
		return domain.Credentials{}, errors.New("token store: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT access_token, refresh_token, expires_at
	FROM athlete_tokens
	WHERE athlete_id = ?;
	`, athleteID)

	creds := domain.Credentials{AthleteID: athleteID}
	var expiresAt int64
	if err := row.Scan(&creds.AccessToken, &creds.RefreshToken, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Credentials{}, fmt.Errorf("get tokens athlete=%d: %w", athleteID, ports.ErrCredentialsNotFound)
		}
		return domain.Credentials{}, fmt.Errorf("get tokens athlete=%d: scan row: %w", athleteID, err)
	}
	creds.ExpiresAt = time.Unix(expiresAt, 0).UTC()

	return creds, nil
}

func (s *SqliteTokenStore) Put(ctx context.Context, creds domain.Credentials) (err error) {
	defer obs.Time(ctx, "tokens.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("token store: db is nil")
	}
	if creds.AthleteID == 0 {
		return errors.New("put tokens: athlete id must be set")
	}
	if creds.AccessToken == "" {
		return fmt.Errorf("put tokens athlete=%d: access token must be non-empty", creds.AthleteID)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO athlete_tokens (
		athlete_id,
		access_token,
		refresh_token,
		expires_at,
		updated_at
	)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (athlete_id) DO UPDATE
	SET access_token = excluded.access_token,
		refresh_token = excluded.refresh_token,
		expires_at = excluded.expires_at,
		updated_at = excluded.updated_at;
	`, creds.AthleteID, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt.Unix(), s.now().Unix())
	if err != nil {
		return fmt.Errorf("put tokens athlete=%d: %w", creds.AthleteID, err)
	}

	return nil
}

func (s *SqliteTokenStore) Delete(ctx context.Context, athleteID int64) (err error) {
	defer obs.Time(ctx, "tokens.sqlite.Delete")(&err)

	if s.DB == nil {
		return errors.New("token store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM athlete_tokens WHERE athlete_id = ?;`, athleteID); err != nil {
		return fmt.Errorf("delete tokens athlete=%d: %w", athleteID, err)
	}
	return nil
}
