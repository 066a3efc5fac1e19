package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"go.uber.org/zap"
)

type ArtistRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewArtistRepository(postgres *PostgresService, logger *zap.Logger) *ArtistRepository {
	return &ArtistRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *ArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	artist.CreatedAt = now
	artist.UpdatedAt = now

	query := `
		INSERT INTO artists (id, user_id, studio_name, bio, address, lat, lon, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.UserID, artist.StudioName, artist.Bio, artist.Address,
		artist.Latitude, artist.Longitude, artist.AvatarURL, artist.CreatedAt, artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	if len(artist.Styles) > 0 {
		if err := r.ReplaceStyles(ctx, artist.ID, artist.Styles); err != nil {
			return err
		}
	}

	return nil
}

// FindByID retrieves an artist with its style associations; (nil, nil) when
// no row exists.
func (r *ArtistRepository) FindByID(ctx context.Context, id string) (*domain.Artist, error) {
	query := `
		SELECT id, user_id, studio_name, bio, address, lat, lon, avatar_url, created_at, updated_at
		FROM artists
		WHERE id = $1
		LIMIT 1
	`

	var (
		artist domain.Artist
		lat    sql.NullFloat64
		lon    sql.NullFloat64
		avatar sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&artist.ID, &artist.UserID, &artist.StudioName, &artist.Bio, &artist.Address,
		&lat, &lon, &avatar, &artist.CreatedAt, &artist.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist by id: %w", err)
	}

	if lat.Valid {
		artist.Latitude = &lat.Float64
	}
	if lon.Valid {
		artist.Longitude = &lon.Float64
	}
	if avatar.Valid {
		artist.AvatarURL = avatar.String
	}

	styles, err := r.loadStyles(ctx, artist.ID)
	if err != nil {
		return nil, err
	}
	artist.Styles = styles

	return &artist, nil
}

// ListByStyle returns artists associated with the style, strongest expertise
// first.
func (r *ArtistRepository) ListByStyle(ctx context.Context, style domain.StyleKey, limit int) ([]*domain.Artist, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT a.id
		FROM artists a
		JOIN artist_styles s ON s.artist_id = a.id
		WHERE s.style_key = $1
		ORDER BY s.expertise_level DESC, a.studio_name
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, string(style), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists by style: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan artist id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artists: %w", err)
	}

	artists := make([]*domain.Artist, 0, len(ids))
	for _, id := range ids {
		artist, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if artist != nil {
			artists = append(artists, artist)
		}
	}

	return artists, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	artist.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE artists
		SET studio_name = $2, bio = $3, address = $4, lat = $5, lon = $6, avatar_url = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		artist.ID, artist.StudioName, artist.Bio, artist.Address,
		artist.Latitude, artist.Longitude, artist.AvatarURL, artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("artist %s not found", artist.ID)
	}

	return nil
}

// ReplaceStyles swaps the artist's style association set in one transaction.
// Keys outside the style vocabulary are rejected up front.
func (r *ArtistRepository) ReplaceStyles(ctx context.Context, artistID string, styles []domain.ArtistStyle) error {
	for _, s := range styles {
		if !s.Style.IsValid() {
			return fmt.Errorf("unknown style key %q", s.Style)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artist_styles WHERE artist_id = $1`, artistID); err != nil {
		return fmt.Errorf("failed to clear style associations: %w", err)
	}

	for _, s := range styles {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO artist_styles (artist_id, style_key, expertise_level) VALUES ($1, $2, $3)`,
			artistID, string(s.Style), s.ExpertiseLevel,
		)
		if err != nil {
			return fmt.Errorf("failed to insert style association: %w", err)
		}
	}

	return tx.Commit()
}

// loadStyles reads the artist's style rows. A persisted key with no matching
// style definition is logged and skipped; stale data must not break reads.
func (r *ArtistRepository) loadStyles(ctx context.Context, artistID string) ([]domain.ArtistStyle, error) {
	query := `
		SELECT style_key, expertise_level
		FROM artist_styles
		WHERE artist_id = $1
		ORDER BY expertise_level DESC, style_key
	`

	rows, err := r.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist styles: %w", err)
	}
	defer rows.Close()

	styles := make([]domain.ArtistStyle, 0, 4)
	for rows.Next() {
		var (
			key   string
			level int
		)
		if err := rows.Scan(&key, &level); err != nil {
			return nil, fmt.Errorf("failed to scan style association: %w", err)
		}

		styleKey := domain.StyleKey(key)
		if !styleKey.IsValid() {
			r.logger.Warn("Skipping style association with unknown key",
				zap.String("artist_id", artistID),
				zap.String("style_key", key),
			)
			continue
		}

		styles = append(styles, domain.ArtistStyle{Style: styleKey, ExpertiseLevel: level})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate style associations: %w", err)
	}

	return styles, nil
}
