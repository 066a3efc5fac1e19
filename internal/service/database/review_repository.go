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

type ReviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewReviewRepository(postgres *PostgresService, logger *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating %d out of range", review.Rating)
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO reviews (id, artist_id, author_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.ArtistID, review.AuthorID, review.Rating, review.Body, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	return nil
}

// ListByArtist returns the artist's reviews, newest first.
func (r *ReviewRepository) ListByArtist(ctx context.Context, artistID string, limit int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, artist_id, author_id, rating, body, created_at
		FROM reviews
		WHERE artist_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, artistID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0, 8)
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID, &review.ArtistID, &review.AuthorID,
			&review.Rating, &review.Body, &review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// AverageRating returns the mean rating for an artist, 0 when unrated.
func (r *ReviewRepository) AverageRating(ctx context.Context, artistID string) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT AVG(rating) FROM reviews WHERE artist_id = $1`, artistID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to query average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
