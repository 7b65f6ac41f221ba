package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/storage"
)

type SubscriberRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSubscriberRepository(db *pgxpool.Pool) *SubscriberRepo {
	return &SubscriberRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveSubscriber inserts a new subscriber; the email column carries a unique
// constraint, mapped to storage.ErrAlreadySubscribed.
func (r *SubscriberRepo) SaveSubscriber(ctx context.Context, email string) (uuid.UUID, error) {
	const op = "repository.subscriber_repository.SaveSubscriber"

	query, args, err := r.sb.Insert("subscribers").
		Columns("id", "email", "created_at").
		Values(uuid.New(), email, time.Now().UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadySubscribed)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *SubscriberRepo) GetSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	const op = "repository.subscriber_repository.GetSubscribers"

	query, args, err := r.sb.Select("id", "email", "created_at").
		From("subscribers").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var subscribers []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		subscribers = append(subscribers, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subscribers, nil
}
