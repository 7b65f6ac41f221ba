package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
)

type LeadRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *LeadRepo) SaveLead(ctx context.Context, lead models.Lead) (uuid.UUID, error) {
	const op = "repository.lead_repository.SaveLead"

	query, args, err := r.sb.Insert("leads").
		Columns(
			"id",
			"name",
			"email",
			"phone",
			"company",
			"service",
			"message",
			"created_at",
		).
		Values(
			lead.ID,
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Company,
			lead.Service,
			lead.Message,
			lead.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *LeadRepo) GetLeads(ctx context.Context, page, perPage int) ([]models.Lead, int, error) {
	const op = "repository.lead_repository.GetLeads"

	query, args, err := r.sb.Select(
		"id",
		"name",
		"email",
		"phone",
		"company",
		"service",
		"message",
		"created_at",
	).
		From("leads").
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Company,
			&lead.Service,
			&lead.Message,
			&lead.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("leads").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query:%s %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return leads, total, nil
}
