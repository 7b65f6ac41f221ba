package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
)

type LeadRepository interface {
	SaveLead(ctx context.Context, lead models.Lead) (uuid.UUID, error)
	GetLeads(ctx context.Context, page, perPage int) ([]models.Lead, int, error)
}

type SubscriberRepository interface {
	SaveSubscriber(ctx context.Context, email string) (uuid.UUID, error)
	GetSubscribers(ctx context.Context) ([]models.Subscriber, error)
}
