package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/domain/models"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/metrics"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/repository"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/storage"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/transport/http/dto"
)

type LeadService struct {
	log         *slog.Logger
	leads       repository.LeadRepository
	subscribers repository.SubscriberRepository
}

func NewLeadService(log *slog.Logger, leads repository.LeadRepository, subscribers repository.SubscriberRepository) *LeadService {
	return &LeadService{
		log:         log,
		leads:       leads,
		subscribers: subscribers,
	}
}

func (s *LeadService) SubmitContact(ctx context.Context, req dto.ContactRequest) (uuid.UUID, error) {
	const op = "lead_service.SubmitContact"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", req.Email),
	)

	lead := models.Lead{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Service:   req.Service,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.leads.SaveLead(ctx, lead)
	if err != nil {
		log.Error("failed to save lead", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.LeadsTotal.Inc()
	log.Info("lead saved", slog.String("lead_id", id.String()))

	return id, nil
}

// Subscribe registers an email for the newsletter. A duplicate subscription
// is not an error for the caller; the bool reports whether the email was
// already on the list.
func (s *LeadService) Subscribe(ctx context.Context, email string) (bool, error) {
	const op = "lead_service.Subscribe"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	_, err := s.subscribers.SaveSubscriber(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadySubscribed) {
			log.Info("email already subscribed")
			return true, nil
		}

		log.Error("failed to save subscriber", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("subscriber saved")

	return false, nil
}

func (s *LeadService) ListLeads(ctx context.Context, page, perPage int) ([]models.Lead, int, error) {
	const op = "lead_service.ListLeads"

	leads, total, err := s.leads.GetLeads(ctx, page, perPage)
	if err != nil {
		s.log.Error("failed to list leads", slog.String("op", op), sl.Err(err))
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return leads, total, nil
}

func (s *LeadService) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	const op = "lead_service.ListSubscribers"

	subs, err := s.subscribers.GetSubscribers(ctx)
	if err != nil {
		s.log.Error("failed to list subscribers", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return subs, nil
}
