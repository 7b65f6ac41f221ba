package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astra_webhook_events_total",
		Help: "Webhook events received, by classified kind.",
	}, []string{"kind"})

	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_posts_created_total",
		Help: "Posts successfully created in the content store.",
	})

	ImageImportFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_image_import_failures_total",
		Help: "Image imports that fell back to creating the post without an image.",
	})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "astra_cache_invalidations_total",
		Help: "Cache invalidation runs, by outcome.",
	}, []string{"outcome"})

	LeadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "astra_contact_leads_total",
		Help: "Contact form submissions accepted.",
	})
)
