package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_store_request_duration_seconds",
			Help:    "Latency of object store calls made by the gallery",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"op", "status"}, // op: list|sign, status: ok|not_found|error
	)

	galleryPhotos = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_gallery_photos_total",
			Help: "Photos returned by folder retrievals",
		},
	)

	gallerySkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_gallery_skipped_objects_total",
			Help: "Listed objects left out of a folder retrieval",
		},
		[]string{"reason"}, // thumbnail|extension|error
	)

	thumbnailProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_gallery_thumbnail_probes_total",
			Help: "Thumbnail candidate lookups by outcome",
		},
		[]string{"result"}, // hit|miss|error
	)

	softFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_gallery_soft_failures_total",
			Help: "Gallery calls that degraded to an empty result",
		},
		[]string{"op"},
	)
)
