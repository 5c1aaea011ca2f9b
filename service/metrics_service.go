package service

import (
	"time"

	"civictrack/models"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService records complaint lifecycle events as Prometheus metrics
type MetricsService struct {
	complaintsCreated *prometheus.CounterVec
	statusChanges     *prometheus.CounterVec
	timeToResolve     prometheus.Histogram
}

// NewMetricsService creates the lifecycle collectors and registers them with reg
func NewMetricsService(reg prometheus.Registerer) *MetricsService {
	s := &MetricsService{
		complaintsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "civictrack",
			Name:      "complaints_created_total",
			Help:      "Complaints submitted by citizens, by category.",
		}, []string{"category"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "civictrack",
			Name:      "status_changes_total",
			Help:      "Complaint status transitions made by government officials.",
		}, []string{"from", "to"}),
		timeToResolve: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "civictrack",
			Name:      "time_to_resolve_hours",
			Help:      "Hours between complaint submission and resolution.",
			Buckets:   []float64{1, 6, 24, 72, 168, 336, 720},
		}),
	}
	if reg != nil {
		reg.MustRegister(s.complaintsCreated, s.statusChanges, s.timeToResolve)
	}
	return s
}

// EmitComplaintCreated records a complaint submission
func (s *MetricsService) EmitComplaintCreated(category string) {
	if s == nil {
		return
	}
	s.complaintsCreated.WithLabelValues(category).Inc()
}

// EmitStatusChanged records a status transition; resolutions also observe
// the time taken since submission.
func (s *MetricsService) EmitStatusChanged(from, to models.Status, createdAt time.Time) {
	if s == nil {
		return
	}
	s.statusChanges.WithLabelValues(string(from), string(to)).Inc()
	if to == models.StatusResolved && !createdAt.IsZero() {
		s.timeToResolve.Observe(time.Since(createdAt).Hours())
	}
}
