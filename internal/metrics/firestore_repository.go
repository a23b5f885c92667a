package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	firestoreRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emission_settlement",
		Subsystem: "firestore_repository",
		Name:      "operations_total",
		Help:      "Count of Firestore reads.",
	}, []string{"operation", "status"})
	firestoreRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emission_settlement",
		Subsystem: "firestore_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Firestore reads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	firestoreRepositoryDocuments = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emission_settlement",
		Subsystem: "firestore_repository",
		Name:      "documents_read",
		Help:      "Number of documents returned per read.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"operation"})
)

// FirestoreRepository tracks metrics for Firestore repository reads.
type FirestoreRepository struct{}

// NewFirestoreRepository creates a FirestoreRepository metrics collector.
func NewFirestoreRepository() *FirestoreRepository {
	return &FirestoreRepository{}
}

// Observe records duration, status and document count of a read.
func (m FirestoreRepository) Observe(operation string, documents int, err error, started time.Time) {
	status := statusOf(err)
	firestoreRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	firestoreRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
	if err == nil {
		firestoreRepositoryDocuments.WithLabelValues(operation).Observe(float64(documents))
	}
}
