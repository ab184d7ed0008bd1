package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exitsurvey_jobs_submitted_total",
			Help: "Total number of analysis jobs accepted into the queue",
		},
	)

	JobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exitsurvey_jobs_completed_total",
			Help: "Total number of analysis jobs finished, by final status",
		},
		[]string{"status"},
	)

	JobsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exitsurvey_jobs_rejected_total",
			Help: "Total number of analysis jobs rejected because the queue was full",
		},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exitsurvey_analysis_duration_seconds",
			Help:    "Duration of parse plus analysis in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	RowsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exitsurvey_rows_analyzed_total",
			Help: "Total number of survey rows analyzed",
		},
	)

	AnswersAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exitsurvey_answers_total",
			Help: "Total number of extracted answers, by whether they matched a category",
		},
		[]string{"matched"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "exitsurvey_queue_depth",
			Help: "Number of jobs waiting in the analysis queue",
		},
	)
)
