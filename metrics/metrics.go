package metrics

import (
	"time"
)

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters of a mining run. Every Metrics has its own
// registry so separate runs (and tests) never share counts.
type Metrics struct {
	Registry *prometheus.Registry

	Generated    prometheus.Counter
	Duplicates   prometheus.Counter
	Examined     prometheus.Counter
	Infeasible   prometheus.Counter
	Frequent     prometheus.Counter
	Inconclusive prometheus.Counter
	Comparisons  prometheus.Counter
	MISSizes     prometheus.Histogram

	RunTime *prometheus.GaugeVec
	Results *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Generated: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_candidates_generated_total",
			Help: "Candidate patterns generated by vertex extension or joist closure",
		}),
		Duplicates: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_candidates_duplicate_total",
			Help: "Candidates discarded as isomorphic to an earlier candidate",
		}),
		Examined: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_candidates_examined_total",
			Help: "Candidates searched for embeddings",
		}),
		Infeasible: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_candidates_infeasible_total",
			Help: "Candidates pruned because some vertex could not reach the support",
		}),
		Frequent: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_patterns_frequent_total",
			Help: "Candidates meeting the support",
		}),
		Inconclusive: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_searches_inconclusive_total",
			Help: "Match searches stopped by the time budget",
		}),
		Comparisons: f.NewCounter(prometheus.CounterOpts{
			Name: "simplets_search_comparisons_total",
			Help: "Host vertices tested against pattern constraints",
		}),
		MISSizes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "simplets_mis_size",
			Help:    "Maximum independent set sizes of the overlap graphs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		RunTime: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "simplets_run_seconds",
			Help: "Wall clock time of the mining run",
		}, []string{"dataset"}),
		Results: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "simplets_results",
			Help: "Patterns reported by the mining run",
		}, []string{"dataset"}),
	}
}

// Finish records the run time and result count of dataset.
func (m *Metrics) Finish(dataset string, elapsed time.Duration, results int) {
	m.RunTime.WithLabelValues(dataset).Set(elapsed.Seconds())
	m.Results.WithLabelValues(dataset).Set(float64(results))
}

// WriteFile writes every metric in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
