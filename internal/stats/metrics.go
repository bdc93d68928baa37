package stats

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cascadesim"
	subsystem = "run"
)

const (
	labelNode = "node"
	labelEdge = "edge"
)

// Collector holds every Prometheus metric a completed (or in-progress)
// cascade run exports. Mirrors bfdmetrics.Collector's
// GaugeVec/CounterVec-per-concern shape, re-pointed at run statistics
// instead of live session state.
type Collector struct {
	// EmptySlotProbability is the fraction of listening ticks a node
	// spent in a dead channel run, per node.
	EmptySlotProbability *prometheus.GaugeVec

	// EdgeSent counts observed transmissions per directed edge.
	EdgeSent *prometheus.CounterVec

	// EdgeCollisions counts transmissions that collided with another
	// node's interference window, per directed edge.
	EdgeCollisions *prometheus.CounterVec

	// NodesReached is the number of nodes holding the message at the
	// end of the run.
	NodesReached prometheus.Gauge

	// AttemptsTotal counts every batch-processing attempt across all
	// nodes.
	AttemptsTotal prometheus.Counter
}

// NewCollector creates a Collector and registers it against reg. If reg
// is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := newMetrics()

	reg.MustRegister(
		c.EmptySlotProbability,
		c.EdgeSent,
		c.EdgeCollisions,
		c.NodesReached,
		c.AttemptsTotal,
	)

	return c
}

func newMetrics() *Collector {
	return &Collector{
		EmptySlotProbability: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "empty_slot_probability",
			Help:      "Fraction of listening ticks a node spent in a dead channel run.",
		}, []string{labelNode}),
		EdgeSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "edge_sent_total",
			Help:      "Transmissions observed on a directed edge.",
		}, []string{labelEdge}),
		EdgeCollisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "edge_collisions_total",
			Help:      "Transmissions on a directed edge that collided with interference.",
		}, []string{labelEdge}),
		NodesReached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nodes_reached",
			Help:      "Number of nodes holding the message at the end of the run.",
		}),
		AttemptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempts_total",
			Help:      "Total batch-processing attempts across all nodes.",
		}),
	}
}

// ObserveEmptySlotProbability records p for node.
func (c *Collector) ObserveEmptySlotProbability(node int, p float64) {
	c.EmptySlotProbability.WithLabelValues(strconv.Itoa(node)).Set(p)
}

// ObserveEdge adds sent/collisions counts for the directed edge
// "from->to".
func (c *Collector) ObserveEdge(from, to int, sent, collisions int) {
	label := strconv.Itoa(from) + "->" + strconv.Itoa(to)
	c.EdgeSent.WithLabelValues(label).Add(float64(sent))
	c.EdgeCollisions.WithLabelValues(label).Add(float64(collisions))
}
