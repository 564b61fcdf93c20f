// Package ringmetrics exports ring occupancy as Prometheus metrics.
//
// The collector reads the ring through its Observer methods at scrape time,
// so it adds nothing to the push/pop hot path. Scrapes run on their own
// goroutine: only register Shared rings.
package ringmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/randomizedcoder/spscring/internal/ring"
)

const (
	namespace = "spscring"
	subsystem = "ring"
)

// Observed is the subset of ring.Observer the collector reads.
type Observed interface {
	Capacity() int
	Len() int
	Remaining() int
	ReadIsHeld() bool
	WriteIsHeld() bool
}

var _ Observed = (ring.Observer[any])(nil)

// Collector is a prometheus.Collector over one ring.
type Collector struct {
	ring Observed

	length       *prometheus.Desc
	capacity     *prometheus.Desc
	remaining    *prometheus.Desc
	producerHeld *prometheus.Desc
	consumerHeld *prometheus.Desc
}

// NewCollector returns a collector labelling every metric with name.
func NewCollector(name string, r Observed) *Collector {
	labels := prometheus.Labels{"ring": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, metric), help, nil, labels)
	}

	return &Collector{
		ring:         r,
		length:       desc("len", "Number of occupied slots"),
		capacity:     desc("capacity", "Number of slots"),
		remaining:    desc("remaining", "Number of vacant slots"),
		producerHeld: desc("producer_held", "1 while a producer handle is live"),
		consumerHeld: desc("consumer_held", "1 while a consumer handle is live"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.capacity
	ch <- c.remaining
	ch <- c.producerHeld
	ch <- c.consumerHeld
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(c.ring.Len()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.ring.Capacity()))
	ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(c.ring.Remaining()))
	ch <- prometheus.MustNewConstMetric(c.producerHeld, prometheus.GaugeValue, boolToFloat(c.ring.WriteIsHeld()))
	ch <- prometheus.MustNewConstMetric(c.consumerHeld, prometheus.GaugeValue, boolToFloat(c.ring.ReadIsHeld()))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
