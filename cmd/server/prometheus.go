package main

import (
	"github.com/pagedmem/pagesim/simulator"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus metrics (gauges)
	promMetrics = struct {
		accesses        prometheus.Gauge
		pageFaults      prometheus.Gauge
		evictions       prometheus.Gauge
		completions     prometheus.Gauge
		occupiedFrames  prometheus.Gauge
		freeFrames      prometheus.Gauge
		waitQueueLength prometheus.Gauge
		utilization     prometheus.Gauge
		faultRate       prometheus.Gauge
	}{
		accesses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_accesses_total",
			Help: "Total page accesses",
		}),
		pageFaults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_page_faults_total",
			Help: "Total page faults",
		}),
		evictions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_evictions_total",
			Help: "Total frame evictions",
		}),
		completions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_completions_total",
			Help: "Total job completions",
		}),
		occupiedFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_occupied_frames",
			Help: "Frames currently holding a page",
		}),
		freeFrames: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_free_frames",
			Help: "Frames currently free",
		}),
		waitQueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_wait_queue_length",
			Help: "Jobs waiting for admission",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_memory_utilization_percent",
			Help: "Occupied frames as a percentage of the pool",
		}),
		faultRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pagesim_fault_rate",
			Help: "Page faults per access",
		}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.accesses,
		promMetrics.pageFaults,
		promMetrics.evictions,
		promMetrics.completions,
		promMetrics.occupiedFrames,
		promMetrics.freeFrames,
		promMetrics.waitQueueLength,
		promMetrics.utilization,
		promMetrics.faultRate,
	)
}

func updatePrometheusMetrics(metrics *simulator.Metrics) {
	promMetrics.accesses.Set(float64(metrics.Accesses))
	promMetrics.pageFaults.Set(float64(metrics.PageFaults))
	promMetrics.evictions.Set(float64(metrics.Evictions))
	promMetrics.completions.Set(float64(metrics.Completions))
	promMetrics.occupiedFrames.Set(float64(metrics.OccupiedFrames))
	promMetrics.freeFrames.Set(float64(metrics.FreeFrames))
	promMetrics.waitQueueLength.Set(float64(metrics.WaitQueueLength))
	promMetrics.utilization.Set(metrics.UtilizationPercent)
	promMetrics.faultRate.Set(metrics.FaultRate)
}
