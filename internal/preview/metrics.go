package preview

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

// Metrics holds the Prometheus registry and counters exposed in serve mode.
type Metrics struct {
	registry          *prom.Registry
	buildsTotal       prom.Counter
	buildsFailedTotal prom.Counter
	pagesGenerated    prom.Counter
	toolFailures      prom.Counter
}

// NewMetrics creates a registry with build counters plus the standard Go and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry:          prom.NewRegistry(),
		buildsTotal:       prom.NewCounter(prom.CounterOpts{Namespace: "godocsite", Name: "builds_total", Help: "Total site builds attempted"}),
		buildsFailedTotal: prom.NewCounter(prom.CounterOpts{Namespace: "godocsite", Name: "builds_failed_total", Help: "Site builds that aborted with an error"}),
		pagesGenerated:    prom.NewCounter(prom.CounterOpts{Namespace: "godocsite", Name: "pages_generated_total", Help: "Package pages written across all builds"}),
		toolFailures:      prom.NewCounter(prom.CounterOpts{Namespace: "godocsite", Name: "tool_failures_total", Help: "Documentation tool invocations that exited abnormally"}),
	}
	m.registry.MustRegister(m.buildsTotal, m.buildsFailedTotal, m.pagesGenerated, m.toolFailures)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}

// Handler serves the registry in OpenMetrics-capable form.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveBuild updates counters from one build attempt.
func (m *Metrics) ObserveBuild(report *site.Report, err error) {
	m.buildsTotal.Inc()
	if err != nil {
		m.buildsFailedTotal.Inc()
		return
	}
	m.pagesGenerated.Add(float64(len(report.Pages)))
	m.toolFailures.Add(float64(report.Failures()))
}
