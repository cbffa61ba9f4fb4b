package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics exposes the API key database pool statistics as
// Prometheus gauges on reg.
func RegisterPgxPoolMetrics(reg prometheus.Registerer, pool *pgxpool.Pool) {
	gauges := map[string]struct {
		help string
		fn   func(*pgxpool.Stat) float64
	}{
		"acquired_conns": {"Number of currently acquired connections", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }},
		"idle_conns":     {"Number of idle connections", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }},
		"total_conns":    {"Total number of connections", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }},
		"max_conns":      {"Maximum number of connections", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }},
	}

	for name, g := range gauges {
		fn := g.fn
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "edgedomains",
			Subsystem: "pgxpool",
			Name:      name,
			Help:      g.help,
		}, func() float64 {
			return fn(pool.Stat())
		}))
	}
}
