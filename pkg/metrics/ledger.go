package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "exchange_ledger"

// LedgerMetrics counts order and rate activity. A nil *LedgerMetrics is a
// valid no-op.
type LedgerMetrics struct {
	ordersCreated   *prometheus.CounterVec
	orderRejections *prometheus.CounterVec
	statusUpdates   *prometheus.CounterVec
	ordersArchived  prometheus.Counter
	rateUpdates     *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	m := &LedgerMetrics{
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders accepted into the ledger.",
		}, []string{"direction", "tier"}),
		orderRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_rejections_total",
			Help:      "Order submissions refused, by error code.",
		}, []string{"code"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_updates_total",
			Help:      "Operator status transitions.",
		}, []string{"status"}),
		ordersArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_archived_total",
			Help:      "Orders moved to the archive.",
		}),
		rateUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_updates_total",
			Help:      "Rate and tier configuration changes.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.ordersCreated, m.orderRejections, m.statusUpdates, m.ordersArchived, m.rateUpdates)
	return m
}

func (m *LedgerMetrics) OrderCreated(direction, tier string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(direction), normalizeLabel(tier)).Inc()
}

func (m *LedgerMetrics) OrderRejected(code string) {
	if m == nil || m.orderRejections == nil {
		return
	}
	m.orderRejections.WithLabelValues(normalizeLabel(code)).Inc()
}

func (m *LedgerMetrics) StatusUpdated(status string) {
	if m == nil || m.statusUpdates == nil {
		return
	}
	m.statusUpdates.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *LedgerMetrics) OrdersArchived(n int) {
	if m == nil || m.ordersArchived == nil || n <= 0 {
		return
	}
	m.ordersArchived.Add(float64(n))
}

// RatesUpdated records a rate change; kind is "rates" or "config".
func (m *LedgerMetrics) RatesUpdated(kind string) {
	if m == nil || m.rateUpdates == nil {
		return
	}
	m.rateUpdates.WithLabelValues(normalizeLabel(kind)).Inc()
}
