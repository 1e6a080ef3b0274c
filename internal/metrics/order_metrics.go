package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики workflow создания заказов.
type OrderMetrics struct {
	// Счётчики результатов
	ordersCreated prometheus.Counter
	ordersFailed  *prometheus.CounterVec

	// Гистограммы
	createDuration prometheus.Histogram
	linesPerOrder  prometheus.Histogram

	// Счётчики побочных эффектов
	stockDecrements prometheus.Counter
	eventsPublished prometheus.Counter
}

// NewOrderMetrics создаёт новый экземпляр метрик заказов.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ocs_orders_created_total",
			Help: "Total number of orders successfully created",
		}),
		ordersFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ocs_orders_failed_total",
			Help: "Total number of order creations failed, by failure reason",
		}, []string{"reason"}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ocs_order_create_duration_seconds",
			Help:    "Duration of the order creation workflow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		linesPerOrder: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ocs_order_lines",
			Help:    "Number of lines per successfully created order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}),
		stockDecrements: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ocs_stock_decrements_total",
			Help: "Total number of successful stock decrement calls",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "ocs_order_events_published_total",
			Help: "Total number of order events published to the broker",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated учитывает успешно созданный заказ и количество его позиций.
func (m *OrderMetrics) RecordOrderCreated(lines int) {
	m.ordersCreated.Inc()
	m.linesPerOrder.Observe(float64(lines))
}

// RecordOrderFailed увеличивает счётчик неудачных созданий по причине.
func (m *OrderMetrics) RecordOrderFailed(reason string) {
	m.ordersFailed.WithLabelValues(reason).Inc()
}

// RecordCreateDuration записывает длительность workflow.
func (m *OrderMetrics) RecordCreateDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}

// RecordStockDecrement увеличивает счётчик успешных списаний остатков.
func (m *OrderMetrics) RecordStockDecrement() {
	m.stockDecrements.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *OrderMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}
