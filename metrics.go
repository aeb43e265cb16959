package bars

import (
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consolidatedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bars_consolidated_total",
		Help: "Сколько закрытых баров эмитировано, по инструментам и типам баров",
	},
		[]string{"symbol", "type"},
	)
	spanMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bars_last_span_seconds",
		Help: "Длительность последнего закрытого бара в секундах",
	},
		[]string{"symbol", "type"},
	)
)

func countConsolidated(bar DataPoint) {
	kind := reflect.TypeOf(bar).Elem().Name()
	consolidatedMetric.WithLabelValues(bar.GetSymbol(), kind).Inc()
	spanMetric.WithLabelValues(bar.GetSymbol(), kind).Set(bar.GetPeriod().Seconds())
}
