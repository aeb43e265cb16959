package replay

// Прогон исторических данных через консолидатор: сэмплы сортируются
// по времени, скармливаются по одному, излучённые бары собираются.
// Ошибки отдельных сэмплов накапливаются и не прерывают прогон

import (
	"time"

	"github.com/go-trading/bars"
	"github.com/hashicorp/go-multierror"
	"github.com/sdcoffey/techan"
	"golang.org/x/exp/slices"
)

// Run прогоняет данные через консолидатор и возвращает излучённые
// бары. flushAt - момент финального Scan, закрывающего последнее
// недостроенное окно; нулевое значение - не сканировать
func Run(c bars.Consolidator, data []bars.DataPoint, flushAt time.Time) ([]bars.DataPoint, error) {
	sorted := slices.Clone(data)
	slices.SortFunc(sorted, func(a bars.DataPoint, b bars.DataPoint) bool {
		return a.GetTime().Before(b.GetTime())
	})

	var emitted []bars.DataPoint
	c.OnConsolidated(func(_ bars.Consolidator, bar bars.DataPoint) {
		emitted = append(emitted, bar)
	})

	var errs *multierror.Error
	for _, d := range sorted {
		// дедлайны проверяются временем самих данных: прогон
		// детерминирован и не зависит от настенных часов
		c.Scan(d.GetTime())
		if err := c.Update(d); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if !flushAt.IsZero() {
		c.Scan(flushAt)
	}
	return emitted, errs.ErrorOrNil()
}

// Series собирает из излучённых баров techan-серию для индикаторов
func Series(emitted []bars.DataPoint) *techan.TimeSeries {
	series := techan.NewTimeSeries()
	for _, bar := range emitted {
		bars.UpsertSeries(series, bars.Candle(bar))
	}
	return series
}
