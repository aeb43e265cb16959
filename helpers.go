package bars

// Мост к techan: закрытые бары превращаются в свечи,
// чтобы поверх консолидированного потока можно было считать индикаторы

import (
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// techan считает на sdcoffey/big, вся остальная подсистема на shopspring
func Decimal2Big(d decimal.Decimal) big.Decimal {
	return big.NewFromString(d.String())
}

// Candle строит techan-свечу из закрытого бара подсистемы;
// бары без ценового диапазона дают open=high=low=close
func Candle(bar DataPoint) *techan.Candle {
	switch b := bar.(type) {
	case *TradeBar:
		return ohlcvCandle(b.Time, b.Period, b.Open, b.High, b.Low, b.Close, b.Volume)
	case *RenkoBar:
		return ohlcvCandle(b.Start, b.GetPeriod(), b.Open, b.High, b.Low, b.Close, b.Volume)
	case *RangeBar:
		return ohlcvCandle(b.Start, b.GetPeriod(), b.Open, b.High, b.Low, b.Close, b.Volume)
	case *VolumeRenkoBar:
		return ohlcvCandle(b.Start, b.GetPeriod(), b.Open, b.High, b.Low, b.Close, b.Volume)
	case *SessionBar:
		return ohlcvCandle(b.Time, b.GetPeriod(), b.Open, b.High, b.Low, b.Close, b.Volume)
	default:
		v := bar.GetValue()
		return ohlcvCandle(bar.GetTime(), bar.GetPeriod(), v, v, v, v, decimal.Zero)
	}
}

func ohlcvCandle(start time.Time, period time.Duration, open, high, low, close, volume decimal.Decimal) *techan.Candle {
	return &techan.Candle{
		Period:     techan.NewTimePeriod(start, period),
		OpenPrice:  Decimal2Big(open),
		MaxPrice:   Decimal2Big(high),
		MinPrice:   Decimal2Big(low),
		ClosePrice: Decimal2Big(close),
		Volume:     Decimal2Big(volume),
	}
}

//TODO неоптимально на длинных сериях, нужен бинарный поиск по Period.Start
func FindSeries(series *techan.TimeSeries, time time.Time) int {
	if series == nil {
		return -1
	}
	for idx, c := range series.Candles {
		if (time.After(c.Period.Start) && time.Before(c.Period.End)) ||
			time.Equal(c.Period.Start) {
			return idx
		}
	}
	return -1
}

func UpsertSeries(series *techan.TimeSeries, newCandle *techan.Candle) {
	idx := FindSeries(series, newCandle.Period.Start)

	if idx != -1 {
		series.Candles[idx] = newCandle
	} else {
		if !series.AddCandle(newCandle) {
			series.Candles = append(series.Candles, newCandle)
			slices.SortFunc(series.Candles, func(a *techan.Candle, b *techan.Candle) bool {
				return a.Period.Start.Before(b.Period.Start)
			})
		}
	}
}
