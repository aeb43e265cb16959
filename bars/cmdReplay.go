package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-trading/bars"
	"github.com/go-trading/bars/consolidator"
	"github.com/go-trading/bars/renko"
	"github.com/go-trading/bars/replay"
	"github.com/go-trading/bars/session"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sdcoffey/techan"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var kindFlag = &cli.StringFlag{
	Name:    "kind",
	Value:   "period",
	Usage:   "Вид консолидатора, см. команду kinds",
	EnvVars: []string{"BARS_KIND"},
}

func replayCmd(c *cli.Context) error {
	cons, err := newConsolidator(c)
	if err != nil {
		l.Fatal("не смог создать консолидатор", zap.String("kind", c.String("kind")), zap.Error(err))
	}

	var data []bars.DataPoint
	if c.Bool("ticks") {
		data, err = replay.LoadTicks(c.Path("data"), c.String("symbol"))
	} else {
		data, err = replay.LoadBars(c.Path("data"), c.String("symbol"), c.Duration("source-period"))
	}
	if err != nil {
		l.Fatal("не смог прочитать данные", zap.String("data", c.Path("data")), zap.Error(err))
	}
	if len(data) == 0 {
		l.Fatal("входной файл пуст", zap.String("data", c.Path("data")))
	}

	// финальный Scan сильно позже последнего сэмпла дожимает
	// незакрытые окна, включая недельные и месячные
	flushAt := data[len(data)-1].GetEndTime().AddDate(1, 0, 0)
	emitted, err := replay.Run(cons, data, flushAt)
	if err != nil {
		l.Error("часть сэмплов отвергнута", zap.Error(err))
	}

	printBars(emitted)

	if c.IsSet("out") {
		if err := replay.SaveBars(c.Path("out"), emitted); err != nil {
			l.DPanic("не смог сохранить бары", zap.Error(err))
		}
	}
	if c.IsSet("rsi") {
		printRSI(emitted, c.Int("rsi"))
	}
	return nil
}

// фабрика консолидатора по имени вида и флагам командной строки
func newConsolidator(c *cli.Context) (bars.Consolidator, error) {
	ticks := c.Bool("ticks")
	switch c.String("kind") {
	case "period":
		if ticks {
			return consolidator.NewTick(c.Duration("period"))
		}
		return consolidator.NewTradeBar(c.Duration("period"))
	case "count":
		if ticks {
			return consolidator.NewTickCount(c.Int("count"))
		}
		return consolidator.NewTradeBarCount(c.Int("count"))
	case "mixed":
		if ticks {
			return consolidator.NewTickMixed(c.Int("count"), c.Duration("period"))
		}
		return consolidator.NewTradeBarMixed(c.Int("count"), c.Duration("period"))
	case "weekly":
		if ticks {
			return consolidator.NewTickCalendar(consolidator.CalendarWeekly), nil
		}
		return consolidator.NewTradeBarCalendar(consolidator.CalendarWeekly), nil
	case "monthly":
		if ticks {
			return consolidator.NewTickCalendar(consolidator.CalendarMonthly), nil
		}
		return consolidator.NewTradeBarCalendar(consolidator.CalendarMonthly), nil
	case "renko":
		brick, err := decimal.NewFromString(c.String("brick"))
		if err != nil {
			return nil, err
		}
		return renko.NewClassic(brick)
	case "wicko":
		brick, err := decimal.NewFromString(c.String("brick"))
		if err != nil {
			return nil, err
		}
		return renko.NewWicked(brick)
	case "range":
		increment, err := decimal.NewFromString(c.String("increment"))
		if err != nil {
			return nil, err
		}
		return renko.NewRange(c.Int64("units"), increment)
	case "dollar":
		threshold, err := decimal.NewFromString(c.String("threshold"))
		if err != nil {
			return nil, err
		}
		return renko.NewDollarVolume(threshold)
	case "daily":
		return session.NewMarketHourAware(24*time.Hour, bars.NewEquityUSHours(), c.Bool("strict"), c.Bool("extended"))
	case "session":
		return session.New(bars.NewEquityUSHours(), c.Bool("extended"))
	default:
		return nil, fmt.Errorf("неизвестный вид консолидатора %q", c.String("kind"))
	}
}

func printBars(emitted []bars.DataPoint) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"#", "Time", "End", "Open", "High", "Low", "Close", "Volume"})
	for i, bar := range emitted {
		candle := bars.Candle(bar)
		tbl.AppendRow(table.Row{
			i + 1,
			candle.Period.Start.Format("2006-01-02 15:04:05"),
			candle.Period.End.Format("2006-01-02 15:04:05"),
			candle.OpenPrice,
			candle.MaxPrice,
			candle.MinPrice,
			candle.ClosePrice,
			candle.Volume,
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", "", "", "bars", len(emitted)})
	tbl.Render()
}

func printRSI(emitted []bars.DataPoint, timeframe int) {
	series := replay.Series(emitted)
	if len(series.Candles) <= timeframe {
		l.Error("баров меньше, чем timeframe RSI",
			zap.Int("bars", len(series.Candles)),
			zap.Int("timeframe", timeframe),
		)
		return
	}
	rsi := techan.NewRelativeStrengthIndexIndicator(techan.NewClosePriceIndicator(series), timeframe)
	fmt.Printf("RSI(%d) = %s\n", timeframe, rsi.Calculate(len(series.Candles)-1))
}
