package main

// описание аргументов командной строки

import (
	"time"

	"github.com/urfave/cli/v2"
)

var (
	symbolFlag = &cli.StringFlag{
		Name:     "symbol",
		Usage:    "Идентификатор инструмента",
		Required: true,
		EnvVars:  []string{"BARS_SYMBOL"},
	}
	dataFlag = &cli.PathFlag{
		Name:     "data",
		Usage:    "csv-файл с исходными данными (Time,Open,High,Low,Close,Volume или Time,Price,Quantity для тиков)",
		Required: true,
		EnvVars:  []string{"BARS_DATA"},
	}
	ticksFlag = &cli.BoolFlag{
		Name:  "ticks",
		Usage: "Входной файл содержит тики, а не свечи",
	}
	sourcePeriodFlag = &cli.DurationFlag{
		Name:    "source-period",
		Value:   time.Minute,
		Usage:   "Период свечей входного файла",
		EnvVars: []string{"BARS_SOURCE_PERIOD"},
	}
	periodFlag = &cli.DurationFlag{
		Name:  "period",
		Value: 5 * time.Minute,
		Usage: "Период результирующего бара",
	}
	countFlag = &cli.IntFlag{
		Name:  "count",
		Value: 10,
		Usage: "Количество сэмплов в результирующем баре",
	}
	brickFlag = &cli.StringFlag{
		Name:  "brick",
		Value: "1",
		Usage: "Размер кирпича ренко в абсолютных единицах цены",
	}
	unitsFlag = &cli.Int64Flag{
		Name:  "units",
		Value: 10,
		Usage: "Размах range-бара в шагах цены",
	}
	incrementFlag = &cli.StringFlag{
		Name:  "increment",
		Value: "0.01",
		Usage: "Минимальный шаг цены инструмента",
	}
	thresholdFlag = &cli.StringFlag{
		Name:  "threshold",
		Value: "1000000",
		Usage: "Порог долларового объёма кирпича",
	}
	extendedFlag = &cli.BoolFlag{
		Name:  "extended",
		Usage: "Учитывать расширенные сессии (пре/пост-маркет)",
	}
	strictFlag = &cli.BoolFlag{
		Name:  "strict",
		Value: true,
		Usage: "Строгий конец бара: обрезать по фактическому закрытию сессии",
	}
	outFlag = &cli.PathFlag{
		Name:  "out",
		Usage: "Сохранить консолидированные бары в csv-файл",
	}
	rsiFlag = &cli.IntFlag{
		Name:  "rsi",
		Usage: "Посчитать RSI по результирующей серии с заданным timeframe",
	}
	fromFlag = &cli.TimestampFlag{
		Name:    "from",
		Usage:   "Начало интервала",
		Layout:  "2006-01-02",
		EnvVars: []string{"BARS_FROM"},
	}
	toFlag = &cli.TimestampFlag{
		Name:    "to",
		Usage:   "Конец интервала",
		Layout:  "2006-01-02",
		EnvVars: []string{"BARS_TO"},
	}
	globalFlags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Value:   false,
			Usage:   "Устанавливает уровень логирования в debug уровень",
			Aliases: []string{"d"},
			EnvVars: []string{"BARS_DEBUG"},
		},
		&cli.StringFlag{
			Name:    "monitoring",
			Usage:   "Адрес, по которому включить метрики prometeus. Например :8080",
			Aliases: []string{"m"},
			EnvVars: []string{"BARS_MONITORING"},
		},
	}
)
