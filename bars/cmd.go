package main

// В файле описаны все команды, доступные в командной строке

import (
	"github.com/urfave/cli/v2"
)

var сommands = []*cli.Command{
	{
		Name:   "replay",
		Usage:  "Прогнать исторические данные из csv через выбранный консолидатор и вывести бары",
		Action: replayCmd,
		Flags: []cli.Flag{
			dataFlag, symbolFlag, ticksFlag, sourcePeriodFlag,
			kindFlag, periodFlag, countFlag,
			brickFlag, unitsFlag, incrementFlag, thresholdFlag,
			extendedFlag, strictFlag,
			outFlag, rsiFlag,
		},
	}, {
		Name:   "kinds",
		Usage:  "Вывести список видов консолидаторов и их параметры",
		Action: kinds,
	}, {
		Name:   "sessions",
		Usage:  "Вывести торговые сессии календаря американских акций на интервал дат",
		Action: sessions,
		Flags:  []cli.Flag{fromFlag, toFlag, extendedFlag},
	},
}
