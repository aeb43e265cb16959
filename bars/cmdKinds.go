package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

func kinds(c *cli.Context) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"Kind", "Параметры", "Описание"})
	tbl.AppendRows([]table.Row{
		{"period", "--period", "Бары фиксированного периода по настенным часам"},
		{"count", "--count", "Бары из фиксированного числа сэмплов"},
		{"mixed", "--count --period", "Закрытие по первому из условий: счётчик или период"},
		{"weekly", "", "Календарные недельные бары (понедельник-понедельник)"},
		{"monthly", "", "Календарные месячные бары (первое-первое число)"},
		{"renko", "--brick", "Классический ренко без теней"},
		{"wicko", "--brick", "Ренко с тенями (wicko)"},
		{"range", "--units --increment", "Range-бары фиксированного размаха"},
		{"dollar", "--threshold", "Кирпичи по долларовому объёму"},
		{"daily", "--strict --extended", "Дневные бары с учётом торгового календаря"},
		{"session", "--extended", "Один бар на торговую сессию"},
	})
	tbl.Render()
	return nil
}
