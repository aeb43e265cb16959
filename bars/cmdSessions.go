package main

import (
	"os"
	"time"

	"github.com/go-trading/bars"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

func sessions(c *cli.Context) error {
	from := time.Now().AddDate(0, 0, -7)
	to := time.Now()
	if c.IsSet("from") {
		from = *c.Timestamp("from")
	}
	if c.IsSet("to") {
		to = *c.Timestamp("to")
	}
	hours := bars.NewEquityUSHours()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"Date", "Open", "Close", "Extended"})
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for _, s := range hours.Sessions(day) {
			if s.Extended && !c.Bool("extended") {
				continue
			}
			tbl.AppendRow(table.Row{
				day.Format("2006-01-02 Mon"),
				s.Open.Format("15:04"),
				s.Close.Format("15:04"),
				s.Extended,
			})
		}
	}
	tbl.Render()
	return nil
}
