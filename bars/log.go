package main

// Инициация уровня логирования в текущем

import (
	"github.com/go-trading/bars"
	"github.com/go-trading/bars/consolidator"
	"github.com/go-trading/bars/renko"
	"github.com/go-trading/bars/replay"
	"github.com/go-trading/bars/schedule"
	"github.com/go-trading/bars/session"
	"go.uber.org/zap"
)

var l *zap.Logger

func init() {
	logger, _ := zap.NewProduction()
	l = logger
}

func initDebugLogger() {
	logger, _ := zap.NewDevelopment()
	l = logger
	bars.SetLogger(l)
	consolidator.SetLogger(l)
	renko.SetLogger(l)
	session.SetLogger(l)
	schedule.SetLogger(l)
	replay.SetLogger(l)
}
