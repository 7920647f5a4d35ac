package main

import (
	logging "github.com/op/go-logging"
	"github.com/urfave/cli/v2"

	"github.com/rkvale/tracecore/internal/rlog"
)

var log = rlog.New("tracecore")

func setupLogging(ctx *cli.Context) {
	if ctx.Bool("vv") {
		rlog.SetLevel(logging.DEBUG)
	} else if ctx.Bool("v") {
		rlog.SetLevel(logging.INFO)
	}
}
