package main

import (
	"bufio"
	"flag"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterTree/pkg/engine"
	eval "github.com/ChizhovVadim/CounterTree/pkg/eval/material"
	"github.com/ChizhovVadim/CounterTree/pkg/uci"
)

/*
Counter Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "CounterTree"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
	flgDebug    bool
)

func main() {
	flag.BoolVar(&flgDebug, "debug", false, "log every progress report")
	flag.Parse()

	var level = zerolog.InfoLevel
	if flgDebug {
		level = zerolog.DebugLevel
	}
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	logger.Info().
		Str("VersionName", versionName).
		Str("BuildDate", buildDate).
		Str("GitRevision", gitRevision).
		Str("RuntimeVersion", runtime.Version()).
		Str("GOARCH", runtime.GOARCH).
		Str("GOOS", runtime.GOOS).
		Int("NumCPU", runtime.NumCPU()).
		Msg(name)

	var eng = engine.NewEngine(func() interface{} { return eval.NewEvaluationService() })
	eng.Logger = logger

	var protocol = uci.New(name, author, versionName, eng,
		[]uci.Option{
			&uci.IntOption{Name: "Threads", Min: 1, Max: runtime.NumCPU(), Value: &eng.Options.Threads},
			&uci.IntOption{Name: "DepthLimit", Min: 0, Max: 1000, Value: &eng.Options.DepthLimit},
			&uci.IntOption{Name: "MaxNodes", Min: 1000, Max: 1 << 28, Value: &eng.Options.MaxNodes},
			&uci.ComboOption{Name: "Frontier", Values: []string{
				engine.FrontierHeap.String(),
				engine.FrontierBuckets.String(),
			}, Value: (*int)(&eng.Options.Frontier)},
		},
	)
	protocol.Run(logger, bufio.NewScanner(os.Stdin))
}
