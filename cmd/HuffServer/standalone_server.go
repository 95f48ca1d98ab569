// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../../LICENSE.md.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/blanu/huffcodec/config"
	"github.com/blanu/huffcodec/server"
)

var log = logging.MustGetLogger("HuffServer")

const progName = "HuffServer"
const usageMessageRaw = `
Usage: HuffServer [OPTIONS]

Options:
  --config FILE, -c FILE
	Read settings from the JSON file FILE; options below
	override it.
  --listen HOST:PORT, -l HOST:PORT
	Serve HTTP on HOST:PORT.  Defaults to 127.0.0.1:8080.
  --max-request-bytes N
	Reject request bodies larger than N bytes.
  --debug, -d
	Log codec internals to standard error.
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{color:bold}%{level:6s}%{color:reset} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// configPathFromArgs picks out --config/-c ahead of the full parse, so that the file can supply defaults for
// every other option.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		switch {
		case (arg == "-c" || arg == "--config" || arg == "-config") && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		}
	}
	return ""
}

func main() {
	startLogging()

	cfg := config.New()
	configPath := configPathFromArgs(os.Args[1:])
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			exitError(fmt.Errorf("loading %s: %w", configPath, err))
		}
	}

	ourFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})
	ourFlags.String("config", "", "")
	ourFlags.String("c", "", "")
	cfg.RegisterServerFlags(ourFlags)

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}
	if ourFlags.NArg() > 0 {
		usageErrorf("too many arguments at 0 (\"%s\")", ourFlags.Arg(0))
	}

	if cfg.Debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	gin.SetMode(gin.ReleaseMode)
	r, err := server.New(cfg)
	if err != nil {
		exitError(err)
	}

	log.Infof("listening on %s", cfg.ListenAddress)
	if err := r.Run(cfg.ListenAddress); err != nil {
		exitError(err)
	}
}
