// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../../LICENSE.md.

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/blanu/huffcodec/config"
	"github.com/blanu/huffcodec/huffman"
	"github.com/blanu/huffcodec/report"
)

var log = logging.MustGetLogger("HuffTool")

const progName = "HuffTool"
const usageMessageRaw = `
Usage: HuffTool [OPTIONS] SUBCOMMAND...

Options:
  --config FILE, -c FILE
	Read settings from the JSON file FILE before applying
	subcommand options.
  --debug, -d
	Log codec internals to standard error.

Subcommands:
  compress [-o FILE] [-p] [INPUT]
    Compress INPUT (default standard input) into a self-describing
    container.  Output goes to FILE, or INPUT with its extension
    replaced by .bin (INPUT.huf if INPUT already ends in .bin), or
    standard output when reading standard input.  FILE may not be
    INPUT.
    With -p, print the frequency table and codes.

  decompress [-o FILE] [INPUT]
    Decompress a container.  Output goes to FILE, or INPUT with its
    extension replaced by _decompressed.txt, or standard output.

  stats [INPUT]
    Compress and decompress INPUT in memory, check that the round
    trip is exact, and print the frequency table and compression
    ratio.
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var ourFlags *flag.FlagSet

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

var argI int = 0

func nextArg(expected string) string {
	if !(argI < ourFlags.NArg()) {
		usageErrorf("not enough arguments; expected %s", expected)
	}
	arg := ourFlags.Arg(argI)
	argI++
	return arg
}

func optionalArg() string {
	if argI < ourFlags.NArg() {
		arg := ourFlags.Arg(argI)
		argI++
		return arg
	}
	return ""
}

func remainingArgs() []string {
	slice := ourFlags.Args()[argI:]
	argI = ourFlags.NArg()
	return slice
}

func endOfArgs() {
	if argI < ourFlags.NArg() {
		usageErrorf("too many arguments at %d (\"%s\")", argI, ourFlags.Arg(argI))
	}
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{color:bold}%{level:6s}%{color:reset} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0666)
}

// reportWriter keeps reports off standard output when standard output carries data.
func reportWriter(outputPath string) io.Writer {
	if outputPath == "" || outputPath == "-" {
		return os.Stderr
	}
	return os.Stdout
}

func compressFile(cfg *config.Config) error {
	input, err := readInput(cfg.InputPath)
	if err != nil {
		return err
	}

	c, err := huffman.NewContainer(input)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if _, err := c.WriteTo(&out); err != nil {
		return err
	}

	outputPath, err := cfg.Output(config.CompressMode)
	if err != nil {
		return err
	}
	if err := writeOutput(outputPath, out.Bytes()); err != nil {
		return err
	}
	log.Infof("compressed %d bytes into %d bytes", len(input), out.Len())

	if cfg.ReportFrequencies {
		table, err := c.CodeTable()
		if err != nil {
			return err
		}
		w := reportWriter(outputPath)
		if err := report.WriteFrequencies(w, report.Frequencies(c.Frequencies, table)); err != nil {
			return err
		}
		return report.WriteRatio(w, report.Ratio(int64(len(input)), int64(out.Len())))
	}
	return nil
}

func decompressFile(cfg *config.Config) error {
	data, err := readInput(cfg.InputPath)
	if err != nil {
		return err
	}

	out, err := huffman.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(cfg.InputPath), err)
	}

	outputPath, err := cfg.Output(config.DecompressMode)
	if err != nil {
		return err
	}
	if err := writeOutput(outputPath, out); err != nil {
		return err
	}
	log.Infof("decompressed %d bytes into %d bytes", len(data), len(out))
	return nil
}

var errRoundTrip = errors.New("round trip did not reproduce the input")

func statsFile(cfg *config.Config) error {
	input, err := readInput(cfg.InputPath)
	if err != nil {
		return err
	}

	container, err := huffman.Marshal(input)
	if err != nil {
		return err
	}
	looped, err := huffman.Unmarshal(container)
	if err != nil {
		return err
	}
	if !bytes.Equal(looped, input) {
		return errRoundTrip
	}

	summary, err := report.Summarize(input)
	if err != nil {
		return err
	}
	if err := report.WriteFrequencies(os.Stdout, summary.Entries); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n%d bytes -> %d code bits, %d bytes packed, %d bytes stored\n",
		summary.InputBytes, summary.EncodedBits, summary.BlockBytes, summary.ContainerBytes)
	return report.WriteRatio(os.Stdout, summary.Ratio)
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "standard input"
	}
	return path
}

func subcommandFromArgs(cfg *config.Config, run func(*config.Config) error) (func() error, error) {
	subFlags := flag.NewFlagSet(progName, flag.ContinueOnError)
	subFlags.Usage = func() {}
	subFlags.SetOutput(&nullWriter{})
	cfg.RegisterFileFlags(subFlags)

	argErr := subFlags.Parse(remainingArgs())
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	ourFlags = subFlags
	argI = 0
	if input := optionalArg(); input != "" {
		cfg.InputPath = input
	}
	endOfArgs()

	if cfg.Debug {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	return func() error {
		return run(cfg)
	}, nil
}

func main() {
	startLogging()

	var err error
	var configPath string
	var debugLogging bool
	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})
	ourFlags.StringVar(&configPath, "config", "", "")
	ourFlags.StringVar(&configPath, "c", "", "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	cfg := config.New()
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			exitError(fmt.Errorf("loading %s: %w", configPath, err))
		}
	}
	if debugLogging {
		cfg.Debug = true
	}

	var requestedCommand func() error
	subcommandArg := nextArg("SUBCOMMAND")
	switch subcommandArg {
	default:
		usageErrorf("unrecognized subcommand \"%s\"", subcommandArg)
	case "compress":
		requestedCommand, err = subcommandFromArgs(cfg, compressFile)
	case "decompress":
		requestedCommand, err = subcommandFromArgs(cfg, decompressFile)
	case "stats":
		requestedCommand, err = subcommandFromArgs(cfg, statsFile)
	}

	if err != nil {
		exitError(err)
	}

	err = requestedCommand()
	if err != nil {
		exitError(err)
	}
}
