// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

// Package config holds the settings injected into the command-line tool and the HTTP service.  Settings come
// from an optional JSON file and are then overridden by command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoListenAddress   = errors.New("config: listen address must be specified")
	ErrBadMaxRequestSize = errors.New("config: max request bytes must be positive")
	ErrOutputIsInput     = errors.New("config: output path is the input path")
)

// Mode selects the direction of a file operation.
type Mode int

const (
	CompressMode Mode = iota
	DecompressMode
)

const (
	compressedExt      = ".bin"
	decompressedSuffix = "_decompressed.txt"
	collisionExt       = ".huf"

	defaultListenAddress   = "127.0.0.1:8080"
	defaultMaxRequestBytes = 32 << 20
)

type Config struct {
	InputPath         string `json:"input_path,omitempty"`
	OutputPath        string `json:"output_path,omitempty"`
	ReportFrequencies bool   `json:"report_frequencies"`
	Debug             bool   `json:"debug"`
	ListenAddress     string `json:"listen_address"`
	MaxRequestBytes   int64  `json:"max_request_bytes"`
}

// New returns a Config with every default applied.
func New() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

func (c *Config) SetDefaults() {
	c.InputPath = ""
	c.OutputPath = ""
	c.ReportFrequencies = false
	c.Debug = false
	c.ListenAddress = defaultListenAddress
	c.MaxRequestBytes = defaultMaxRequestBytes
}

// LoadFile overlays the JSON file at path onto c.  A missing file leaves c unchanged.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	return dec.Decode(c)
}

// SaveFile writes c to path as indented JSON.
func (c Config) SaveFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

// RegisterFileFlags binds the options of the file subcommands to flags, using the current values of c as
// defaults.  Both long and short names are registered.
func (c *Config) RegisterFileFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.OutputPath, "output", c.OutputPath, "")
	flags.StringVar(&c.OutputPath, "o", c.OutputPath, "")
	flags.BoolVar(&c.ReportFrequencies, "print", c.ReportFrequencies, "")
	flags.BoolVar(&c.ReportFrequencies, "p", c.ReportFrequencies, "")
	c.registerDebugFlags(flags)
}

// RegisterServerFlags binds the HTTP service options to flags.
func (c *Config) RegisterServerFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.ListenAddress, "listen", c.ListenAddress, "")
	flags.StringVar(&c.ListenAddress, "l", c.ListenAddress, "")
	flags.Int64Var(&c.MaxRequestBytes, "max-request-bytes", c.MaxRequestBytes, "")
	c.registerDebugFlags(flags)
}

func (c *Config) registerDebugFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.Debug, "debug", c.Debug, "")
	flags.BoolVar(&c.Debug, "d", c.Debug, "")
}

// Output returns the configured output path, or the default derived from the input path.  An empty result
// means standard output.  An output that would overwrite the input is refused.
func (c Config) Output(mode Mode) (string, error) {
	if c.OutputPath == "" {
		return DefaultOutputPath(mode, c.InputPath), nil
	}
	if c.InputPath != "" && c.OutputPath != "-" && samePath(c.OutputPath, c.InputPath) {
		return "", ErrOutputIsInput
	}
	return c.OutputPath, nil
}

// DefaultOutputPath derives an output path from an input path: "notes.txt" compresses to "notes.bin", and
// "notes.bin" decompresses to "notes_decompressed.txt".  When the derived path would be the input itself, as
// when compressing "notes.bin", ".huf" is appended to the input instead.  An empty input path gives an empty
// output path.
func DefaultOutputPath(mode Mode, inputPath string) string {
	if inputPath == "" || inputPath == "-" {
		return ""
	}

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	var out string
	switch mode {
	case DecompressMode:
		out = base + decompressedSuffix
	default:
		out = base + compressedExt
	}
	if samePath(out, inputPath) {
		out = inputPath + collisionExt
	}
	return out
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// ValidateServer checks the settings the HTTP service depends on.
func (c Config) ValidateServer() error {
	if c.ListenAddress == "" {
		return ErrNoListenAddress
	}
	if c.MaxRequestBytes <= 0 {
		return ErrBadMaxRequestSize
	}
	return nil
}
