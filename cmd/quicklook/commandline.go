package main

import (
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

type commandLineOptions struct {
	Orbit int    `short:"o" long:"orbit" description:"orbit number to render"`
	Data  string `short:"d" long:"data" default:"data" description:"directory holding the HEPD and MEPD files"`
	Out   string `short:"w" long:"out" default:"plots" description:"output directory"`

	Format string `short:"f" long:"format" default:"png" choice:"png" choice:"svg" description:"output format"`
	Pole   string `short:"p" long:"pole" default:"south" choice:"north" choice:"south" description:"orthographic panel centre"`

	MEPDLayout string `short:"l" long:"layout" description:"TOML record layout for MEPD"`
	HEPDLayout string `long:"hepd-layout" description:"TOML record layout for HEPD"`

	MetricsTextfile string `long:"metrics-textfile" description:"write run metrics to this Prometheus textfile"`
	List            bool   `long:"list" description:"list recognized files in the data directory and exit"`
}

func readCommandLineOptions(logger *slog.Logger) commandLineOptions {
	opts := commandLineOptions{Orbit: -1}
	_, err := flags.Parse(&opts)

	switch errt := err.(type) {
	case *flags.Error:
		if errt.Type == flags.ErrHelp {
			os.Exit(0)
		}
	}

	if err != nil {
		logger.Error("could not parse command line arguments", "error", err)
		os.Exit(exitConfiguration)
	}

	return opts
}
