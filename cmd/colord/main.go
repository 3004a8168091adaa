package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/matkrin/colord/internal/lsp"
	"github.com/matkrin/colord/internal/server"
)

const (
	name    = "colord"
	version = "0.1.0"
)

func main() {
	logLevel := pflag.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := pflag.String("log-file", "", "log file path (default: stderr)")
	configPath := pflag.String("config", "", "path to a YAML config file")
	maxDocSize := pflag.Int("max-document-size", 0, "skip scanning documents larger than this many bytes")
	showVersion := pflag.BoolP("version", "V", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", name, version)
		return
	}

	initLogging(*logLevel, *logFile)
	slog.Info("Logging initialized", "level", *logLevel)

	config := server.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = server.LoadConfig(*configPath)
		if err != nil {
			slog.Error("Could not load config, using defaults", "path", *configPath, "err", err)
		}
	}
	if *maxDocSize > 0 {
		config.MaxDocumentSize = *maxDocSize
	}

	state := server.NewState(config)
	writer := os.Stdout
	server := server.NewServer(name, version, state, writer)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Split(lsp.Split)

	for scanner.Scan() {
		msg := scanner.Bytes()
		method, contents, err := lsp.DecodeMessage(msg)
		if err != nil {
			slog.Error("ERROR decoding message", "err", err)
			continue
		}
		server.HandleMessage(method, contents)
	}

	server.Stop()
}

func initLogging(levelStr string, filename string) {
	level := new(slog.LevelVar)

	var l slog.Level
	switch levelStr {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	level.Set(l)

	// Stdout carries the protocol, so logs go to a file or stderr.
	var out io.Writer = os.Stderr
	if filename != "" {
		logfile, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
		if err != nil {
			panic("No log file")
		}
		out = logfile
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
