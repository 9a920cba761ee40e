package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/hylauncher/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override launcher config path (optional)")
	baseDir := flag.String("base-dir", "", "installation root (optional, defaults to the executable's directory)")
	logLevel := flag.String("log-level", "", "error log level: debug, info, warn or error (optional)")
	headless := flag.Bool("headless", false, "launch the game immediately without the TUI")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		BaseDir:    *baseDir,
		LogLevel:   *logLevel,
		Headless:   *headless,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "hylauncher: %v\n", err)
		return 1
	}
	return 0
}
