package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"hostfiles/filehost"
	"hostfiles/internal/logger"
)

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Simple program to host files"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	settings, err := opts.Settings(workDir())
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(settings.LogLevel)
	printSummary(os.Stdout, settings)

	s := &filehost.Server{
		Addrs:       settings.Addrs,
		Routes:      settings.Routes,
		ReadTimeout: settings.ReadTimeout,
		Logger:      log,
	}

	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-waitForEnter(os.Stdin):
	case <-ctx.Done():
	case err := <-done:
		// Every endpoint failed to bind or stopped.
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
	log.Info("Closing server")
}
