package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"hostfiles/filehost"
	"hostfiles/internal/flagutil"
	"hostfiles/internal/logger"
)

type Opts struct {
	Files      []string          `short:"f" long:"files" value-name:"LOCAL VIRTUAL" description:"Files to host, as pairs of local path and the path clients request, e.g. -f \"./myfile.txt /myfile.txt\""`
	Addresses  []string          `short:"a" long:"addresses" value-name:"HOST:PORT" description:"Addresses to host the files on, e.g. -a \"127.0.0.1:8080 [::1]:8080\""`
	ConfigPath string            `short:"c" long:"config" value-name:"FILE" description:"YAML or TOML file with files and addresses"`
	Timeout    time.Duration     `short:"t" long:"timeout" description:"How long a client may take to send its request (default 100ms)"`
	LogLevel   flagutil.LogLevel `short:"v" long:"verbosity" description:"Log level (debug, info, warn, error)"`
}

// Settings is the merged result of the command line and the config file.
type Settings struct {
	Routes      *filehost.RouteTable
	Addrs       []string
	ReadTimeout time.Duration
	LogLevel    slog.Level
}

// Settings merges the config file, if any, with the command line. Command
// line files come after the config file's, so they win on a duplicate path.
func (o *Opts) Settings(workDir string) (*Settings, error) {
	var cfg filehost.Config
	if o.ConfigPath != "" {
		c, err := filehost.ParseConfigFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = *c
	}

	tokens := append(cfg.Tokens(), filehost.SplitTokens(o.Files)...)
	routes, err := filehost.NewRouteTable(tokens, workDir)
	if err != nil {
		return nil, err
	}
	if routes.Len() == 0 {
		return nil, &filehost.ConfigError{Err: filehost.ErrNoRoutes}
	}

	var addrs []string
	for _, a := range append(cfg.Addresses, filehost.SplitTokens(o.Addresses)...) {
		hp, err := flagutil.ParseHostPort(a)
		if err != nil {
			return nil, &filehost.ConfigError{Token: a, Err: fmt.Errorf("%w: %v", filehost.ErrInvalidAddress, err)}
		}
		if !slices.Contains(addrs, string(hp)) {
			addrs = append(addrs, string(hp))
		}
	}
	if len(addrs) == 0 {
		return nil, &filehost.ConfigError{Err: filehost.ErrNoAddresses}
	}

	s := &Settings{
		Routes:      routes,
		Addrs:       addrs,
		ReadTimeout: filehost.DefaultReadTimeout,
		LogLevel:    logger.ParseLevel(cfg.LogLevel),
	}
	if cfg.ReadTimeout > 0 {
		s.ReadTimeout = cfg.ReadTimeout
	}
	if o.Timeout > 0 {
		s.ReadTimeout = o.Timeout
	}
	if o.LogLevel.IsSet() {
		s.LogLevel = o.LogLevel.Level
	}
	return s, nil
}

func workDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
