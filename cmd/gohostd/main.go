package main

import (
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"hostfiles/filehost"
	"hostfiles/internal/flagutil"
	"hostfiles/internal/logger"
)

// Reference server: the same route table served through net/http, for
// comparing behavior with filehostd.
type Opts struct {
	Files []string          `short:"f" long:"files" required:"true" description:"Pairs of local path and requested path"`
	Addr  flagutil.HostPort `short:"a" long:"address" default:"127.0.0.1:8080" description:"Listening address"`
}

func main() {
	var opts Opts
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}

	log := logger.Init(logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	cwd, err := os.Getwd()
	if err != nil {
		log.Error("Could not get current working directory", "error", err)
		os.Exit(1)
	}
	routes, err := filehost.NewRouteTable(filehost.SplitTokens(opts.Files), cwd)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}

	log.Info("Using routes", "count", routes.Len())
	log.Info("Using address", "addr", opts.Addr)

	s := &http.Server{
		Addr:    string(opts.Addr),
		Handler: Handler(routes),
	}
	if err := s.ListenAndServe(); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// Handler serves exact matches from routes and 404s everything else.
func Handler(routes *filehost.RouteTable) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		local, ok := routes.Lookup(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, local)
	})
}
