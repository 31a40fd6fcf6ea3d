// Command mazeviz serves the maze search visualizer over a websocket. Every
// browser tab gets its own round: a maze is generated, searched with uniform
// cost then A*, and a summary is shown until the viewer clicks.
package main

import (
	"flag"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/mazesearch/internal/config"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatalln(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	logger := log.StandardLogger()
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	server := NewServer(cfg, logger)
	log.WithFields(log.Fields{
		"addr":      cfg.Addr,
		"cols":      cfg.Cols,
		"rows":      cfg.Rows,
		"generator": cfg.Generator,
	}).Info("serving visualizer")
	log.Fatalln(http.ListenAndServe(cfg.Addr, server))
}
