package main

import (
	"flag"
	"time"

	log "github.com/golang/glog"

	"github.com/Bashame05/final-timetable/internal/catalog"
	"github.com/Bashame05/final-timetable/internal/httpserver"
	"github.com/Bashame05/final-timetable/pkg/solver"
	"github.com/Bashame05/final-timetable/pkg/timetable"
)

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	timeLimit := flag.Duration("time-limit", 60*time.Second, "Wall-clock budget per generation request")
	workers := flag.Int("workers", 4, "Number of solver worker threads")
	flag.Parse()
	defer log.Flush()

	cfg := timetable.DefaultConfig()
	cfg.TimeLimit = *timeLimit
	cfg.Workers = *workers

	store := catalog.NewStore()
	scheduler := timetable.NewScheduler(solver.NewCpSatSolver(), cfg)
	server := httpserver.New(store, scheduler)

	log.Infof("listening on %s", *addr)
	if err := server.Router().Run(*addr); err != nil {
		log.Exitf("server stopped: %v", err)
	}
}
