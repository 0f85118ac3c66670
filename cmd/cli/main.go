package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Bashame05/final-timetable/internal/csvio"
	"github.com/Bashame05/final-timetable/pkg/solver"
	"github.com/Bashame05/final-timetable/pkg/timetable"
)

func main() {
	// Define arguments
	filePtr := flag.String("file", "", "Path to a JSON input file with week_config, rooms, subjects and optional batches")
	roomsPtr := flag.String("rooms", "", "Path to a rooms CSV file (alternative to -file, requires -subjects)")
	subjectsPtr := flag.String("subjects", "", "Path to a subjects CSV file (alternative to -file, requires -rooms)")
	outPtr := flag.String("out", "", "Path to the file where the JSON result will be written; if empty, a readable timetable is printed to the standard output")
	timeLimitPtr := flag.Duration("time-limit", 180*time.Second, "Wall-clock budget for the solver")
	workersPtr := flag.Int("workers", 4, "Number of solver worker threads")
	seedPtr := flag.Int("seed", 0, "Solver random seed; 0 keeps the solver default")
	objectivePtr := flag.Bool("objective", true, "Prefer front-loaded schedules among feasible ones")
	syncPtr := flag.Bool("sync-batches", true, "Require practicals to run simultaneously for all batches")
	flag.Parse()

	// Validate arguments
	if *filePtr == "" && (*roomsPtr == "" || *subjectsPtr == "") {
		log.Fatal("an input must be specified: either -file, or both -rooms and -subjects")
	} else if *filePtr != "" && (*roomsPtr != "" || *subjectsPtr != "") {
		log.Fatal("-file cannot be combined with -rooms/-subjects")
	}

	// Extract input
	var request timetable.Request
	if *filePtr != "" {
		var err error
		request, err = timetable.RequestFromJSON(*filePtr)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
	} else {
		rooms, err := csvio.LoadRooms(*roomsPtr)
		if err != nil {
			log.Fatalf("cannot load rooms: %v", err)
		}
		subjects, err := csvio.LoadSubjects(*subjectsPtr)
		if err != nil {
			log.Fatalf("cannot load subjects: %v", err)
		}
		request = timetable.Request{
			WeekConfig: timetable.WeekConfig{
				StartTime:   "09:00",
				EndTime:     "16:00",
				LunchStart:  "13:00",
				LunchEnd:    "14:00",
				WorkingDays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
			},
			Rooms:    rooms,
			Subjects: subjects,
		}
	}

	// Initialize engines
	cfg := timetable.DefaultConfig()
	cfg.TimeLimit = *timeLimitPtr
	cfg.Workers = *workersPtr
	cfg.Seed = *seedPtr
	cfg.Objective = *objectivePtr
	cfg.SyncBatches = *syncPtr
	scheduler := timetable.NewScheduler(solver.NewCpSatSolver(), cfg)

	// Build timetable
	result := scheduler.Generate(request)
	if result.Status != timetable.StatusSuccess {
		fmt.Fprintf(os.Stderr, "generation failed: %s\n", result.Reason)
		os.Exit(20)
	}

	// Verify timetable correctness
	if !scheduler.Verify(result.Timetable, request) {
		fmt.Fprintln(os.Stderr, "generated timetable failed verification")
		os.Exit(15)
	}

	if *outPtr != "" {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("cannot encode result: %v", err)
		}
		if err := os.WriteFile(*outPtr, encoded, 0644); err != nil {
			log.Fatalf("cannot write output file: %v", err)
		}
		return
	}

	printTimetable(result)
}

func printTimetable(result timetable.Result) {
	currentDay := ""
	for _, lecture := range result.Timetable {
		if lecture.Day != currentDay {
			currentDay = lecture.Day
			fmt.Printf("\n%s\n", currentDay)
		}
		fmt.Printf("  %s-%s  %-24s %-10s %s (%s)\n",
			lecture.StartTime, lecture.EndTime, lecture.Subject, lecture.Batch, lecture.Room, lecture.Type)
	}
	fmt.Printf("\n%d lectures, %d subjects, %d batches\n",
		result.Stats.TotalSlots, result.Stats.SubjectsScheduled, result.Stats.BatchesScheduled)
}
