// Package csvio loads problem inputs from CSV files for the command line
// front end.
package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/Bashame05/final-timetable/pkg/timetable"
)

type roomRecord struct {
	Name     string `csv:"name"`
	Type     string `csv:"type"`
	Capacity int    `csv:"capacity"`
}

type subjectRecord struct {
	Name         string `csv:"name"`
	Type         string `csv:"type"`
	HoursPerWeek int    `csv:"hours_per_week"`
}

// LoadRooms reads and parses the given csv file for room data.
func LoadRooms(path string) ([]timetable.Room, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open rooms file: %w", err)
	}
	defer file.Close()

	var records []*roomRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse rooms file %s: %w", path, err)
	}

	rooms := make([]timetable.Room, 0, len(records))
	for _, record := range records {
		rooms = append(rooms, timetable.Room{
			Name:     record.Name,
			Type:     timetable.RoomType(record.Type),
			Capacity: record.Capacity,
		})
	}
	return rooms, nil
}

// LoadSubjects reads and parses the given csv file for subject data.
func LoadSubjects(path string) ([]timetable.Subject, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open subjects file: %w", err)
	}
	defer file.Close()

	var records []*subjectRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse subjects file %s: %w", path, err)
	}

	subjects := make([]timetable.Subject, 0, len(records))
	for _, record := range records {
		subjects = append(subjects, timetable.Subject{
			Name:         record.Name,
			Type:         timetable.SubjectType(record.Type),
			HoursPerWeek: record.HoursPerWeek,
		})
	}
	return subjects, nil
}
