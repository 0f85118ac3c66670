// Package catalog is the in-memory store for rooms, departments and week
// settings that feed timetable generation. It replaces ad-hoc module-level
// maps with an explicit store whose lifecycle (seed on startup, reset on
// demand) is owned by the caller.
package catalog

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bashame05/final-timetable/pkg/timetable"
)

// Department groups the subjects taught to one cohort.
type Department struct {
	Name     string              `json:"name"`
	Subjects []timetable.Subject `json:"subjects"`
}

// Generated is a stored timetable generation outcome.
type Generated struct {
	ID         string           `json:"id"`
	Department string           `json:"department,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	Result     timetable.Result `json:"result"`
}

type Store struct {
	mu          sync.RWMutex
	rooms       map[string]timetable.Room
	departments map[string]Department
	settings    timetable.WeekConfig
	generated   map[string]Generated
}

func defaultSettings() timetable.WeekConfig {
	return timetable.WeekConfig{
		StartTime:   "09:00",
		EndTime:     "16:00",
		LunchStart:  "13:00",
		LunchEnd:    "14:00",
		WorkingDays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
	}
}

func defaultRooms() []timetable.Room {
	return []timetable.Room{
		{Name: "Room 101", Type: timetable.RoomClassroom, Capacity: 60},
		{Name: "Room 102", Type: timetable.RoomClassroom, Capacity: 60},
		{Name: "CS Lab 1", Type: timetable.RoomLab, Capacity: 30},
		{Name: "CS Lab 2", Type: timetable.RoomLab, Capacity: 30},
		{Name: "CS Lab 3", Type: timetable.RoomLab, Capacity: 30},
	}
}

// NewStore returns a store seeded with the default rooms and week settings.
func NewStore() *Store {
	store := &Store{}
	store.Reset()
	return store
}

// Reset restores the seeded defaults and drops everything else.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = make(map[string]timetable.Room)
	for _, room := range defaultRooms() {
		s.rooms[room.Name] = room
	}
	s.departments = make(map[string]Department)
	s.settings = defaultSettings()
	s.generated = make(map[string]Generated)
}

// PutRooms creates or updates rooms by name.
func (s *Store) PutRooms(rooms []timetable.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, room := range rooms {
		s.rooms[room.Name] = room
	}
}

// Rooms returns all rooms sorted by name.
func (s *Store) Rooms() []timetable.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]timetable.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms
}

func (s *Store) DeleteRoom(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[name]; !ok {
		return false
	}
	delete(s.rooms, name)
	return true
}

func (s *Store) PutDepartment(department Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[department.Name] = department
}

func (s *Store) Department(name string) (Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	department, ok := s.departments[name]
	return department, ok
}

func (s *Store) Departments() []Department {
	s.mu.RLock()
	defer s.mu.RUnlock()

	departments := make([]Department, 0, len(s.departments))
	for _, department := range s.departments {
		departments = append(departments, department)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	return departments
}

func (s *Store) SetWeekConfig(cfg timetable.WeekConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = cfg
}

func (s *Store) WeekConfig() timetable.WeekConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SaveGenerated stores a generation outcome under a fresh id.
func (s *Store) SaveGenerated(department string, result timetable.Result) Generated {
	generated := Generated{
		ID:         uuid.NewString(),
		Department: department,
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generated[generated.ID] = generated
	return generated
}

func (s *Store) Generated(id string) (Generated, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	generated, ok := s.generated[id]
	return generated, ok
}
