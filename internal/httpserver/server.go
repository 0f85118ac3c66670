// Package httpserver exposes timetable generation and the catalog over HTTP.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/golang/glog"

	"github.com/Bashame05/final-timetable/internal/catalog"
	"github.com/Bashame05/final-timetable/pkg/timetable"
)

// Generator is the slice of the scheduler the transport layer needs.
type Generator interface {
	Generate(request timetable.Request) timetable.Result
}

type Server struct {
	store     *catalog.Store
	generator Generator
}

func New(store *catalog.Store, generator Generator) *Server {
	return &Server{store: store, generator: generator}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := router.Group("/api")

	api.POST("/timetable/generate", s.generateTimetable)
	api.GET("/timetable/:id", s.getTimetable)

	api.GET("/rooms", s.listRooms)
	api.POST("/rooms", s.putRooms)
	api.DELETE("/rooms/:name", s.deleteRoom)

	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.putSettings)

	api.GET("/departments", s.listDepartments)
	api.POST("/departments", s.putDepartment)
	api.POST("/departments/:name/generate", s.generateForDepartment)

	api.POST("/reset", s.reset)

	return router
}

func (s *Server) generateTimetable(c *gin.Context) {
	var request timetable.Request
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": "invalid request body: " + err.Error()})
		return
	}

	result := s.generator.Generate(request)
	generated := s.store.SaveGenerated("", result)
	log.Infof("timetable %s generated with status %s", generated.ID, result.Status)

	c.JSON(statusCodeFor(result), gin.H{
		"id":        generated.ID,
		"status":    result.Status,
		"timetable": result.Timetable,
		"stats":     result.Stats,
		"reason":    result.Reason,
	})
}

// generateForDepartment composes the request from catalog contents: the
// stored rooms, the department's subjects and the current week settings.
func (s *Server) generateForDepartment(c *gin.Context) {
	name := c.Param("name")
	department, ok := s.store.Department(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "failed", "reason": "unknown department " + name})
		return
	}

	request := timetable.Request{
		WeekConfig: s.store.WeekConfig(),
		Rooms:      s.store.Rooms(),
		Subjects:   department.Subjects,
	}

	result := s.generator.Generate(request)
	generated := s.store.SaveGenerated(name, result)
	log.Infof("timetable %s generated for department %s with status %s", generated.ID, name, result.Status)

	c.JSON(statusCodeFor(result), gin.H{
		"id":        generated.ID,
		"status":    result.Status,
		"timetable": result.Timetable,
		"stats":     result.Stats,
		"reason":    result.Reason,
	})
}

func statusCodeFor(result timetable.Result) int {
	if result.Status == timetable.StatusSuccess {
		return http.StatusOK
	}
	if result.Failure != nil && result.Failure.Kind == timetable.FailureConfig {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func (s *Server) getTimetable(c *gin.Context) {
	generated, ok := s.store.Generated(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "failed", "reason": "unknown timetable id"})
		return
	}
	c.JSON(http.StatusOK, generated)
}

func (s *Server) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": s.store.Rooms()})
}

type roomsRequest struct {
	Rooms []timetable.Room `json:"rooms" binding:"required"`
}

func (s *Server) putRooms(c *gin.Context) {
	var request roomsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": "invalid request body: " + err.Error()})
		return
	}
	s.store.PutRooms(request.Rooms)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(s.store.Rooms()),
		"rooms":  s.store.Rooms(),
	})
}

func (s *Server) deleteRoom(c *gin.Context) {
	if !s.store.DeleteRoom(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"status": "failed", "reason": "unknown room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.WeekConfig())
}

func (s *Server) putSettings(c *gin.Context) {
	var cfg timetable.WeekConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": "invalid request body: " + err.Error()})
		return
	}
	s.store.SetWeekConfig(cfg)
	c.JSON(http.StatusOK, gin.H{"status": "success", "settings": cfg})
}

func (s *Server) listDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": s.store.Departments()})
}

func (s *Server) putDepartment(c *gin.Context) {
	var department catalog.Department
	if err := c.ShouldBindJSON(&department); err != nil || department.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "failed", "reason": "invalid department body"})
		return
	}
	s.store.PutDepartment(department)
	c.JSON(http.StatusOK, gin.H{"status": "success", "department": department})
}

func (s *Server) reset(c *gin.Context) {
	s.store.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
