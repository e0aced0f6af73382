// ABOUTME: JSON handlers for login, locations, simulation, and assessments
// ABOUTME: Each handler is a direct store call; publish failures are only logged

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harper/aquaguard/internal/auth"
	"github.com/harper/aquaguard/internal/events"
	"github.com/harper/aquaguard/internal/models"
	"github.com/harper/aquaguard/internal/storage"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createLocationRequest struct {
	Name string `json:"name"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(op+" failed", "error", err, "request_id", c.GetString(requestIDKey))
	fail(c, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.internalError(c, "login lookup", err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    gin.H{"username": user.Username},
	})
}

func (s *Server) handleListLocations(c *gin.Context) {
	locations, err := s.store.ListLocations(c.Request.Context())
	if err != nil {
		s.internalError(c, "list locations", err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (s *Server) handleCreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	loc := models.NewLocation(req.Name)
	if err := s.store.CreateLocation(c.Request.Context(), loc); err != nil {
		s.internalError(c, "create location", err)
		return
	}
	s.metrics.LocationsCreated.Inc()
	s.publish(c.Request.Context(), events.TypeCreated, loc)

	c.JSON(http.StatusOK, loc)
}

func (s *Server) handleSimulate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid location id")
		return
	}

	// Values are taken as sent; the client picks a consistent preset.
	var state models.SensorState
	if err := c.ShouldBindJSON(&state); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	updated, err := s.store.UpdateSensorState(ctx, id, state)
	if err != nil {
		s.internalError(c, "simulate location", err)
		return
	}

	if !updated {
		s.logger.Debug("simulate for unknown location", "location_id", id)
	} else {
		s.metrics.LocationsSimulated.WithLabelValues(string(state.Status)).Inc()
		loc, err := s.store.GetLocation(ctx, id)
		if err != nil {
			s.logger.Warn("reload simulated location", "location_id", id, "error", err)
		} else {
			s.publish(ctx, events.TypeSimulated, loc)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAssess(c *gin.Context) {
	var reading models.SensorReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": s.assessor.Assess(c.Request.Context(), reading)})
}

func (s *Server) publish(ctx context.Context, typ events.Type, loc *models.Location) {
	event := events.LocationEvent{Type: typ, Location: *loc, OccurredAt: s.clock.Now().UTC()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish location event", "type", typ, "location_id", loc.ID, "error", err)
	}
}
