package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/resolver"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/service"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/entity"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/wizard"
)

type activateRequest struct {
	Path     string            `json:"path"`
	Params   map[string]string `json:"params"`
	Fragment string            `json:"fragment"`
}

type previewRequest struct {
	Role string `json:"role" binding:"required"`
}

type setFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

type updateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type attachmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleActivate resolves a navigation context into a session. A context
// without an invitation is a normal inactive outcome, not an error.
func (s *Server) handleActivate(c *gin.Context) {
	var req activateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, active, err := s.onboarding.Activate(c.Request.Context(), resolver.NavigationContext{
		Path:     req.Path,
		Params:   req.Params,
		Fragment: req.Fragment,
	})
	if err != nil {
		s.logger.Error("Activation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activation failed"})
		return
	}
	if !active {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "session": state})
}

func (s *Server) handlePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := entity.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be customer or vendor"})
		return
	}

	state, err := s.onboarding.ActivatePreview(c.Request.Context(), role)
	if err != nil {
		s.logger.Error("Preview activation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "preview failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": state})
}

// handleActiveInvitation and handleLastSubmission expose the two mirrored
// keys so a reloaded shell can restore its state.
func (s *Server) handleActiveInvitation(c *gin.Context) {
	invitation, ok, err := s.onboarding.ActiveInvitation(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "invitation": invitation})
}

func (s *Server) handleLastSubmission(c *gin.Context) {
	sub, ok, err := s.onboarding.LastSubmission(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"present": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"present": true, "submission": sub})
}

func (s *Server) handleSession(c *gin.Context) {
	state, err := s.onboarding.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (s *Server) handleClose(c *gin.Context) {
	if err := s.onboarding.Close(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.onboarding.SetField(c.Request.Context(), c.Param("id"), req.Name, req.Value)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

// handleAdvance and handleRetreat report gate denial as allowed=false
// with 200, keeping the caller on the current step.
func (s *Server) handleAdvance(c *gin.Context) {
	state, allowed, err := s.onboarding.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": allowed, "session": state})
}

func (s *Server) handleRetreat(c *gin.Context) {
	state, allowed, err := s.onboarding.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": allowed, "session": state})
}

func (s *Server) handleComplete(c *gin.Context) {
	sub, allowed, err := s.onboarding.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusOK, gin.H{"allowed": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": true, "submission": sub})
}

func (s *Server) handleAddItem(c *gin.Context) {
	state, err := s.onboarding.AddLineItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.onboarding.UpdateLineItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), req.Field, req.Value)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (s *Server) handleRemoveItem(c *gin.Context) {
	state, err := s.onboarding.RemoveLineItem(c.Request.Context(), c.Param("id"), c.Param("itemID"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (s *Server) handleAddAttachment(c *gin.Context) {
	var req attachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.onboarding.AddAttachment(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": state})
}

func (s *Server) handleAcknowledgements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"acknowledgements": s.notifications.Acknowledgements()})
}

func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
