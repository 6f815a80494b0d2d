package bridge

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/baalimago/dlai/internal/app"
	"github.com/baalimago/dlai/internal/config"
	"github.com/baalimago/dlai/internal/dialogue"
	"github.com/baalimago/dlai/internal/models"
	"github.com/baalimago/dlai/internal/tools"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/gin-gonic/gin"
)

type server struct {
	app *app.App
	hub *Hub
}

// NewRouter builds the HTTP handler exposing a. Stream events reach
// listeners through hub, which must be the sink a was wired with.
func NewRouter(a *app.App, hub *Hub) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if misc.Truthy(os.Getenv("DEBUG")) {
		router.Use(gin.Logger())
	}

	s := &server{app: a, hub: hub}
	api := router.Group("/api")
	{
		api.GET("/config", s.getConfig)
		api.PUT("/config", s.putConfig)
		api.PUT("/model", s.selectModel)
		api.GET("/models", s.listModels)
		api.GET("/tools", s.listTools)
		api.POST("/dialogue", s.runDialogue)
		api.POST("/stream", s.runStream)
	}
	router.GET("/events", s.events)
	return router
}

func (s *server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.Configuration())
}

func (s *server) putConfig(c *gin.Context) {
	var next config.Configuration
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse configuration: %v", err)})
		return
	}
	stored, err := s.app.SaveConfiguration(next)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

type selectModelRequest struct {
	ModelID *string `json:"modelId"`
}

func (s *server) selectModel(c *gin.Context) {
	var req selectModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse model selection: %v", err)})
		return
	}
	modelID := ""
	if req.ModelID != nil {
		modelID = *req.ModelID
	}
	stored, err := s.app.SelectModel(modelID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (s *server) listModels(c *gin.Context) {
	found, err := s.app.ListModels(c.Request.Context(), c.Query("provider"))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if found == nil {
		found = []models.Model{}
	}
	c.JSON(http.StatusOK, found)
}

func (s *server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.Tools())
}

type dialogueRequest struct {
	History []models.ChatMessage `json:"history"`
	Input   string               `json:"input"`
}

func (s *server) runDialogue(c *gin.Context) {
	var req dialogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse dialogue request: %v", err)})
		return
	}
	appended, err := s.app.RunDialogue(c.Request.Context(), req.History, req.Input)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if appended == nil {
		appended = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": appended})
}

type streamRequest struct {
	History   []models.ChatMessage `json:"history"`
	Input     string               `json:"input"`
	RequestID string               `json:"requestId"`
}

func (s *server) runStream(c *gin.Context) {
	var req streamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse stream request: %v", err)})
		return
	}
	id, err := s.app.RunStream(req.History, req.Input, req.RequestID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"requestId": id})
}

func (s *server) events(c *gin.Context) {
	if err := s.hub.Attach(c.Writer, c.Request); err != nil && misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintWarn(fmt.Sprintf("failed to attach websocket client: %v\n", err))
	}
}

func (s *server) abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// statusFor maps errors onto HTTP statuses: caller mistakes are 400, a
// provider without configuration is 409, upstream failures are 502 and
// anything else is 500.
func statusFor(err error) int {
	var missingErr *models.ErrMissingProviderConfig
	var unknownToolErr *tools.ErrUnknownTool
	var badStatusErr *models.ErrBadStatus
	var urlErr *url.Error
	switch {
	case errors.Is(err, dialogue.ErrEmptyInput),
		errors.Is(err, dialogue.ErrNoModelSelected),
		errors.Is(err, models.ErrUnsupportedProvider):
		return http.StatusBadRequest
	case errors.As(err, &missingErr):
		return http.StatusConflict
	case errors.As(err, &unknownToolErr),
		errors.As(err, &badStatusErr),
		errors.As(err, &urlErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
