package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwell-nlp/inkwell/internal/logging"
	"github.com/inkwell-nlp/inkwell/internal/monitoring"
	"github.com/inkwell-nlp/inkwell/internal/pipeline"
	"github.com/inkwell-nlp/inkwell/internal/store"
)

// voiceModule is the module name audio uploads are routed to.
const voiceModule = "voice"

type handlers struct {
	pipe    *pipeline.Pipeline
	docs    *store.Store
	metrics *monitoring.Metrics
	log     *logging.Logger
}

func newHandlers(pipe *pipeline.Pipeline, docs *store.Store, metrics *monitoring.Metrics, log *logging.Logger) *handlers {
	return &handlers{pipe: pipe, docs: docs, metrics: metrics, log: log}
}

// Root serves the service banner.
func (h *handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "inkwell",
		"version": "1.0.0",
	})
}

// Health reports pipeline readiness and the registered modules.
func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"initialized": h.pipe.Initialized(),
		"modules":     h.pipe.Names(),
	})
}

type processRequest struct {
	Text     string   `json:"text"`
	Language string   `json:"language"`
	Modules  []string `json:"modules"`
}

// ProcessText runs the input text through the pipeline. When the request
// names specific modules, each is run individually and per-module errors
// are inlined; otherwise every capable module runs.
func (h *handlers) ProcessText(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	opts := pipeline.Options{}
	if req.Language != "" {
		opts["language"] = req.Language
	}

	if len(req.Modules) > 0 {
		results := make(map[string]pipeline.Result, len(req.Modules))
		for _, name := range req.Modules {
			result, err := h.pipe.RunModule(c.Request.Context(), name, req.Text, opts)
			if err != nil {
				results[name] = pipeline.Result{"error": err.Error()}
				continue
			}
			results[name] = result
		}
		c.JSON(http.StatusOK, results)
		return
	}

	results, err := h.pipe.RunAll(c.Request.Context(), req.Text, opts)
	if err != nil {
		h.log.Error("processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// ListModules returns the registered module names.
func (h *handlers) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modules": h.pipe.Names()})
}

// UploadAudio accepts an audio file and transcribes it with the voice
// module. The file is staged in a temporary location the voice module
// reads from, then removed.
func (h *handlers) UploadAudio(c *gin.Context) {
	if !contains(h.pipe.Names(), voiceModule) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "voice module not available"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	tempPath := filepath.Join(os.TempDir(), "inkwell-audio-"+uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		h.log.Error("saving upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
		return
	}
	defer os.Remove(tempPath)

	opts := pipeline.Options{}
	if language := c.PostForm("language"); language != "" {
		opts["language"] = language
	}

	result, err := h.pipe.RunModule(c.Request.Context(), voiceModule, tempPath, opts)
	if err != nil {
		h.log.Error("transcription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type saveRequest struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// SaveDocument persists text under the given filename.
func (h *handlers) SaveDocument(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Filename == "" || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and filename are required"})
		return
	}

	path, err := h.docs.Save(req.Filename, req.Text)
	if err != nil {
		if errors.Is(err, store.ErrBadName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("saving document failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.metrics != nil {
		h.metrics.DocumentsSaved.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": path})
}

// ListDocuments lists saved document names.
func (h *handlers) ListDocuments(c *gin.Context) {
	files, err := h.docs.List()
	if err != nil {
		h.log.Error("listing documents failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// LoadDocument returns a saved document's text.
func (h *handlers) LoadDocument(c *gin.Context) {
	text, err := h.docs.Load(c.Param("filename"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		case errors.Is(err, store.ErrBadName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error("loading document failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
