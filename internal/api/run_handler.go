package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hypotest/adapters/memory"
	"hypotest/adapters/report"
	"hypotest/app"
	"hypotest/domain/core"
	"hypotest/domain/stattest"
	"hypotest/internal"
	"hypotest/internal/errors"
	"hypotest/ports"

	"github.com/gin-gonic/gin"
)

// RunRequest is the body of POST /api/v1/runs. Rows hold numbers, strings
// or null for missing values, in the order of Columns.
type RunRequest struct {
	Job     stattest.Job    `json:"job"`
	Columns []string        `json:"columns" binding:"required"`
	Rows    [][]interface{} `json:"rows"`
}

// RunHandler handles test run requests
type RunHandler struct {
	service  *app.StatTestService
	repo     ports.RunRepository
	renderer *report.Renderer
	timeout  time.Duration
	logger   *internal.Logger
}

// NewRunHandler creates a new run handler. Runs are read back from repo,
// which should also be the sink of service.
func NewRunHandler(service *app.StatTestService, repo ports.RunRepository, timeout time.Duration, logger *internal.Logger) *RunHandler {
	return &RunHandler{
		service:  service,
		repo:     repo,
		renderer: report.NewRenderer(),
		timeout:  timeout,
		logger:   logger.WithComponent("RunHandler"),
	}
}

// Register mounts the run routes on r
func (h *RunHandler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/runs", h.CreateRun)
	v1.GET("/runs", h.ListRuns)
	v1.GET("/runs/:id", h.GetRun)
	v1.GET("/runs/:id/report", h.GetReport)
}

// CreateRun executes a job over the inline rows of the request
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}

	cols := make([][]interface{}, len(req.Columns))
	for i := range cols {
		cols[i] = make([]interface{}, len(req.Rows))
	}
	for r, row := range req.Rows {
		if len(row) != len(req.Columns) {
			h.fail(c, errors.InvalidInput("row "+strconv.Itoa(r+1)+" has "+strconv.Itoa(len(row))+
				" values, expected "+strconv.Itoa(len(req.Columns))))
			return
		}
		for i, v := range row {
			cols[i][r] = v
		}
	}
	src, err := memory.NewColumnSource(req.Columns, cols)
	if err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	run, err := h.service.Run(ctx, req.Job, src)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

// ListRuns returns recent runs; ?limit=N caps the count (default 20)
func (h *RunHandler) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.fail(c, errors.InvalidInput("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	runs, err := h.repo.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, errors.WithCode(errors.CodeDatabaseError, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun returns a stored run with its result tables
func (h *RunHandler) GetRun(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetReport renders a stored run; ?format=markdown selects Markdown, HTML otherwise
func (h *RunHandler) GetReport(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(h.renderer.Markdown(run)))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.renderer.HTML(run))
}

func (h *RunHandler) lookup(c *gin.Context) (*stattest.Run, bool) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, err))
		return nil, false
	}
	run, err := h.repo.GetRun(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return run, true
}

func (h *RunHandler) fail(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.logger.Debug("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
