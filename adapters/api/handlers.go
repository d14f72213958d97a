package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"abdesign/adapters/report"
	"abdesign/adapters/stats/design"
	"abdesign/app"
	"abdesign/domain/core"
	"abdesign/internal/config"
)

// Handler exposes the design engine over HTTP. The engine itself stays
// transport-free; this layer only decodes requests, applies configured
// defaults, and encodes numeric results.
type Handler struct {
	service *app.DesignService
	sim     config.SimulationConfig
}

// NewHandler creates an API handler
func NewHandler(service *app.DesignService, sim config.SimulationConfig) *Handler {
	return &Handler{service: service, sim: sim}
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AnalyzeDesign runs the full simulation pipeline for a design
func (h *Handler) AnalyzeDesign(c *gin.Context) {
	var req app.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.applyDefaults(&req)

	reportOut, err := h.service.AnalyzeDesign(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportOut)
}

// RequiredSamples runs the closed-form sample size calculation
func (h *Handler) RequiredSamples(c *gin.Context) {
	var req design.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.RequiredSamples(req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PowerSweep evaluates the power curve across trial counts
func (h *Handler) PowerSweep(c *gin.Context) {
	var req app.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SimCount == 0 {
		req.SimCount = h.sim.DefaultSimCount
	}
	if req.Seed == 0 {
		req.Seed = h.sim.DefaultSeed
	}

	points, err := h.service.PowerSweep(c.Request.Context(), req, h.sim.SweepWorkers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// ReportHTML runs an analysis and renders the report as HTML
func (h *Handler) ReportHTML(c *gin.Context) {
	var req app.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.applyDefaults(&req)

	reportOut, err := h.service.AnalyzeDesign(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(reportOut, nil))
}

// ReportWorkbook runs an analysis and streams the report as an xlsx workbook
func (h *Handler) ReportWorkbook(c *gin.Context) {
	var req app.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.applyDefaults(&req)

	reportOut, err := h.service.AnalyzeDesign(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="design-report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := report.WriteWorkbook(c.Writer, reportOut, nil); err != nil {
		// Headers are already out; all we can do is abort the stream.
		c.Abort()
	}
}

func (h *Handler) applyDefaults(req *app.AnalysisRequest) {
	if req.SimCount == 0 {
		req.SimCount = h.sim.DefaultSimCount
	}
	if req.Seed == 0 {
		req.Seed = h.sim.DefaultSeed
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case core.IsInvalidParameter(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case core.IsNumericDegeneracy(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
	}
}
