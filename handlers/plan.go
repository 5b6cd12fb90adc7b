// Package handlers implements the HTTP endpoints of the plan service.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bszet/subplan"
	"github.com/bszet/subplan/archive"
	"github.com/bszet/subplan/segment"
)

// maxUploadBytes caps incoming documents; plans are a few hundred KB.
const maxUploadBytes = 32 << 20

// PlanHandler serves the parsing and archival endpoints.
type PlanHandler struct {
	pipeline *subplan.Pipeline
	store    *archive.Store
	log      *slog.Logger
}

// NewPlanHandler wires the pipeline and the optional archive store. A
// nil store disables the store-pdf endpoint.
func NewPlanHandler(pipeline *subplan.Pipeline, store *archive.Store, log *slog.Logger) *PlanHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PlanHandler{pipeline: pipeline, store: store, log: log}
}

// readPlan accepts the document either as a multipart "file" field or
// as the raw request body.
func readPlan(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxUploadBytes))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxUploadBytes))
}

// ParsePDF extracts and parses the uploaded plan, responding with the
// events and the failures side by side.
func (h *PlanHandler) ParsePDF(c *gin.Context) {
	doc, err := readPlan(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	result, err := h.pipeline.Parse(doc)
	if err != nil {
		h.log.Error("parsing plan failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Tables responds with the raw extracted tables, one per page, for
// debugging extraction issues without the parsing stage in the way.
func (h *PlanHandler) Tables(c *gin.Context) {
	doc, err := readPlan(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	tables, err := h.pipeline.ExtractTables(doc)
	if err != nil {
		h.log.Error("extracting tables failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	rows := make([][][]string, len(tables))
	for i, table := range tables {
		rows[i] = table.Rows
	}
	c.JSON(http.StatusOK, gin.H{"tables": rows})
}

// StorePDF splits the uploaded plan into days and archives each day
// separately. A plan without any readable date is archived whole so it
// can be reprocessed later.
func (h *PlanHandler) StorePDF(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive not configured"})
		return
	}

	doc, err := readPlan(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	it, err := h.pipeline.SegmentByDay(doc)
	if errors.Is(err, segment.ErrNoDate) {
		h.log.Warn("plan has no readable date, archiving whole document")
		if err := h.store.StoreUnparsed(c.Request.Context(), doc); err != nil {
			h.log.Error("archiving unparsed plan failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "archiving failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "warn", "detail": "no date found, archived unsegmented"})
		return
	}
	if err != nil {
		h.log.Error("segmenting plan failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var days []string
	for {
		day, err := it.Next()
		if err != nil {
			h.log.Error("slicing day failed", "error", err)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if day == nil {
			break
		}
		if err := h.store.StoreDay(c.Request.Context(), day.Date, day.PDF); err != nil {
			h.log.Error("archiving day failed", "date", day.Date, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "archiving failed"})
			return
		}
		days = append(days, day.Date)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "days": days})
}

// Health reports service liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
