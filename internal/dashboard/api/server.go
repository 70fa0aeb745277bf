package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/client"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/engine"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/export"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/monitor"
	"github.com/eXemoumen/datascrapfront/internal/dashboard/store"
)

// Server is the dashboard's own HTTP surface: filtered views, facets,
// stats, CSV export, record edits, and scrape-job control. It reads the
// in-memory store and talks to the backend through the client.
type Server struct {
	Log     *zap.Logger
	Store   *store.Store
	Client  *client.Client
	Monitor *monitor.Monitor
	AppName string
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", s.health)
	r.GET("/announcements", s.listAnnouncements)
	r.GET("/facets", s.facets)
	r.GET("/stats", s.stats)
	r.POST("/refresh", s.refresh)
	r.PUT("/announcements/:id/check", s.toggleCheck)
	r.PUT("/announcements/:id/contact", s.saveContact)
	r.GET("/export", s.exportCSV)
	r.POST("/scrape/start", s.startScrape)
	r.POST("/scrape/stop", s.stopScrape)
	r.GET("/scrape/status", s.scrapeStatus)
	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// Refresh re-fetches records and stats under a generation ticket, so a
// slower, older refresh can never overwrite a newer one. On a failed
// records fetch the snapshot is reset to empty rather than left stale.
func (s *Server) Refresh(ctx context.Context) error {
	gen := s.Store.Begin()

	records, err := s.Client.FetchAnnouncements(ctx)
	if err != nil {
		s.Log.Error("Failed to refresh announcements", zap.Error(err))
		s.Store.Replace(gen, nil)
		return err
	}
	if !s.Store.Replace(gen, records) {
		s.Log.Debug("Discarding stale announcements refresh", zap.Uint64("generation", gen))
		return nil
	}

	stats, err := s.Client.FetchStats(ctx)
	if err != nil {
		s.Log.Warn("Failed to refresh stats", zap.Error(err))
		return nil // records already committed; stats keep their last value
	}
	s.Store.ReplaceStats(gen, stats)

	s.Log.Info("Record store refreshed",
		zap.Int("records", len(records)),
		zap.Uint64("generation", gen),
	)
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   s.AppName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) listAnnouncements(c *gin.Context) {
	var criteria model.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := s.Store.Snapshot()
	view := engine.Filter(snapshot, criteria)
	c.JSON(http.StatusOK, gin.H{
		"data":  view,
		"count": len(view),
		"total": len(snapshot),
	})
}

func (s *Server) facets(c *gin.Context) {
	c.JSON(http.StatusOK, engine.Facets(s.Store.Snapshot()))
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Store.Stats())
}

func (s *Server) refresh(c *gin.Context) {
	if err := s.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": s.Store.Len()})
}

type checkRequest struct {
	Checked int `json:"checked"`
}

// toggleCheck applies the edit locally first, then persists it; when
// the backend write fails the previous value is restored so the view
// never drifts from the backend.
func (s *Server) toggleCheck(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Checked != 0 && req.Checked != 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "checked must be 0 or 1"})
		return
	}

	prev, ok := s.Store.SetChecked(id, req.Checked)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}

	if err := s.Client.SetChecked(c.Request.Context(), id, req.Checked); err != nil {
		s.Store.SetChecked(id, prev)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "checked": req.Checked})
}

func (s *Server) saveContact(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var contact model.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prev, ok := s.Store.SetContact(id, contact)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}

	if err := s.Client.SaveContact(c.Request.Context(), id, contact); err != nil {
		s.Store.SetContact(id, prev)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// exportCSV serializes the currently filtered view, so the download
// honors whatever filters are active at export time.
func (s *Server) exportCSV(c *gin.Context) {
	var criteria model.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := engine.Filter(s.Store.Snapshot(), criteria)
	payload := export.CSV(view)
	filename := export.Filename(s.AppName, time.Now())

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(payload))
}

func (s *Server) startScrape(c *gin.Context) {
	if err := s.Monitor.Start(c.Request.Context()); err != nil {
		if errors.Is(err, monitor.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"running": true})
}

func (s *Server) stopScrape(c *gin.Context) {
	stopped := s.Monitor.Stop()
	c.JSON(http.StatusOK, gin.H{"stopped": stopped, "running": s.Monitor.Running()})
}

func (s *Server) scrapeStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"running": s.Monitor.Running()})
}
