// Package webui serves the read-only dashboard over the original and
// cleaned CSVs: a side-by-side comparison page and an aggregate stats
// page, plus JSON endpoints for both.
//
// Routes:
//
//	GET /            → HTML comparison view
//	GET /stats       → HTML statistics view
//	GET /api/compare → Comparison as JSON
//	GET /api/stats   → Stats as JSON
package webui

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"salesetl/internal/report"
)

// Config controls server startup and which files the views read.
type Config struct {
	Addr         string
	OriginalPath string
	CleanedPath  string
	// RowLimit bounds the comparison rows rendered; 0 shows all.
	RowLimit int
	// TopN bounds the product list on the stats page.
	TopN int
}

// Server wraps the gin engine. Files are re-read per request so the
// dashboard picks up a fresh pipeline run without a restart.
type Server struct {
	cfg    Config
	engine *gin.Engine
	log    zerolog.Logger
}

// NewServer builds the router and parses the embedded templates.
func NewServer(cfg Config, log zerolog.Logger) *Server {
	if cfg.RowLimit == 0 {
		cfg.RowLimit = 108
	}
	if cfg.TopN == 0 {
		cfg.TopN = 10
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.SetHTMLTemplate(template.Must(template.New("").Parse(pagesHTML)))

	s := &Server{cfg: cfg, engine: engine, log: log}
	engine.GET("/", s.comparePage)
	engine.GET("/stats", s.statsPage)
	engine.GET("/api/compare", s.compareAPI)
	engine.GET("/api/stats", s.statsAPI)
	return s
}

// Handler exposes the router as an http.Handler; tests serve it
// directly without binding a port.
func (s *Server) Handler() http.Handler { return s.engine }

// Run starts the HTTP server; it blocks.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.cfg.Addr).Msg("dashboard listening")
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) comparison() (report.Comparison, error) {
	original, err := report.ReadCSVFile(s.cfg.OriginalPath)
	if err != nil {
		return report.Comparison{}, err
	}
	cleaned, err := report.ReadCSVFile(s.cfg.CleanedPath)
	if err != nil {
		return report.Comparison{}, err
	}
	return report.Compare(original, cleaned, s.cfg.RowLimit), nil
}

func (s *Server) comparePage(c *gin.Context) {
	cmp, err := s.comparison()
	if err != nil {
		c.String(http.StatusInternalServerError, "comparison failed: %v", err)
		return
	}
	c.HTML(http.StatusOK, "compare", cmp)
}

func (s *Server) compareAPI(c *gin.Context) {
	cmp, err := s.comparison()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (s *Server) stats() (report.Stats, error) {
	cleaned, err := report.ReadCSVFile(s.cfg.CleanedPath)
	if err != nil {
		return report.Stats{}, err
	}
	return report.Aggregate(cleaned, s.cfg.TopN), nil
}

func (s *Server) statsPage(c *gin.Context) {
	st, err := s.stats()
	if err != nil {
		c.String(http.StatusInternalServerError, "stats failed: %v", err)
		return
	}
	c.HTML(http.StatusOK, "stats", st)
}

func (s *Server) statsAPI(c *gin.Context) {
	st, err := s.stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
