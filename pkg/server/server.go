// Package server expose le résultat RFM à la couche de présentation via une
// API HTTP. La table brute est conservée en mémoire ; chaque combinaison
// d'options n'est calculée qu'une fois, via le cache du pipeline.
package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfm-analysis/pkg/export"
	"rfm-analysis/pkg/models"
	"rfm-analysis/pkg/rfm"
)

// Server porte la table brute, la configuration de base et le cache de runs.
type Server struct {
	table models.RawTable
	base  models.Config
	cache *rfm.Cache

	mu   sync.Mutex
	runs map[string]string // clé de cache → identifiant de run
}

// New crée un serveur pour une table brute et une configuration de base.
func New(table models.RawTable, base models.Config) *Server {
	return &Server{
		table: table,
		base:  base,
		cache: rfm.NewCache(),
		runs:  make(map[string]string),
	}
}

// Router construit le moteur gin avec les routes du tableau de bord.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api")
	api.GET("/overview", s.handleOverview)
	api.GET("/segments", s.handleSegments)
	api.GET("/users", s.handleUsers)
	api.GET("/export", s.handleExport)
	return r
}

// configFromQuery surcharge la configuration de base avec les paramètres de
// requête reconnus : remove_outliers, lower, upper, variant.
func (s *Server) configFromQuery(c *gin.Context) (models.Config, error) {
	cfg := s.base
	if v := c.Query("remove_outliers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("remove_outliers: %w", err)
		}
		cfg.RemoveOutliers = b
	}
	if v := c.Query("lower"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("lower: %w", err)
		}
		cfg.LowerPercentile = f
	}
	if v := c.Query("upper"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("upper: %w", err)
		}
		cfg.UpperPercentile = f
	}
	if v := c.Query("variant"); v != "" {
		switch models.Variant(v) {
		case models.VariantMonetary, models.VariantEngagement:
			cfg.Variant = models.Variant(v)
		default:
			return cfg, fmt.Errorf("variant inconnu: %q", v)
		}
	}
	return cfg, nil
}

// result résout la configuration de la requête, passe par le cache et
// attribue un identifiant de run stable par clé. ok=false si la réponse
// d'erreur a déjà été écrite.
func (s *Server) result(c *gin.Context) (*rfm.Result, models.Config, string, bool) {
	cfg, err := s.configFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, cfg, "", false
	}
	res, err := s.cache.GetOrCompute(s.table, cfg)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, cfg, "", false
	}
	key := rfm.Key(s.table, cfg)
	s.mu.Lock()
	runID, ok := s.runs[key]
	if !ok {
		runID = uuid.NewString()
		s.runs[key] = runID
	}
	s.mu.Unlock()
	return res, cfg, runID, true
}

func (s *Server) handleOverview(c *gin.Context) {
	res, cfg, runID, ok := s.result(c)
	if !ok {
		return
	}
	n := len(res.Users)
	var sumR, sumF, sumM float64
	for _, u := range res.Users {
		sumR += float64(u.Recency)
		sumF += float64(u.Frequency)
		sumM += u.Monetary
	}
	avg := func(sum float64) float64 {
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}
	valueMetric := "monetary"
	if cfg.Variant == models.VariantEngagement {
		valueMetric = "engagement"
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":        runID,
		"users":         n,
		"analysis_date": res.AnalysisDate.Format("2006-01-02"),
		"avg_recency":   avg(sumR),
		"avg_frequency": avg(sumF),
		"avg_monetary":  avg(sumM),
		"value_metric":  valueMetric,
		"rows_in":       res.RowsIn,
		"rows_dropped":  res.RowsDropped,
		"rows_filtered": res.RowsFiltered,
	})
}

type segmentView struct {
	Segment    string  `json:"segment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

func (s *Server) handleSegments(c *gin.Context) {
	res, _, runID, ok := s.result(c)
	if !ok {
		return
	}
	summary := rfm.SummarizeSegments(res.Users)
	items := make([]segmentView, 0, len(summary))
	for _, sc := range summary {
		items = append(items, segmentView{
			Segment:    sc.Segment,
			Count:      sc.Count,
			Percentage: sc.Percentage,
			Color:      rfm.SegmentColor(sc.Segment),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":   runID,
		"total":    len(res.Users),
		"segments": items,
	})
}

type userView struct {
	UserID    string  `json:"user_id"`
	Recency   int     `json:"recency"`
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
	RScore    int     `json:"r_score"`
	FScore    int     `json:"f_score"`
	MScore    int     `json:"m_score"`
	RFMTotal  int     `json:"rfm_total"`
	RFMString string  `json:"rfm_string"`
	Segment   string  `json:"segment"`
}

func (s *Server) handleUsers(c *gin.Context) {
	res, _, runID, ok := s.result(c)
	if !ok {
		return
	}
	segment := c.DefaultQuery("segment", "all")
	filtered := export.FilterSegment(res.Users, segment)
	items := make([]userView, 0, len(filtered))
	for _, u := range filtered {
		items = append(items, userView{
			UserID:    u.UserID,
			Recency:   u.Recency,
			Frequency: u.Frequency,
			Monetary:  u.Monetary,
			RScore:    u.RScore,
			FScore:    u.FScore,
			MScore:    u.MScore,
			RFMTotal:  u.RFMTotal,
			RFMString: u.RFMString,
			Segment:   u.Segment,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id":  runID,
		"segment": segment,
		"count":   len(items),
		"users":   items,
	})
}

func (s *Server) handleExport(c *gin.Context) {
	res, _, _, ok := s.result(c)
	if !ok {
		return
	}
	segment := c.DefaultQuery("segment", "all")
	suffix := strings.ToLower(strings.ReplaceAll(segment, " ", "_"))

	var buf bytes.Buffer
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		if err := export.WriteCSV(&buf, res.Users, segment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rfm_export_%s.csv", suffix))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		if err := export.WriteExcel(&buf, res.Users, segment); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=rfm_export_%s.xlsx", suffix))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("format inconnu: %q", format)})
	}
}
