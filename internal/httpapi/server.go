// Package httpapi exposes the matcher over HTTP: an ad-hoc two-name
// conflation check, a health probe, and decision-cache stats, grounded in
// the controller/route split of the address-parsing service this was
// adapted from.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/cache"
	"github.com/roadlink/conflate/internal/linker"
	"github.com/roadlink/conflate/internal/nameset"
	"github.com/roadlink/conflate/internal/store/searchindex"
	"github.com/roadlink/conflate/internal/types"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	ctx    *types.Context
	cache  cache.Cache
	search *searchindex.Index
	logger *zap.Logger
}

// NewServer builds a Server. decisionCache and search may both be nil, in
// which case /v1/stats reports all-zero values and /v1/search is omitted.
func NewServer(ctx *types.Context, decisionCache cache.Cache, search *searchindex.Index, logger *zap.Logger) *Server {
	return &Server{ctx: ctx, cache: decisionCache, search: search, logger: logger}
}

// Router builds the gin.Engine wiring every route this server handles.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	router.GET("/healthz", s.health)

	v1 := router.Group("/v1")
	{
		v1.POST("/conflate", s.conflate)
		v1.GET("/stats", s.stats)
		if s.search != nil {
			v1.GET("/search", s.searchMasterRoads)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "NOT_FOUND", Message: "no such route"})
	})

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

func (s *Server) conflate(c *gin.Context) {
	var req ConflateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	masterName := types.New(req.Master.Name, 0, types.SourceAddress, s.ctx)
	newName := types.New(req.New.Name, 0, types.SourceAddress, s.ctx)

	master := linker.Candidate{
		ID:    req.Master.ID,
		Names: nameset.New([]types.Name{masterName}, types.SourceAddress, s.ctx),
	}
	primary := linker.Candidate{
		ID:    req.New.ID,
		Names: nameset.New([]types.Name{newName}, types.SourceAddress, s.ctx),
	}

	result, matched := linker.Link(primary, []linker.Candidate{master}, req.Strict)

	resp := ConflateResponse{Matched: matched}
	if matched {
		resp.MasterID = result.ID
		resp.Score = result.Score
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) searchMasterRoads(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_REQUEST", Message: "q is required"})
		return
	}

	ids, err := s.search.Search(c.Request.Context(), q, 20)
	if err != nil {
		s.logger.Warn("httpapi: search failed", zap.Error(err), zap.String("q", q))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "SEARCH_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{FeatureIDs: ids})
}

func (s *Server) stats(c *gin.Context) {
	if s.cache == nil {
		c.JSON(http.StatusOK, StatsResponse{})
		return
	}

	stats, err := s.cache.Stats(c.Request.Context())
	if err != nil {
		s.logger.Warn("httpapi: cache stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "STATS_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		CacheHitRate: stats.HitRate,
		TotalHits:    stats.TotalHits,
		TotalMiss:    stats.TotalMiss,
		TotalItems:   stats.TotalItems,
	})
}
