// ABOUTME: HTTP JSON API for the deal evaluation pipeline
// ABOUTME: Routes deals, LPs, votes and introductions onto the pipeline service with gin
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/fundops/logger"
	"github.com/harperreed/fundops/pipeline"
)

type Server struct {
	Engine *gin.Engine
	svc    *pipeline.Service
	log    *logger.Logger
}

func NewServer(svc *pipeline.Service, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{svc: svc, log: log}
	s.Engine = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.log))

	r.GET("/healthcheck", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api")
	{
		api.POST("/deals", s.createDeal)
		api.GET("/deals", s.listDeals)
		api.GET("/deals/:id", s.getDeal)
		api.PATCH("/deals/:id", s.updateDeal)
		api.DELETE("/deals/:id", s.deleteDeal)
		api.POST("/deals/:id/founders", s.addFounder)
		api.GET("/deals/:id/votes", s.listVotes)
		api.PUT("/deals/:id/votes/:lp_id", s.submitVote)

		api.DELETE("/votes/:id", s.deleteVote)

		api.POST("/lps", s.addLP)
		api.GET("/lps", s.listLPs)
		api.DELETE("/lps/:id", s.deleteLP)

		api.GET("/introductions", s.listIntroductions)
		api.POST("/introductions/manual", s.createManualIntroduction)
		api.POST("/introductions/:vote_id/send", s.sendIntroduction)
		api.POST("/introductions/:vote_id/decline", s.declineIntroduction)

		api.GET("/pipeline", s.pipelineSummary)
	}

	return r
}

func (s *Server) Run(address string) error {
	s.log.Info("starting web server", "addr", address)
	return s.Engine.Run(address)
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
