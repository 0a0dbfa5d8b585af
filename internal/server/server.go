// Package server exposes the pricing platform over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/antarlabs/antar/internal/config"
	"github.com/antarlabs/antar/internal/pricing/engine"
	ruledomain "github.com/antarlabs/antar/internal/pricingrule/domain"
	quotedomain "github.com/antarlabs/antar/internal/quote/domain"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(Start),
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Engine   *engine.Engine
	QuoteSvc quotedomain.Service
	RuleSvc  ruledomain.Service
	Registry *prometheus.Registry
}

type Server struct {
	log      *zap.Logger
	cfg      config.Config
	engine   *engine.Engine
	quoteSvc quotedomain.Service
	ruleSvc  ruledomain.Service
	metrics  *metrics
}

func NewServer(p Params) *Server {
	return &Server{
		log:      p.Log.Named("server"),
		cfg:      p.Cfg,
		engine:   p.Engine,
		quoteSvc: p.QuoteSvc,
		ruleSvc:  p.RuleSvc,
		metrics:  newMetrics(p.Registry),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.metrics.middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", s.metrics.handler())

	v1 := router.Group("/v1")
	{
		v1.POST("/quotes", s.CreateQuote)
		v1.GET("/quotes", s.ListQuotes)
		v1.GET("/quotes/:id", s.GetQuoteByID)

		v1.GET("/cities", s.ListCities)
		v1.GET("/cities/:name", s.GetCityProfile)

		v1.POST("/pricing_rules", s.CreatePricingRule)
		v1.GET("/pricing_rules", s.ListPricingRules)
		v1.GET("/pricing_rules/:id", s.GetPricingRuleByID)
	}
	return router
}

func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTP.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
