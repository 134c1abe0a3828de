package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slethware/atlas/internal/config"
	countrydomain "github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/summary"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type Params struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	CountrySvc countrydomain.Service
	Summary    summary.Generator
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	countrySvc countrydomain.Service
	summary    summary.Generator
}

func NewServer(p Params) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		countrySvc: p.CountrySvc,
		summary:    p.Summary,
	}
}

func (s *Server) RegisterRoutes() {
	r := s.engine

	r.POST("/countries/refresh", s.RefreshCountries)
	r.GET("/countries", s.ListCountries)
	r.GET("/countries/image", s.SummaryImage)
	r.GET("/countries/:name", s.GetCountryByName)
	r.DELETE("/countries/:name", s.DeleteCountry)
	r.GET("/status", s.GetStatus)
}

func Run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(Run),
)
