package cmd

import (
	"fmt"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/frame-interpolator/internal"
	"github.com/rm-hull/frame-interpolator/internal/api"
	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	log "github.com/sirupsen/logrus"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(cfg config.Config, rootDir string, debug bool) error {
	store, err := frames.Load(rootDir, loadOptions(cfg)...)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d frames from %s", store.Len(), rootDir)

	opts, err := interpolateOptions(cfg)
	if err != nil {
		return err
	}

	if cfg.Server.ReloadInterval > 0 {
		sched, err := internal.NewReloadScheduler(store, cfg.Server.ReloadInterval, loadOptions(cfg)...)
		if err != nil {
			return err
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Errorf("failed to shutdown scheduler: %v", err)
			}
		}()
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Warn("pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %w", err)
	}

	api.Register(r, store, opts...)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Infof("Starting HTTP API Server on port %d...", cfg.Server.Port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %w", cfg.Server.Port, err)
	}
	return nil
}
