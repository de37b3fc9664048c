package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/mfall/portfolio/internal/catalog"
	"github.com/mfall/portfolio/internal/config"
	"github.com/mfall/portfolio/internal/logger"
)

type app struct {
	cfg        config.Config
	bundle     *catalog.Bundle
	negotiator *catalog.Negotiator
	visitors   *visitorStore
	admin      *adminAuth
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	a, err := newApp(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start")
	}
	if a.visitors != nil {
		defer a.visitors.Close()
	}

	r := newRouter(a)
	logger.Info().Str("port", cfg.Port).Strs("locales", a.bundle.Locales()).Msg("Portfolio listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped")
	}
}

func newApp(cfg config.Config) (*app, error) {
	bundle, err := loadBundle(cfg)
	if err != nil {
		return nil, err
	}
	negotiator, err := catalog.NewNegotiator(bundle.Locales(), bundle.Default())
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		bundle:     bundle,
		negotiator: negotiator,
	}
	if cfg.TrackVisitors {
		a.admin, err = newAdminAuth(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return nil, err
		}
		a.visitors, err = openVisitorStore(cfg.DatabasePath, a.admin.salt)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func loadBundle(cfg config.Config) (*catalog.Bundle, error) {
	if cfg.MessagesDir == "" {
		return catalog.LoadEmbedded(cfg.DefaultLocale)
	}
	logger.Info().Str("dir", cfg.MessagesDir).Msg("Loading message catalogs from disk")
	return catalog.LoadFromFS(os.DirFS(cfg.MessagesDir), cfg.DefaultLocale)
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.LoadHTMLGlob(a.cfg.TemplatesGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	if a.visitors != nil {
		r.Use(a.visitors.trackingMiddleware())
		setupAdminRoutes(r, a)
	}
	setupSiteRoutes(r, a)
	return r
}
