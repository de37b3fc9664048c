package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfall/portfolio/internal/catalog"
	"github.com/mfall/portfolio/internal/logger"
	"github.com/mfall/portfolio/internal/portfolio"
)

const (
	localeCookie       = "NEXT_LOCALE"
	localeCookieMaxAge = 365 * 24 * 3600
	localeContextKey   = "locale"
)

func setupSiteRoutes(r *gin.Engine, a *app) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locale negotiation; every page lives under a locale prefix
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/"+a.negotiate(c))
	})

	r.GET("/privacy", func(c *gin.Context) {
		locale := a.negotiate(c)
		cat, _ := a.bundle.Catalog(locale)
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":  cat.Text("privacy.title"),
			"locale": locale,
			"t":      cat,
			"policy": privacyPolicy(locale),
		})
	})

	// Home page for one locale
	r.GET("/:locale", func(c *gin.Context) {
		locale := c.Param("locale")
		cat, err := a.catalogFor(locale)
		if err != nil {
			a.renderError(c, http.StatusNotFound, "errors.notFound")
			return
		}
		c.Set(localeContextKey, locale)

		page, err := portfolio.Build(cat)
		if err != nil {
			logger.Error().Err(err).Str("locale", locale).Msg("Failed to build page")
			a.renderError(c, http.StatusInternalServerError, "errors.internal")
			return
		}

		c.SetCookie(localeCookie, locale, localeCookieMaxAge, "/", "", false, false)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"page":    page,
			"t":       cat,
			"locales": a.bundle.Locales(),
		})
	})

	// JSON view of one resolved section for HTMX/JS consumers
	r.GET("/api/:locale/:section", func(c *gin.Context) {
		locale := c.Param("locale")
		section := c.Param("section")
		cat, err := a.catalogFor(locale)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown locale"})
			return
		}

		items, err := portfolio.Section(cat, section)
		if errors.Is(err, portfolio.ErrUnknownSection) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
			return
		}
		if err != nil {
			logger.Error().Err(err).Str("locale", locale).Str("section", section).Msg("Failed to resolve section")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve section"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"locale":  locale,
			"section": section,
			"items":   items,
		})
	})
}

// negotiate picks the locale from the preference cookie, then Accept-Language.
func (a *app) negotiate(c *gin.Context) string {
	if locale, err := c.Cookie(localeCookie); err == nil && a.negotiator.Supported(locale) {
		return locale
	}
	return a.negotiator.Match(c.GetHeader("Accept-Language"))
}

func (a *app) catalogFor(locale string) (*catalog.Catalog, error) {
	if !a.negotiator.Supported(locale) {
		return nil, catalog.ErrNoCatalog
	}
	return a.bundle.Catalog(locale)
}

func (a *app) renderError(c *gin.Context, status int, key string) {
	cat, err := a.bundle.Catalog(a.negotiate(c))
	if err != nil {
		cat, _ = a.bundle.Catalog(a.bundle.Default())
	}
	c.HTML(status, "error.html", gin.H{
		"status": status,
		"error":  cat.Text(key),
		"t":      cat,
	})
}
