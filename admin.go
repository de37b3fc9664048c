// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/mfall/portfolio/internal/logger"
)

const (
	adminCookie      = "admin_token"
	timestampLayout  = "2006-01-02 15:04:05"
	recentVisitLimit = 50
	visitorPageLimit = 200
)

// VisitorMetric is one recorded page view.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Locale    string    `json:"locale,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type LocaleStat struct {
	Locale string `json:"locale"`
	Visits int64  `json:"visits"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	Locales          []LocaleStat    `json:"locales"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

type adminAuth struct {
	token    string
	salt     string
	username string
	passHash []byte
}

func newAdminAuth(username, password string) (*adminAuth, error) {
	token, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	if gin.Mode() == gin.DebugMode {
		logger.Debug().Str("token", token).Msg("Admin token (dev only)")
		if password == "admin123" {
			logger.Warn().Msg("Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
	return &adminAuth{token: token, salt: salt, username: username, passHash: passHash}, nil
}

func randomHex() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)) == nil
	return userOK && passOK
}

// middleware sends requests without a valid admin cookie to the login page.
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

type visitorStore struct {
	db   *sql.DB
	salt string
}

func openVisitorStore(path, salt string) (*visitorStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visitor database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &visitorStore{db: db, salt: salt}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *visitorStore) Close() error {
	return s.db.Close()
}

func (s *visitorStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		locale TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create visitors table: %w", err)
	}

	// Databases created before locale tracking lack the column
	var columnExists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pragma_table_info('visitors') WHERE name='locale'`).Scan(&columnExists)
	if err != nil {
		return fmt.Errorf("inspect visitors table: %w", err)
	}
	if columnExists == 0 {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE visitors ADD COLUMN locale TEXT`); err != nil {
			return fmt.Errorf("add locale column: %w", err)
		}
		logger.Info().Msg("Added locale column to visitors table")
	}

	logger.Info().Msg("Privacy-conscious visitor tracking initialized")
	return nil
}

// hashIP is stable for one process; the salt changes on restart.
func (s *visitorStore) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + s.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (s *visitorStore) record(ctx context.Context, ip, userAgent, path, locale string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, locale, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, s.hashIP(ip), userAgent, path, locale, at.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

// cleanup deletes visits older than twelve months.
func (s *visitorStore) cleanup(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM visitors
		WHERE timestamp < datetime('now', '-12 months')
	`)
	if err != nil {
		return 0, fmt.Errorf("clean up visitors: %w", err)
	}
	return result.RowsAffected()
}

func (s *visitorStore) cleanupInBackground() {
	go func() {
		rowsDeleted, err := s.cleanup(context.Background())
		if err != nil {
			logger.Error().Err(err).Msg("Error cleaning up old visitor data")
			return
		}
		if rowsDeleted > 0 {
			logger.Info().Int64("rows", rowsDeleted).Msg("Privacy cleanup: removed visitor records older than 12 months")
		}
	}()
}

func (s *visitorStore) recent(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(locale, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Locale, &ts); err != nil {
			continue
		}
		v.Timestamp = parseTimestamp(ts)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// parseTimestamp accepts both the layout we write and the RFC 3339 form the
// driver uses when it hands DATETIME columns back as time.Time.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (s *visitorStore) stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')`, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')`, &stats.VisitorsThisWeek},
	}
	for _, q := range counts {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(locale, ''), COUNT(*) AS visits
		FROM visitors
		GROUP BY locale
		ORDER BY visits DESC, locale
	`)
	if err != nil {
		return nil, fmt.Errorf("locale stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ls LocaleStat
		if err := rows.Scan(&ls.Locale, &ls.Visits); err != nil {
			return nil, fmt.Errorf("locale stats: %w", err)
		}
		stats.Locales = append(stats.Locales, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("locale stats: %w", err)
	}

	stats.RecentVisitors, err = s.recent(ctx, recentVisitLimit)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// trackingMiddleware records rendered locale pages after the handler ran.
func (s *visitorStore) trackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and machine endpoints
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			path == "/healthz" {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		c.Next()

		// Only rendered locale pages set the locale
		locale := c.GetString(localeContextKey)
		if locale == "" || c.Writer.Status() != http.StatusOK {
			return
		}
		ip, userAgent := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			if err := s.record(context.Background(), ip, userAgent, path, locale, time.Now()); err != nil {
				logger.Error().Err(err).Msg("Error recording visitor")
			}
		}()
	}
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, a *app) {
	auth, store := a.admin, a.visitors
	store.cleanupInBackground()
	logger.Info().Msg("Admin access available at: /admin/login")

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		if auth.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, auth.token, 3600*24, "/admin", "", false, true)
			logger.Info().Str("from", store.hashIP(c.ClientIP())).Msg("Admin login successful")
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		logger.Warn().Str("from", store.hashIP(c.ClientIP())).Msg("Failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(auth.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := store.stats(c.Request.Context())
		if err != nil {
			logger.Error().Err(err).Msg("Error loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := store.stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := store.recent(c.Request.Context(), visitorPageLimit)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	// Privacy compliance endpoint
	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		store.cleanupInBackground()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := store.stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		logger.Info().Str("by", store.hashIP(c.ClientIP())).Msg("Admin stats exported")
		c.JSON(http.StatusOK, stats)
	})
}
