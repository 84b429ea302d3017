// Package statusweb serves a small read-only HTTP status page: the
// most recent admitted requests and their last known state from the
// audit trail, plus a /docs endpoint rendering the parameter-document
// reference as HTML. Authentication, when configured, is HTTP Basic
// Auth with an optional bcrypt-hashed password, the same scheme
// cmonit's web UI uses.
package statusweb

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gomarkdown/markdown"
	"golang.org/x/crypto/bcrypt"

	"github.com/qbic-pipelines/mqrund/internal/audit"
)

//go:embed docs.md
var docsSource embed.FS

var statusPageTemplate = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>mqrund status</title></head>
<body>
<h1>mqrund — recent requests</h1>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>ID</th><th>Directory</th><th>Admitted</th><th>Status</th><th>Message</th></tr>
{{range .}}
<tr>
<td>{{.ID}}</td>
<td>{{.Directory}}</td>
<td>{{.AdmittedAt.Format "2006-01-02 15:04:05"}}</td>
<td>{{.Status}}</td>
<td>{{.Message}}</td>
</tr>
{{end}}
</table>
<p><a href="/docs">parameter document reference</a></p>
</body>
</html>
`))

// Config holds the status page's listen address and optional Basic
// Auth credentials. Listen empty disables the page entirely.
type Config struct {
	Listen         string
	User           string
	Password       string
	PasswordFormat string // "plain" or "bcrypt"
	HistoryLimit   int
}

// Server serves the status page and docs endpoint against an audit
// store.
type Server struct {
	cfg   Config
	audit *audit.Store
	http  *http.Server
}

// New builds a Server. auditStore may be nil, in which case the
// status page always reports an empty history.
func New(cfg Config, auditStore *audit.Store) *Server {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 100
	}
	s := &Server{cfg: cfg, audit: auditStore}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleStatus)
	mux.HandleFunc("/docs", s.handleDocs)

	var handler http.Handler = mux
	if cfg.User != "" && cfg.Password != "" {
		handler = basicAuth(mux, cfg.User, cfg.Password, cfg.PasswordFormat)
	}

	s.http = &http.Server{Addr: cfg.Listen, Handler: handler}
	return s
}

// Serve blocks, listening on cfg.Listen, until ctx is cancelled or the
// server fails to start.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] statusweb: listening on %s", s.cfg.Listen)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	rows, err := s.audit.Recent(s.cfg.HistoryLimit)
	if err != nil {
		log.Printf("[ERROR] statusweb: query recent requests: %v", err)
		http.Error(w, "failed to load request history", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := statusPageTemplate.Execute(w, rows); err != nil {
		log.Printf("[ERROR] statusweb: render status page: %v", err)
	}
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	source, err := docsSource.ReadFile("docs.md")
	if err != nil {
		log.Printf("[ERROR] statusweb: read embedded docs: %v", err)
		http.Error(w, "failed to load documentation", http.StatusInternalServerError)
		return
	}
	html := markdown.ToHTML(source, nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><body>%s</body></html>", html)
}

// basicAuth wraps next with HTTP Basic Auth, comparing the password
// either as plain text or, with format "bcrypt", via
// bcrypt.CompareHashAndPassword against a stored hash.
func basicAuth(next http.Handler, username, password, format string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != username {
			w.Header().Set("WWW-Authenticate", `Basic realm="mqrund"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var match bool
		if format == "bcrypt" {
			match = bcrypt.CompareHashAndPassword([]byte(password), []byte(pass)) == nil
		} else {
			match = pass == password
		}
		if !match {
			w.Header().Set("WWW-Authenticate", `Basic realm="mqrund"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			log.Printf("[WARN] statusweb: failed authentication attempt from %s", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HashPassword generates a bcrypt hash for use as a config file
// password with password_format = "bcrypt". Exposed for the
// -hash-password CLI utility.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("statusweb: generate bcrypt hash: %w", err)
	}
	return string(hash), nil
}
