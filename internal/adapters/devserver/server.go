// Package devserver serves the development output with live reload.
package devserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/browser"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var (
	clientTag = []byte(`<script src="` + domain.LiveReloadScriptPath + `"></script>`)
	bodyClose = []byte("</body>")
)

// Opener opens url in a browser. An empty name means the system default.
type Opener func(name, url string) error

// Server is a static file server that injects the live reload client into
// every HTML response.
type Server struct {
	logger ports.Logger
	reload ports.LiveReload
	open   Opener
}

// Option configures a Server.
type Option func(*Server)

// WithOpener replaces the browser launcher.
func WithOpener(open Opener) Option {
	return func(s *Server) {
		s.open = open
	}
}

// New creates a Server publishing notifications through reload.
func New(logger ports.Logger, reload ports.LiveReload, opts ...Option) *Server {
	s := &Server{
		logger: logger,
		reload: reload,
		open:   openBrowser,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve listens on cfg.Addr and serves root until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, root string, cfg domain.ServerConfig) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", cfg.Addr())
	}

	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		cfg.Port = tcp.Port
	}

	srv := &http.Server{
		Handler:           s.Handler(root),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("serving " + root + " at " + cfg.URL())
	if cfg.Open {
		if err := s.open(cfg.Browser, cfg.URL()); err != nil {
			s.logger.Warn("could not open browser: " + err.Error())
		}
	}

	select {
	case err := <-errCh:
		s.reload.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", cfg.Addr())
	case <-ctx.Done():
	}

	s.reload.Close()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}

// Handler returns the router serving root.
func (s *Server) Handler(root string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Handle(domain.LiveReloadPath, s.reload)
	r.Handle(domain.LiveReloadScriptPath, s.reload)
	r.Handle("/*", pageHandler(root, http.FileServer(http.Dir(root))))
	return r
}

// pageHandler serves HTML documents with the client script injected and
// hands every other request to next.
func pageHandler(root string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if strings.HasSuffix(name, "/") {
			name += "index.html"
		}
		if path.Ext(name) != ".html" {
			next.ServeHTTP(w, r)
			return
		}

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path.Clean("/"+name))))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(Inject(data))
	})
}

// Inject inserts the live reload client before the last </body>, or appends
// it when the document has none.
func Inject(doc []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(doc), bodyClose)
	if i < 0 {
		return append(bytes.Clone(doc), clientTag...)
	}

	out := make([]byte, 0, len(doc)+len(clientTag))
	out = append(out, doc[:i]...)
	out = append(out, clientTag...)
	return append(out, doc[i:]...)
}

func openBrowser(name, url string) error {
	if name == "" {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
		return browser.OpenURL(url)
	}
	return exec.Command(name, url).Start()
}
