package ports

import (
	"context"
	"net/http"

	"go.trai.ch/press/internal/core/domain"
)

// Reloader notifies connected browsers about rebuilt outputs.
//
//go:generate mockgen -source=livereload.go -destination=mocks/mock_livereload.go -package=mocks
type Reloader interface {
	// Reload asks clients to reload the page.
	Reload(urls ...string)

	// InjectCSS asks clients to swap the given stylesheets without reloading.
	InjectCSS(urls ...string)
}

// LiveReload is a Reloader that also serves the client connection endpoint.
type LiveReload interface {
	Reloader
	http.Handler

	// Close disconnects every client.
	Close()
}

// DevServer serves the development output directory.
type DevServer interface {
	// Serve blocks until ctx is cancelled or the server fails.
	Serve(ctx context.Context, root string, cfg domain.ServerConfig) error
}
