package domain

import (
	"net"
	"strconv"
	"time"
)

// Config holds the resolved project configuration.
type Config struct {
	Root    string
	Server  ServerConfig
	Styles  StyleConfig
	Scripts ScriptConfig
	Images  ImageConfig
	Markup  MarkupConfig
	Watch   WatchConfig
	Log     LogConfig
	Paths   Paths
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Host    string
	Port    int
	Open    bool
	Browser string
}

// Addr returns the listen address of the server.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the address a browser should open.
func (c ServerConfig) URL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port)) + "/"
}

// StyleConfig configures stylesheet compilation.
type StyleConfig struct {
	Targets    []string
	SourceMaps bool
}

// ScriptConfig configures script minification.
type ScriptConfig struct {
	Target     string
	SourceMaps bool
}

// ImageConfig configures image compression.
type ImageConfig struct {
	JPEGQuality int
}

// MarkupConfig configures page rendering.
type MarkupConfig struct {
	Pretty         bool
	HighlightStyle string
	Data           map[string]any
}

// WatchConfig configures the watch loop.
type WatchConfig struct {
	Debounce time.Duration
}

// LogConfig configures console logging.
type LogConfig struct {
	JSON bool
}

const (
	// DefaultPort is the port of the development server.
	DefaultPort = 3000

	// DefaultJPEGQuality is the re-encode quality for JPEG images.
	DefaultJPEGQuality = 85

	// DefaultDebounce is the quiet period before a watch task re-runs.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultScriptTarget is the language level of minified scripts.
	DefaultScriptTarget = "es2017"

	// DefaultHighlightStyle is the chroma style used for code blocks.
	DefaultHighlightStyle = "github"
)

// DefaultStyleTargets lists the browsers stylesheets are prefixed for.
func DefaultStyleTargets() []string {
	return []string{"chrome58", "firefox57", "safari11", "edge16"}
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig(root string) *Config {
	return &Config{
		Root: root,
		Server: ServerConfig{
			Host: "localhost",
			Port: DefaultPort,
		},
		Styles: StyleConfig{
			Targets:    DefaultStyleTargets(),
			SourceMaps: true,
		},
		Scripts: ScriptConfig{
			Target: DefaultScriptTarget,
		},
		Images: ImageConfig{
			JPEGQuality: DefaultJPEGQuality,
		},
		Markup: MarkupConfig{
			Pretty:         true,
			HighlightStyle: DefaultHighlightStyle,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Paths: DefaultPaths(),
	}
}
