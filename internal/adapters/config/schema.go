package config

import "time"

// File mirrors press.yaml. Keys are decoded by viper through mapstructure.
type File struct {
	Server  ServerDTO            `mapstructure:"server"`
	Styles  StylesDTO            `mapstructure:"styles"`
	Scripts ScriptsDTO           `mapstructure:"scripts"`
	Images  ImagesDTO            `mapstructure:"images"`
	Markup  MarkupDTO            `mapstructure:"markup"`
	Watch   WatchDTO             `mapstructure:"watch"`
	Log     LogDTO               `mapstructure:"log"`
	Paths   map[string]PathEntry `mapstructure:"paths"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Open    bool   `mapstructure:"open"`
	Browser string `mapstructure:"browser"`
}

// StylesDTO configures stylesheet compilation.
type StylesDTO struct {
	Targets    []string `mapstructure:"targets"`
	SourceMaps bool     `mapstructure:"source_maps"`
}

// ScriptsDTO configures script minification.
type ScriptsDTO struct {
	Target     string `mapstructure:"target"`
	SourceMaps bool   `mapstructure:"source_maps"`
}

// ImagesDTO configures image compression. Only JPEG quality is tunable;
// PNG and GIF are always recompressed losslessly.
type ImagesDTO struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// MarkupDTO configures page rendering.
type MarkupDTO struct {
	Pretty         bool           `mapstructure:"pretty"`
	HighlightStyle string         `mapstructure:"highlight_style"`
	Data           map[string]any `mapstructure:"data"`
}

// WatchDTO configures the watch loop.
type WatchDTO struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogDTO configures console logging.
type LogDTO struct {
	JSON bool `mapstructure:"json"`
}

// PathEntry overrides one category of the path registry. Empty fields keep
// the default.
type PathEntry struct {
	Src  []string `mapstructure:"src"`
	Dest string   `mapstructure:"dest"`
}
