package domain

const (
	// ConfigFileName is the base name of the optional project configuration file.
	ConfigFileName = "press"

	// ConfigFileType is the format of the project configuration file.
	ConfigFileType = "yaml"

	// EnvPrefix is the prefix of environment variables overriding configuration keys.
	EnvPrefix = "PRESS"

	// AppDirName is the directory holding project sources.
	AppDirName = "app"

	// PublicDirName is the development output directory served by the dev server.
	PublicDirName = "public"

	// BuildDirName is the production output directory.
	BuildDirName = "build"

	// LiveReloadPath is the websocket endpoint of the live reload hub.
	LiveReloadPath = "/__press/livereload"

	// LiveReloadScriptPath is the URL of the live reload client script.
	LiveReloadScriptPath = "/__press/livereload.js"

	// DirPerm is the default permission for directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
