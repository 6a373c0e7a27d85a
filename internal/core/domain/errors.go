package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskNotFound is returned when a requested task or group is not registered.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrMissingMember is returned when a group or task references an unregistered entry.
	ErrMissingMember = zerr.New("missing task reference")

	// ErrCycleDetected is returned when task references form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidTaskName is returned when a task name is empty or contains whitespace.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrBuildExecutionFailed is returned when one of the requested tasks fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTaskExecutionFailed is returned when a task body fails.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidBrowserTarget is returned when a style target is not of the form "<engine><version>".
	ErrInvalidBrowserTarget = zerr.New("invalid browser target")

	// ErrManifestNotFound is returned when a vendor manifest file does not exist.
	ErrManifestNotFound = zerr.New("vendor manifest not found")

	// ErrManifestParseFailed is returned when a vendor manifest cannot be decoded.
	ErrManifestParseFailed = zerr.New("failed to parse vendor manifest")

	// ErrSourceNotFound is returned when a literal source path does not exist.
	ErrSourceNotFound = zerr.New("source file not found")

	// ErrInvalidPattern is returned when a glob pattern is malformed.
	ErrInvalidPattern = zerr.New("invalid glob pattern")

	// ErrFileReadFailed is returned when a source file cannot be read.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrFileWriteFailed is returned when an output file cannot be written.
	ErrFileWriteFailed = zerr.New("failed to write file")

	// ErrCleanFailed is returned when a directory cannot be emptied.
	ErrCleanFailed = zerr.New("failed to clean directory")

	// ErrTemplateRenderFailed is returned when a markup page cannot be rendered.
	ErrTemplateRenderFailed = zerr.New("failed to render page")

	// ErrStyleCompileFailed is returned when a stylesheet is rejected by the compiler.
	ErrStyleCompileFailed = zerr.New("failed to compile stylesheet")

	// ErrScriptMinifyFailed is returned when a script is rejected by the minifier.
	ErrScriptMinifyFailed = zerr.New("failed to minify script")

	// ErrImageCompressFailed is returned when an image cannot be decoded or encoded.
	ErrImageCompressFailed = zerr.New("failed to compress image")

	// ErrServerFailed is returned when the development server cannot listen or serve.
	ErrServerFailed = zerr.New("development server failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)
