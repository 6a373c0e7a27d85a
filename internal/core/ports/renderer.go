package ports

import "time"

// Renderer is the abstraction for console output.
// It decouples span collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Stop flushes buffered output.
	Stop() error

	// OnPlanEmit is called once the scheduler knows which entries will run.
	OnPlanEmit(tasks []string, targets []string)

	// OnTaskStart is called when a task or group begins.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a task writes output. data may hold partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task or group finishes.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
