package ports

import "context"

// TaskRunner runs registered tasks by name.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type TaskRunner interface {
	Run(ctx context.Context, names ...string) error
}
