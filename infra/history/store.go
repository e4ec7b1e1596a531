package history

import (
	"context"
	"fmt"
	"time"

	"github.com/tqsched/tq/pkg/export"
)

// Run is one persisted planning run.
type Run struct {
	ID     string              `json:"id"`
	Time   time.Time           `json:"time"`
	Source string              `json:"source"`
	Plan   export.PlanDocument `json:"plan"`
}

// Query defines filters for retrieving runs. Zero times are open bounds.
type Query struct {
	Since time.Time
	Until time.Time
}

func (q Query) matches(r Run) bool {
	if !q.Since.IsZero() && r.Time.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && r.Time.After(q.Until) {
		return false
	}
	return true
}

// Store persists planning runs and supports querying them back.
type Store interface {
	Append(ctx context.Context, run Run) error
	Runs(ctx context.Context, q Query) ([]Run, error)
	Close() error
}

// Open creates a store for the given driver ("sqlite" or "jsonl").
func Open(driver, path string) (Store, error) {
	switch driver {
	case "sqlite":
		return NewSQLiteStore(path)
	case "jsonl":
		return NewJSONLStore(path)
	default:
		return nil, fmt.Errorf("unknown history driver: %q", driver)
	}
}
