package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the /health payload.
type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	AI       string `json:"ai"`
}

// Service reports process and dependency health.
type Service struct {
	db           Pinger
	aiConfigured bool
	timeout      time.Duration
}

// NewService constructs a health service. db may be nil for in-memory runs.
func NewService(db Pinger, aiConfigured bool) *Service {
	return &Service{db: db, aiConfigured: aiConfigured, timeout: 2 * time.Second}
}

// Check pings the database when one is wired. The AI flag is informational only;
// an unconfigured AI still serves fallback analyses.
func (s *Service) Check(ctx context.Context) (Status, bool) {
	st := Status{Status: "ok", Database: "memory", AI: "unconfigured"}
	if s.aiConfigured {
		st.AI = "configured"
	}
	if s.db == nil {
		return st, true
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.Status = "degraded"
		st.Database = "unreachable"
		return st, false
	}
	st.Database = "ok"
	return st, true
}
