package health

// Counter reports the number of live sessions.
type Counter interface {
	Len() int
}

// Service encapsulates health-related checks.
type Service struct {
	provider string
	sessions Counter
}

// NewService constructs a new health service.
func NewService(provider string, sessions Counter) *Service {
	return &Service{provider: provider, sessions: sessions}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]any {
	out := map[string]any{
		"ok":       true,
		"provider": s.provider,
	}
	if s.sessions != nil {
		out["sessions"] = s.sessions.Len()
	}
	return out
}
