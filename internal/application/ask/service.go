// Package ask answers read-only questions about prior commands and their
// output. Nothing on this path is ever assessed or executed.
package ask

import (
	"context"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Request carries one `djinn ask` invocation.
type Request struct {
	Question  string
	Session   string
	NoContext bool
}

// Service wires the generator boundary to the session context.
type Service struct {
	Generator ports.CommandGenerator
	Sessions  ports.SessionStore
	Env       ports.EnvCollector
	Logger    ports.Logger
}

// Answer returns the provider's response to the question, with the session's
// last command and output attached as context.
func (s *Service) Answer(ctx context.Context, req Request) (string, error) {
	session := req.Session
	if session == "" {
		session = domain.DefaultSessionName
	}

	askReq := domain.AskRequest{
		Question: req.Question,
		Env:      s.Env.Collect(ctx),
	}
	if !req.NoContext {
		if prev, ok := s.Sessions.LoadCurrent(session); ok {
			askReq.Previous = &prev
		}
		askReq.History = s.Sessions.LoadHistory(session)
	}
	s.Logger.Debug("answering question", map[string]interface{}{
		"session":     session,
		"has_context": askReq.Previous != nil,
	})

	return s.Generator.Answer(ctx, askReq)
}
