// Package run implements the generate-assess-confirm-execute-persist
// pipeline behind `djinn run`.
package run

import (
	"context"
	"fmt"
	"time"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/ports"
)

// Status is how one run invocation ended.
type Status string

const (
	// StatusExecuted means the command ran to completion (or timeout) and
	// its exit code is authoritative.
	StatusExecuted Status = "executed"
	// StatusDenied means policy blocked the command before execution.
	StatusDenied Status = "denied"
	// StatusCancelled means the user declined or interrupted.
	StatusCancelled Status = "cancelled"
)

// Request carries one `djinn run` invocation.
type Request struct {
	Intent  string
	Session string
	// NoContext skips both loading and saving session context.
	NoContext bool
	// NoConfirm suppresses the confirm-all preference. Policy-mandated
	// confirmations are never suppressed.
	NoConfirm bool
	// ConfirmAll asks a lightweight confirmation even for allowed commands.
	ConfirmAll bool
	Verbose    bool
	Explain    bool
	Timeout    time.Duration
	WorkDir    string
}

// Outcome reports what happened, for the CLI to map to an exit code.
type Outcome struct {
	Command    domain.GeneratedCommand
	Assessment domain.Assessment
	Result     domain.ExecutionResult
	Status     Status
}

// Service orchestrates a single run. All collaborators are injected;
// the service holds no state of its own.
type Service struct {
	Generator ports.CommandGenerator
	Policy    ports.PolicyAssessor
	Executor  ports.CommandExecutor
	Sessions  ports.SessionStore
	History   ports.HistoryStore
	Prompter  ports.ConfirmationPrompter
	Env       ports.EnvCollector
	UI        ports.UI
	Logger    ports.Logger
}

// Run drives the pipeline: generate, assess, confirm, execute, persist.
// Denied and cancelled runs return a nil error with the matching Status;
// the caller decides the process exit code.
func (s *Service) Run(ctx context.Context, req Request) (Outcome, error) {
	session := req.Session
	if session == "" {
		session = domain.DefaultSessionName
	}

	genReq := domain.GenerateRequest{
		Intent:  req.Intent,
		Env:     s.Env.Collect(ctx),
		Explain: req.Explain,
	}
	if !req.NoContext {
		if prev, ok := s.Sessions.LoadCurrent(session); ok {
			genReq.Previous = &prev
		}
		genReq.History = s.Sessions.LoadHistory(session)
	}

	gen, err := s.Generator.GenerateCommand(ctx, genReq)
	if err != nil {
		return Outcome{}, err
	}
	s.Logger.Debug("command generated", map[string]interface{}{
		"command": gen.Command,
		"session": session,
	})
	s.UI.ShowCommand(gen)

	assessment := s.Policy.Assess(gen.Command)
	outcome := Outcome{Command: gen, Assessment: assessment}

	switch assessment.Decision {
	case domain.DecisionDeny:
		s.Logger.Info("command denied by policy", map[string]interface{}{
			"policy":  assessment.Policy,
			"pattern": assessment.Pattern,
		})
		s.appendHistory(session, gen.Command, assessment.Decision, 0, 0)
		outcome.Status = StatusDenied
		return outcome, nil

	case domain.DecisionConfirm:
		ok, err := s.Prompter.Confirm(ctx, assessment, gen.Command)
		if err != nil {
			return outcome, err
		}
		if !ok {
			outcome.Status = StatusCancelled
			return outcome, nil
		}

	case domain.DecisionAllow:
		if req.ConfirmAll && !req.NoConfirm && s.Prompter.Enabled() {
			ok, err := s.Prompter.Confirm(ctx, assessment, gen.Command)
			if err != nil {
				return outcome, err
			}
			if !ok {
				outcome.Status = StatusCancelled
				return outcome, nil
			}
		}

	default:
		return outcome, fmt.Errorf("unexpected policy decision %q", assessment.Decision)
	}

	result := s.Executor.Execute(ctx, gen.Command, domain.ExecOptions{
		WorkDir: req.WorkDir,
		Timeout: req.Timeout,
	})
	outcome.Result = result
	outcome.Status = StatusExecuted
	s.UI.ShowResult(result, req.Verbose)

	if !req.NoContext {
		rec := domain.CommandRecord{
			Command:   gen.Command,
			Output:    domain.TrimOutput(result.Output),
			ExitCode:  result.ExitCode,
			Timestamp: time.Now(),
		}
		if err := s.Sessions.Save(session, rec); err != nil {
			s.Logger.Warn("session save failed", map[string]interface{}{
				"session": session,
				"error":   err.Error(),
			})
		}
	}
	s.appendHistory(session, gen.Command, assessment.Decision, result.ExitCode, result.Duration)

	return outcome, nil
}

func (s *Service) appendHistory(session, command string, decision domain.PolicyDecision, exitCode int, d time.Duration) {
	if s.History == nil {
		return
	}
	err := s.History.Append(domain.HistoryEntry{
		Session:    session,
		Command:    command,
		Decision:   decision,
		ExitCode:   exitCode,
		DurationMS: d.Milliseconds(),
	})
	if err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
	}
}
