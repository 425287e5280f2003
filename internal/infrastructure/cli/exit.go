package cli

import "fmt"

// ExitError carries a process exit code through cobra's error path so main
// can report the child's status faithfully.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}
