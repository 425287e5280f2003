// Package policy classifies shell commands into allow/confirm/deny using
// named, immutable rulesets.
//
// Matching is case-insensitive substring containment. There is deliberately
// no shell parsing: a command that merely mentions a dangerous phrase in an
// argument will match too. That precision/recall tradeoff is accepted: the
// checker is a speed bump against accidents, not a sandbox.
package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codedjinn/djinn/internal/domain"
)

// Ruleset is one named safety policy: deny patterns, confirm patterns, and
// an implicit default of allow.
type Ruleset struct {
	Name        string
	Description string
	Deny        []string
	Confirm     []string
	// explicitConfirm upgrades confirm matches to a typed "YES" prompt.
	explicitConfirm bool
}

// Only truly system-destroying commands. Shared by every built-in policy.
var looseDeny = []string{
	"rm -rf /",
	"rm -fr /",
	"mkfs",
	"dd if=/dev/",
	"dd of=/dev/",
	":(){ :|:& };:", // fork bomb
}

var balancedDeny = append(append([]string{}, looseDeny...),
	"fdisk",
	"shutdown",
	"reboot",
	"halt",
	"poweroff",
	"init 0",
	"init 6",
	"kill -9 1",
	"killall -9",
	"sudo rm",
	"chmod 777",
	"chmod -r 777",
	"git push --force",
	"git push -f",
)

var strictDeny = append(append([]string{}, balancedDeny...),
	"curl | sh",
	"wget | sh",
	"curl | bash",
	"wget | bash",
	"eval",
	"python -c",
	"perl -e",
	"> /dev/",
	"< /dev/",
	"chown -r",
	"chmod +x /tmp",
)

// strictConfirm lists risk-adjacent verbs that need consent under strict.
// Pipes, redirects and chaining are normal CLI idioms and are never listed.
var strictConfirm = []string{
	"sudo",
	"rm -r",
	"rm -rf",
}

var builtins = map[string]Ruleset{
	"loose": {
		Name:        "loose",
		Description: "Minimal safety - only blocks system-destroying commands",
		Deny:        looseDeny,
	},
	"balanced": {
		Name:        "balanced",
		Description: "Balanced safety - blocks dangerous commands, allows normal CLI workflows",
		Deny:        balancedDeny,
	},
	"strict": {
		Name:            "strict",
		Description:     "Strict safety - extended denylist with confirmation for risky patterns",
		Deny:            strictDeny,
		Confirm:         strictConfirm,
		explicitConfirm: true,
	},
}

// DefaultName is the policy used when the user configures nothing.
const DefaultName = "balanced"

// Names lists the built-in policy names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a copy of the named built-in ruleset.
func Builtin(name string) (Ruleset, error) {
	rules, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Ruleset{}, fmt.Errorf("%w: %q (available: %s)",
			domain.ErrUnknownPolicy, name, strings.Join(Names(), ", "))
	}
	return rules.clone(), nil
}

func (r Ruleset) clone() Ruleset {
	out := r
	out.Deny = append([]string{}, r.Deny...)
	out.Confirm = append([]string{}, r.Confirm...)
	return out
}
