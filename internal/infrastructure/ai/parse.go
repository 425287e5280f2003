package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codedjinn/djinn/internal/domain"
)

// ParseGeneratedCommand normalizes raw provider text into the canonical
// GeneratedCommand: first non-empty, non-fence line is the command, the rest
// is explanation. Empty responses are a generation error.
func ParseGeneratedCommand(raw string) (domain.GeneratedCommand, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	var command string
	var rest []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		if command == "" {
			command = stripInlineFence(trimmed)
			continue
		}
		rest = lines[i:]
		break
	}

	if command == "" {
		return domain.GeneratedCommand{}, fmt.Errorf("%w: provider returned no command", domain.ErrGeneration)
	}

	explanation := strings.TrimSpace(strings.Join(rest, "\n"))
	explanation = strings.TrimSuffix(explanation, "```")
	return domain.GeneratedCommand{
		Command:     command,
		Explanation: strings.TrimSpace(explanation),
	}, nil
}

func stripInlineFence(line string) string {
	line = strings.TrimPrefix(line, "`")
	line = strings.TrimSuffix(line, "`")
	return strings.TrimSpace(line)
}

// extractPath walks a decoded JSON document along a dotted path with
// optional indices, e.g. "choices[0].message.content".
func extractPath(doc interface{}, path string) (string, error) {
	cur := doc
	for _, segment := range strings.Split(path, ".") {
		name := segment
		index := -1
		if open := strings.IndexByte(segment, '['); open >= 0 && strings.HasSuffix(segment, "]") {
			name = segment[:open]
			parsed, err := strconv.Atoi(segment[open+1 : len(segment)-1])
			if err != nil {
				return "", fmt.Errorf("bad response path segment %q", segment)
			}
			index = parsed
		}

		if name != "" {
			obj, ok := cur.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("response path %q: expected object at %q", path, name)
			}
			cur, ok = obj[name]
			if !ok {
				return "", fmt.Errorf("response path %q: missing field %q", path, name)
			}
		}
		if index >= 0 {
			arr, ok := cur.([]interface{})
			if !ok || index >= len(arr) {
				return "", fmt.Errorf("response path %q: missing index %d", path, index)
			}
			cur = arr[index]
		}
	}

	text, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("response path %q: not a string", path)
	}
	return text, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
