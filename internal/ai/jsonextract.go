// README: Best-effort JSON recovery for unreliable model output.
package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSONBlock returns the first JSON object contained in raw model
// output. Recovery order: strip Markdown code fences, try a direct parse,
// then scan for the first balanced {...} block. ok is false when nothing
// parseable was found; callers degrade instead of failing.
func ExtractJSONBlock(raw string) (string, bool) {
	cleaned := stripCodeFences(raw)
	if isJSONObject(cleaned) {
		return strings.TrimSpace(cleaned), true
	}
	if block, found := firstBraceBlock(raw); found && isJSONObject(block) {
		return block, true
	}
	return "", false
}

func isJSONObject(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// stripCodeFences removes a ```json ... ``` wrapper if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstBraceBlock scans for the first balanced top-level {...} block,
// honouring string literals and escapes so braces inside values don't count.
func firstBraceBlock(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
