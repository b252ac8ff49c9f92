package actions

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	quotedFence   = regexp.MustCompile(`(?s)json'''(.*?)'''`)
	markdownFence = regexp.MustCompile("(?s)```json(.*?)```")
	firstSpan     = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
)

// ParseJSON recovers a JSON-like value from model output. Stages run in a
// fixed order and the first success wins:
//
//  1. unwrap a block fenced as json by triple single quotes or a Markdown fence
//  2. strict JSON
//  3. Python literal
//  4. single quotes swapped for double quotes, strict JSON
//  5. first {...} or [...] span, strict JSON then Python literal
//
// It returns nil when nothing can be recovered.
func ParseJSON(input string) any {
	if m := quotedFence.FindStringSubmatch(input); m != nil {
		input = strings.TrimSpace(m[1])
	} else if m := markdownFence.FindStringSubmatch(input); m != nil {
		input = strings.TrimSpace(m[1])
	}

	if v, ok := decodeJSON(input); ok {
		return v
	}

	if v, err := parseLiteral(input); err == nil {
		return v
	}

	if v, ok := decodeJSON(strings.ReplaceAll(input, "'", `"`)); ok {
		return v
	}

	if m := firstSpan.FindStringSubmatch(input); m != nil {
		if v, ok := decodeJSON(m[1]); ok {
			return v
		}
		if v, err := parseLiteral(m[1]); err == nil {
			return v
		}
	}

	return nil
}

func decodeJSON(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// Parse runs ParseJSON and decodes the result into action records.
func Parse(input string) []Action {
	return Decode(ParseJSON(input))
}
