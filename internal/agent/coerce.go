package agent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseJSONObject isolates the first {...} object in a backend reply and
// decodes it. Models often wrap JSON in prose or code fences; everything
// outside the outermost braces is discarded.
func parseJSONObject(response string) (map[string]interface{}, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(response[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("parsing backend JSON output: %w", err)
	}
	return out, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asAmount coerces a loosely-typed monetary value. Currency symbols, commas,
// and spaces are stripped before parsing; anything that still fails to parse,
// and any negative value, is treated as missing rather than zero.
func asAmount(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return n, true
	case string:
		cleaned := strings.Map(func(r rune) rune {
			switch r {
			case '$', '€', '£', '₹', ',', ' ':
				return -1
			}
			return r
		}, strings.TrimSpace(n))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || f < 0 {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asDate accepts only a literal YYYY-MM-DD calendar date; any other shape is
// treated as missing.
func asDate(v interface{}) string {
	s := asString(v)
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func asStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asObjectList(v interface{}) []map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []map[string]interface{}
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
