package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Lenient decoders for fields that the legacy system stored as loosely-typed
// serialized text. Decoding failures fall back to a usable value instead of
// surfacing as errors; a malformed answer key makes the question
// unanswerable-correctly rather than breaking reads.

// DecodeAnswers parses a stored answers field into an ordered option list.
// Fallback: treat the whole raw value as a single option.
func DecodeAnswers(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var answers []string
	if err := json.Unmarshal(raw, &answers); err == nil {
		return answers
	}

	// The value may be a JSON string containing the option text, or plain text.
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return []string{string(raw)}
}

// DecodeCorrect parses a stored correct field into a set of 1-indexed
// positions. Fallbacks, in order: JSON int array, comma-separated ints,
// empty set.
func DecodeCorrect(raw []byte) []int {
	if len(raw) == 0 {
		return nil
	}

	var correct []int
	if err := json.Unmarshal(raw, &correct); err == nil {
		return correct
	}

	// Comma-separated text, possibly wrapped in a JSON string.
	text := string(raw)
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		text = quoted
	}

	parts := strings.Split(text, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	return out
}

// DecodeResponses parses a stored responses field. Fallback: empty map.
func DecodeResponses(raw []byte) map[string][]string {
	responses := make(map[string][]string)
	if len(raw) == 0 {
		return responses
	}
	if err := json.Unmarshal(raw, &responses); err != nil {
		return make(map[string][]string)
	}
	return responses
}

// ParseLegacyTimestamp parses timestamps from exported legacy data, which
// mixes RFC3339 text with numeric Unix seconds. The second return value
// reports whether parsing succeeded; callers display a placeholder on false
// rather than aborting.
func ParseLegacyTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Unix(int64(secs), 0), true
	}

	return time.Time{}, false
}
