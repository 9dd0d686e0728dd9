package model

import (
	"reflect"
	"testing"
)

func TestDecodeAnswers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "json array", raw: `["A","B","C"]`, want: []string{"A", "B", "C"}},
		{name: "json string wrapped", raw: `"chỉ một đáp án"`, want: []string{"chỉ một đáp án"}},
		{name: "plain text fallback", raw: `not json at all`, want: []string{"not json at all"}},
		{name: "empty", raw: ``, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeAnswers([]byte(tc.raw))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DecodeAnswers(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecodeCorrect(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{name: "json int array", raw: `[1,3]`, want: []int{1, 3}},
		{name: "comma separated", raw: `1, 3`, want: []int{1, 3}},
		{name: "quoted comma separated", raw: `"2,4"`, want: []int{2, 4}},
		{name: "garbage becomes empty", raw: `first and third`, want: nil},
		{name: "empty", raw: ``, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeCorrect([]byte(tc.raw))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DecodeCorrect(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecodeResponses(t *testing.T) {
	got := DecodeResponses([]byte(`{"1":["B"],"2":["X","Z"]}`))
	want := map[string][]string{"1": {"B"}, "2": {"X", "Z"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeResponses = %v, want %v", got, want)
	}

	if got := DecodeResponses([]byte(`{broken`)); len(got) != 0 {
		t.Errorf("malformed responses should decode to empty map, got %v", got)
	}
	if got := DecodeResponses(nil); got == nil || len(got) != 0 {
		t.Errorf("nil responses should decode to empty non-nil map, got %v", got)
	}
}

func TestParseLegacyTimestamp(t *testing.T) {
	if _, ok := ParseLegacyTimestamp("2024-03-01T10:30:00+07:00"); !ok {
		t.Error("RFC3339 timestamp should parse")
	}
	if ts, ok := ParseLegacyTimestamp("1709283000"); !ok || ts.Unix() != 1709283000 {
		t.Errorf("unix timestamp should parse, got %v ok=%v", ts, ok)
	}
	if _, ok := ParseLegacyTimestamp("yesterday-ish"); ok {
		t.Error("garbage timestamp must report failure, not guess")
	}
}

func TestNormalizeQuestionType(t *testing.T) {
	if NormalizeQuestionType("Combobox") != QuestionTypeSingleChoice {
		t.Error("legacy Combobox should normalize to SINGLE_CHOICE")
	}
	if NormalizeQuestionType("Checkbox") != QuestionTypeMultiChoice {
		t.Error("legacy Checkbox should normalize to MULTI_CHOICE")
	}
	if NormalizeQuestionType("SINGLE_CHOICE") != QuestionTypeSingleChoice {
		t.Error("canonical value should pass through")
	}
}
