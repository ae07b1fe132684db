package sqlite

import (
	"strings"
	"testing"
)

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple term",
			input:    "espresso",
			expected: `"espresso"*`,
		},
		{
			name:     "multiple terms",
			input:    "espresso grinder",
			expected: `"espresso"* OR "grinder"*`,
		},
		{
			name:     "operators are plain words",
			input:    "milk AND NOT oat",
			expected: `"milk"* OR "oat"*`,
		},
		{
			name:     "stop words and short tokens dropped",
			input:    "what is the price of a latte",
			expected: `"price"* OR "latte"*`,
		},
		{
			name:     "punctuation splits",
			input:    `"flat-white" crema!`,
			expected: `"flat"* OR "white"* OR "crema"*`,
		},
		{
			name:     "duplicates collapse",
			input:    "crema Crema CREMA",
			expected: `"crema"*`,
		},
		{
			name:     "nothing left",
			input:    "is it ok",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchExpression(tt.input)
			if result != tt.expected {
				t.Errorf("matchExpression(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "sqlite://:memory:", want: ":memory:"},
		{input: "sqlite:///var/lib/orbit.db", want: "/var/lib/orbit.db"},
		{input: "sqlite://./orbit.db", want: "./orbit.db"},
		{input: "sqlite://orbit.db", want: "./orbit.db"},
		{input: "sqlite://my%20kb.db?_pragma=foreign_keys(1)", want: "./my kb.db?_pragma=foreign_keys(1)"},
		{input: "postgres://localhost/orbit", wantErr: true},
		{input: "sqlite://", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseDSN(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDSN(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDSN(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDSN(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitStatementsKeepsTriggersWhole(t *testing.T) {
	stmts := splitStatements(ddl)
	triggers := 0
	for _, s := range stmts {
		if strings.Contains(s, "CREATE TRIGGER") && strings.Contains(s, "END;") {
			triggers++
		}
	}
	if triggers != 3 {
		t.Fatalf("expected 3 whole trigger statements, got %d in %d statements", triggers, len(stmts))
	}
}
