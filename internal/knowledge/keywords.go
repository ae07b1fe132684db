package knowledge

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MinTokenLength is the shortest token Tokenize keeps; anything with this
// many runes or fewer is dropped.
const MinTokenLength = 2

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {},
	"all": {}, "any": {}, "can": {}, "had": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "has": {}, "have": {}, "this": {}, "that": {}, "with": {},
	"from": {}, "they": {}, "will": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "why": {}, "how": {}, "your": {}, "about": {}, "into": {}, "there": {},
	"their": {}, "them": {}, "then": {}, "than": {}, "been": {}, "were": {}, "also": {},
	"just": {}, "like": {}, "more": {}, "some": {}, "such": {}, "only": {}, "very": {},
	"would": {}, "could": {}, "should": {}, "does": {}, "did": {}, "get": {}, "got": {},
	"its": {}, "let": {}, "may": {}, "might": {}, "much": {}, "must": {}, "over": {},
	"said": {}, "same": {}, "see": {}, "she": {}, "him": {}, "his": {}, "yes": {},
	"well": {}, "want": {}, "tell": {}, "know": {}, "need": {}, "please": {}, "thanks": {},
	"here": {}, "these": {}, "those": {}, "each": {}, "other": {}, "because": {},
}

// IsStopWord reports whether token is in the fixed stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Tokenize lowercases text, splits it on non-word characters and drops short
// tokens and stop words. Order and duplicates are preserved.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) <= MinTokenLength {
			continue
		}
		if IsStopWord(field) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// Keywords is an ordered keyword list. Entries are lowercased, trimmed and
// de-duplicated on decode.
type Keywords []string

func NormalizeKeywords(values []string) Keywords {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make(Keywords, 0, len(values))
	for _, value := range values {
		kw := strings.ToLower(strings.TrimSpace(value))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// UnmarshalYAML accepts either a sequence or a comma separated scalar.
func (k *Keywords) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*k = nil
			return nil
		}
		*k = NormalizeKeywords(strings.Split(node.Value, ","))
		return nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return fmt.Errorf("keywords must be strings")
			}
			values = append(values, child.Value)
		}
		*k = NormalizeKeywords(values)
		return nil
	default:
		return fmt.Errorf("keywords must be string or list of strings")
	}
}

// Seed returns at most n leading keywords.
func (k Keywords) Seed(n int) []string {
	if n <= 0 || len(k) == 0 {
		return nil
	}
	if n > len(k) {
		n = len(k)
	}
	return append([]string(nil), k[:n]...)
}
