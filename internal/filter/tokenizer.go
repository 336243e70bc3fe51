package filter

import "strings"

// splitWords splits a $filter expression on unquoted spaces. A quoted span
// (delimited by ', with '' as an escaped quote) is never split even if it
// contains spaces, since a toggle that lands on consecutive quote
// characters never coincides with a space between them.
func splitWords(input string) []string {
	var words []string
	var cur strings.Builder
	inQuote := false

	for i := 0; i < len(input); i++ {
		ch := input[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			cur.WriteByte(ch)
		case ch == ' ' && !inQuote:
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(ch)
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

// parenDelta counts the net change in parenthesis depth a single word
// contributes, ignoring parens that fall inside a quoted span.
func parenDelta(word string) int {
	depth := 0
	inQuote := false
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
			}
		}
	}
	return depth
}

// mergeParenGroups re-joins runs of words whose combined parenthesis depth
// is unbalanced back into a single token, so a bracketed span (a filter
// group, or a "not(" fused to its operand) tokenizes as one unit regardless
// of internal whitespace. A word that is already paren-balanced on its own
// — a bare predicate token, or a self-contained function call like
// contains(Name,'Q') — passes through unchanged.
func mergeParenGroups(words []string) []string {
	out := make([]string, 0, len(words))
	i := 0
	for i < len(words) {
		w := words[i]
		delta := parenDelta(w)
		if delta == 0 {
			out = append(out, w)
			i++
			continue
		}

		parts := []string{w}
		total := delta
		j := i + 1
		for total != 0 && j < len(words) {
			total += parenDelta(words[j])
			parts = append(parts, words[j])
			j++
		}
		out = append(out, strings.Join(parts, " "))
		i = j
	}
	return out
}

// tokenize produces the word-level token stream a filter expression parses
// against: whitespace-split, quote-aware, with bracketed spans fused.
func tokenize(input string) []string {
	return mergeParenGroups(splitWords(strings.TrimSpace(input)))
}
