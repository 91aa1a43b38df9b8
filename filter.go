package main

import "strings"

// isUpperAlpha reports whether w is a non-empty run of letters A-Z.
func isUpperAlpha(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}

// filterWords reduces raw candidates to the pool usable at the given length
// bounds. A word survives only if no other length-eligible word is a
// substring or superstring of it, which keeps trivially nested pairs like
// CAT/CATALOG out of the solution set. Input order is preserved among
// survivors, and selection stops once 5×targetCount words are retained so
// huge candidate lists stay cheap.
//
// The result is idempotent: re-filtering the output removes nothing.
func filterWords(words []string, minLen, maxLen, targetCount int) []string {
	eligible := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= minLen && len(w) <= maxLen && isUpperAlpha(w) {
			eligible = append(eligible, w)
		}
	}

	selected := make([]string, 0, len(eligible))
	for _, w := range eligible {
		if !containedInAny(w, eligible) {
			selected = append(selected, w)
		}
		if len(selected) >= targetCount*5 {
			break
		}
	}
	return selected
}

// containedInAny reports whether some word in pool other than w itself
// contains w or is contained in it.
func containedInAny(w string, pool []string) bool {
	for _, o := range pool {
		if o == w {
			continue
		}
		if strings.Contains(o, w) || strings.Contains(w, o) {
			return true
		}
	}
	return false
}
