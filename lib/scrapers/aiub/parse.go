package aiub

import (
	"strconv"
	"strings"
	"unicode"
)

// maxIntToken returns the largest integer among the tokens, ignoring
// anything non-numeric. The portal sometimes lists a credit range, the
// maximum wins.
func maxIntToken(tokens []string) int {
	credit := 0
	for _, tok := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err == nil && v > credit {
			credit = v
		}
	}
	return credit
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
