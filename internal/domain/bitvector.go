package domain

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeBitPositions returns the zero-based positions holding a 1 in a stored
// bit-vector. The first and last characters (the brackets) are dropped and
// the rest is split on single spaces. Tokens that are not an integer 1 are
// skipped, so malformed input decodes to no positions.
func DecodeBitPositions(raw string) []int {
	if utf8.RuneCountInString(raw) < 2 {
		return nil
	}
	_, first := utf8.DecodeRuneInString(raw)
	_, last := utf8.DecodeLastRuneInString(raw)
	body := raw[first : len(raw)-last]

	var positions []int
	for pos, tok := range strings.Split(body, " ") {
		v, err := strconv.Atoi(tok)
		if err != nil || v != 1 {
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}
