// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dock

import "strings"

// organicSubset lists atoms writable outside brackets, plus aromatic
// lowercase forms. Two-letter symbols are checked before one-letter ones.
var organicSubset = []string{
	"Cl", "Br",
	"B", "C", "N", "O", "P", "S", "F", "I",
	"b", "c", "n", "o", "p", "s",
}

// bondChars are bond, chirality, and structural punctuation allowed
// between atoms.
const bondChars = "-=#$:/\\.+@"

// ValidSMILES reports whether s is syntactically plausible SMILES: known
// atom symbols, balanced parentheses and brackets, and paired ring-bond
// digits. It is a syntax gate for the docking skip rule, not a chemistry
// model; a string passing here may still be chemically meaningless.
func ValidSMILES(s string) bool {
	if s == "" {
		return false
	}

	var parens int
	ringBonds := make(map[string]int)
	sawAtom := false

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			// An opening branch needs a preceding atom.
			if !sawAtom {
				return false
			}
			parens++
			i++
		case c == ')':
			parens--
			if parens < 0 {
				return false
			}
			i++
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end <= 1 {
				return false
			}
			if !validBracketAtom(s[i+1 : i+end]) {
				return false
			}
			sawAtom = true
			i += end + 1
		case c == ']':
			return false
		case c >= '0' && c <= '9':
			if !sawAtom {
				return false
			}
			ringBonds[s[i:i+1]]++
			i++
		case c == '%':
			// Two-digit ring-bond label: %nn.
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return false
			}
			ringBonds[s[i+1:i+3]]++
			i += 3
		case strings.IndexByte(bondChars, c) >= 0:
			i++
		case c == '*':
			sawAtom = true
			i++
		default:
			sym := matchOrganicAtom(s[i:])
			if sym == 0 {
				return false
			}
			sawAtom = true
			i += sym
		}
	}

	if parens != 0 || !sawAtom {
		return false
	}
	// Every ring-bond label must open and close.
	for _, n := range ringBonds {
		if n%2 != 0 {
			return false
		}
	}
	return true
}

// matchOrganicAtom returns the length of the organic-subset symbol at the
// start of s, or 0 if none matches.
func matchOrganicAtom(s string) int {
	for _, sym := range organicSubset {
		if strings.HasPrefix(s, sym) {
			return len(sym)
		}
	}
	return 0
}

// validBracketAtom checks the interior of a bracket atom: an optional
// isotope, an element symbol, then charge/hydrogen/chirality/class marks.
func validBracketAtom(body string) bool {
	i := 0
	for i < len(body) && isDigit(body[i]) {
		i++
	}
	if i >= len(body) {
		return false
	}

	c := body[i]
	if c == '*' {
		i++
	} else if c >= 'A' && c <= 'Z' {
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			i++
		}
	} else if c >= 'a' && c <= 'z' {
		i++
	} else {
		return false
	}

	for ; i < len(body); i++ {
		c := body[i]
		valid := isDigit(c) || c == '+' || c == '-' || c == '@' || c == 'H' || c == ':'
		if !valid {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
