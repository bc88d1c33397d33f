package schema

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeaderName derives the header cell text for a declared name.
// Examples:
//   - "SomeFieldName" -> "Some Field Name"
//   - "lone_field" -> "Lone Field"
//   - "USBCTotal" -> "USBC Total"
func HeaderName(declared string) string {
	tokens := Tokenize(declared)
	for i, t := range tokens {
		tokens[i] = capFirst(t)
	}

	return strings.Join(tokens, " ")
}

// OutputKey derives the record key for a declared name.
// Examples:
//   - "SomeFieldName" -> "some_field_name"
//   - "USB20Header" -> "usb20_header"
//   - "PhysicalX1X4" -> "physical_x1_x4"
func OutputKey(declared string) string {
	tokens := Tokenize(declared)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return strings.Join(tokens, "_")
}

// Tokenize splits an identifier into words.
// Words break at separators (_, -, spaces), at lower-to-upper transitions,
// at digit-to-upper transitions and before the last capital of an acronym
// that is followed by a lowercase letter.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "PhysicalX1X4" -> ["Physical", "X1", "X4"]
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && current.Len() > 0 && startsToken(runes, i) {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// startsToken reports whether a new word starts at position i.
func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "orderID" and "x1X4" split before the capital.
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

var typeWordRe = regexp.MustCompile(`\d+|[\p{L}\p{N}_]+`)

var digitNames = [...]string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// TypeName derives a declared identifier from free header text.
// Words are capitalized and concatenated; a leading number has its first
// digit spelled out so the result is a valid identifier.
// Examples:
//   - "Physical x1/x4" -> "PhysicalX1X4"
//   - "USB 2.0 header" -> "USB20Header"
//   - "4-pin  RGB 12V" -> "FourPinRGB12V"
//
// Returns "" if the text holds no letters or digits.
func TypeName(text string) string {
	words := typeWordRe.FindAllString(text, -1)
	if len(words) == 0 {
		return ""
	}

	if head := words[0]; head[0] >= '0' && head[0] <= '9' {
		words[0] = digitNames[head[0]-'0'] + head[1:]
	}

	var b strings.Builder
	for _, w := range words {
		b.WriteString(capFirst(w))
	}

	return b.String()
}

func capFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
