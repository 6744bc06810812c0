package parser

import "strings"

// dateNumFmtRanges lists built-in number format ids that render dates or times,
// including the CJK and Thai locale ids.
var dateNumFmtRanges = [][2]int{
	{14, 22},
	{27, 36},
	{45, 47},
	{50, 58},
	{71, 81},
}

// IsDateNumFmt reports whether a built-in number format id renders a date or time.
func IsDateNumFmt(id int) bool {
	for _, r := range dateNumFmtRanges {
		if id >= r[0] && id <= r[1] {
			return true
		}
	}
	return false
}

// IsDateFormatCode reports whether a custom number format code renders a date
// or time. Only the first section (positive numbers) is inspected. Quoted
// literals, escapes, padding and fill characters, and bracketed modifiers are
// ignored, except elapsed-time brackets such as [h] or [mm].
func IsDateFormatCode(code string) bool {
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	if strings.EqualFold(strings.TrimSpace(code), "general") {
		return false
	}

	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\', '_', '*':
			i++ // skip the next character
		case '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			if isElapsedTime(code[i+1 : i+1+end]) {
				return true
			}
			i += end + 1
		default:
			switch c | 0x20 { // ASCII lower case
			case 'd', 'm', 'y', 'h', 's':
				return true
			}
		}
	}
	return false
}

// isElapsedTime reports whether a bracket body is h, hh, m, mm, s or ss.
func isElapsedTime(body string) bool {
	body = strings.ToLower(body)
	if body == "" || len(body) > 2 {
		return false
	}
	for i := 1; i < len(body); i++ {
		if body[i] != body[0] {
			return false
		}
	}
	return body[0] == 'h' || body[0] == 'm' || body[0] == 's'
}
