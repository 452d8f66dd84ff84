package docsource

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// kernSpace is the TJ adjustment, in thousandths of an em, beyond which a
// gap between two strings is read as a word break.
const kernSpace = -200

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokString
	tokArrayStart
	tokArrayEnd
	tokOther
)

type token struct {
	kind tokenKind
	text string  // operator name or decoded string
	num  float64 // tokNumber
}

// ContentLines extracts the text shown by a page content stream, one entry
// per text line. Only text-showing and line-positioning operators are
// interpreted; glyph positions within a line are not.
func ContentLines(data []byte) []string {
	var (
		lines    []string
		line     strings.Builder
		operands []token
		inArray  bool
		array    []token
	)

	newline := func() {
		if line.Len() > 0 {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	space := func() {
		if s := line.String(); s != "" && !strings.HasSuffix(s, " ") {
			line.WriteByte(' ')
		}
	}
	lastString := func() (string, bool) {
		for i := len(operands) - 1; i >= 0; i-- {
			if operands[i].kind == tokString {
				return operands[i].text, true
			}
		}
		return "", false
	}

	lx := lexer{data: data}
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokArrayStart:
			inArray = true
			array = array[:0]
			continue
		case tokArrayEnd:
			inArray = false
			continue
		}
		if inArray {
			array = append(array, tok)
			continue
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tj":
			if s, ok := lastString(); ok {
				line.WriteString(s)
			}
		case "TJ":
			for _, el := range array {
				switch el.kind {
				case tokString:
					line.WriteString(el.text)
				case tokNumber:
					if el.num < kernSpace {
						space()
					}
				}
			}
			array = array[:0]
		case "'", "\"":
			newline()
			if s, ok := lastString(); ok {
				line.WriteString(s)
			}
		case "T*":
			newline()
		case "Td", "TD":
			if len(operands) >= 2 && operands[len(operands)-1].kind == tokNumber {
				if operands[len(operands)-1].num != 0 {
					newline()
				} else {
					space()
				}
			}
		case "Tm", "ET":
			newline()
		}
		operands = operands[:0]
	}
	newline()

	return lines
}

type lexer struct {
	data []byte
	pos  int
}

func (l *lexer) next() (token, bool) {
	l.skipSpaceAndComments()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokString, text: decodeText(l.literal())}, true
	case c == '<' && l.peek(1) == '<':
		l.pos += 2
		return token{kind: tokOther}, true
	case c == '>' && l.peek(1) == '>':
		l.pos += 2
		return token{kind: tokOther}, true
	case c == '<':
		l.pos++
		return token{kind: tokString, text: decodeText(l.hex())}, true
	case c == '[':
		l.pos++
		return token{kind: tokArrayStart}, true
	case c == ']':
		l.pos++
		return token{kind: tokArrayEnd}, true
	case c == '/':
		l.pos++
		l.word()
		return token{kind: tokOther}, true
	case c == '{' || c == '}' || c == ')' || c == '>':
		l.pos++
		return token{kind: tokOther}, true
	}

	w := l.word()
	if w == "" {
		l.pos++
		return token{kind: tokOther}, true
	}
	if n, err := strconv.ParseFloat(w, 64); err == nil {
		return token{kind: tokNumber, num: n}, true
	}
	return token{kind: tokOperator, text: w}, true
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.data) {
		return l.data[l.pos+off]
	}
	return 0
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

// word reads up to the next delimiter.
func (l *lexer) word() string {
	start := l.pos
	for l.pos < len(l.data) && !isSpace(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a string literal after its opening parenthesis, honoring
// nested parentheses and escapes.
func (l *lexer) literal() []byte {
	var buf bytes.Buffer
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return buf.Bytes()
			}
		case '\\':
			l.escape(&buf)
			continue
		}
		buf.WriteByte(c)
	}
	return buf.Bytes()
}

func (l *lexer) escape(buf *bytes.Buffer) {
	if l.pos >= len(l.data) {
		return
	}
	c := l.data[l.pos]
	l.pos++
	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		if l.peek(0) == '\n' {
			l.pos++
		}
	case '\n':
		// line continuation
	default:
		if c >= '0' && c <= '7' {
			v := int(c - '0')
			for i := 0; i < 2 && l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '7'; i++ {
				v = v*8 + int(l.data[l.pos]-'0')
				l.pos++
			}
			buf.WriteByte(byte(v))
			return
		}
		buf.WriteByte(c)
	}
}

// hex reads a hex string after its opening angle bracket.
func (l *lexer) hex() []byte {
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		if c := l.data[l.pos]; isHex(c) {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++ // closing '>'
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return out
}

// decodeText converts a PDF string to UTF-8. Strings with a UTF-16 byte
// order mark are decoded as UTF-16; everything else is read as
// Windows-1252, which matches the standard Latin encoding for the printable
// ASCII range. Control characters are dropped.
func decodeText(raw []byte) string {
	var (
		s   []byte
		err error
	)
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		s, err = xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder().Bytes(raw)
	} else {
		s, err = charmap.Windows1252.NewDecoder().Bytes(raw)
	}
	if err != nil {
		return ""
	}

	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, string(s))
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
