package actions

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseLiteral decodes a Python literal (dicts, lists, tuples, strings,
// numbers, True/False/None). Results use the same shapes encoding/json produces
// for an `any` target: map[string]any, []any, string, float64, bool, nil.
func parseLiteral(src string) (any, error) {
	p := &literalParser{src: src}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("literal offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) value() (any, error) {
	switch c := p.peek(); {
	case c == '{':
		return p.dict()
	case c == '[':
		return p.sequence('[', ']')
	case c == '(':
		return p.sequence('(', ')')
	case c == '\'' || c == '"':
		return p.stringValue()
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case isIdentStart(c):
		return p.constant()
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *literalParser) dict() (any, error) {
	p.pos++ // {
	out := make(map[string]any)
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			return out, nil
		}
		key, err := p.value()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after dict key")
		}
		p.pos++
		p.skipSpace()
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		k, err := literalKey(key)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		out[k] = val

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("expected ',' or '}' in dict")
		}
	}
}

func (p *literalParser) sequence(open, closing byte) (any, error) {
	p.pos++ // open
	out := make([]any, 0)
	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			if open == '(' && len(out) == 1 {
				// (x) without a trailing comma is just x.
				return out[0], nil
			}
			return out, nil
		default:
			return nil, p.errorf("expected ',' or %q", closing)
		}
	}
}

// stringValue reads one or more adjacent string literals and concatenates them.
func (p *literalParser) stringValue() (any, error) {
	var sb strings.Builder
	for {
		s, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}
		sb.WriteString(s)
		p.skipSpace()
		if c := p.peek(); c != '\'' && c != '"' {
			return sb.String(), nil
		}
	}
}

func (p *literalParser) stringLiteral() (string, error) {
	quote := p.src[p.pos]
	delim := string(quote)
	if strings.HasPrefix(p.src[p.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	p.pos += len(delim)

	var sb strings.Builder
	for p.pos < len(p.src) {
		if strings.HasPrefix(p.src[p.pos:], delim) {
			p.pos += len(delim)
			return sb.String(), nil
		}
		c := p.src[p.pos]
		if c == '\n' && len(delim) == 1 {
			return "", p.errorf("newline in string literal")
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
			continue
		}
		if err := p.escape(&sb); err != nil {
			return "", err
		}
	}
	return "", p.errorf("unterminated string literal")
}

func (p *literalParser) escape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.pos >= len(p.src) {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
		if p.pos+width > len(p.src) {
			return p.errorf("truncated \\%c escape", c)
		}
		code, err := strconv.ParseUint(p.src[p.pos:p.pos+width], 16, 32)
		if err != nil {
			return p.errorf("invalid \\%c escape", c)
		}
		sb.WriteRune(rune(code))
		p.pos += width
	default:
		// Python keeps unknown escapes verbatim.
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
	return nil
}

func (p *literalParser) number() (any, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
		p.skipSpace()
	}
	digitsStart := p.pos
	for p.pos < len(p.src) && strings.IndexByte("0123456789._eE", p.src[p.pos]) >= 0 {
		if (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') && p.pos+1 < len(p.src) &&
			(p.src[p.pos+1] == '-' || p.src[p.pos+1] == '+') {
			p.pos++
		}
		p.pos++
	}
	if p.pos == digitsStart {
		return nil, p.errorf("expected number")
	}
	text := strings.ReplaceAll(p.src[digitsStart:p.pos], "_", "")
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", p.src[start:p.pos])
	}
	if p.src[start] == '-' {
		f = -f
	}
	return f, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (p *literalParser) constant() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && (isIdentStart(p.src[p.pos]) || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		p.pos = start
		return nil, p.errorf("name %q is not a literal", word)
	}
}

func literalKey(v any) (string, error) {
	switch k := v.(type) {
	case string:
		return k, nil
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64), nil
	case bool:
		if k {
			return "True", nil
		}
		return "False", nil
	case nil:
		return "None", nil
	default:
		return "", fmt.Errorf("unhashable dict key of type %T", v)
	}
}
