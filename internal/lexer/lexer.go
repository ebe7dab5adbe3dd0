package lexer

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"

	"github.com/KimNorgaard/go-weathercfg/internal/token"
)

var bom = []byte("\xef\xbb\xbf")

// Lexer splits weather configuration source into line tokens.
type Lexer struct {
	r    *bufio.Reader
	line int
	err  error
}

// New creates and returns a new Lexer. A leading UTF-8 byte order mark is
// skipped.
func New(r io.Reader) *Lexer {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}
	return &Lexer{r: br}
}

// Err returns the first read error other than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

// NextToken returns the next non-blank line as a token. At the end of input,
// or after a read error, it returns EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		raw, ok := l.readLine()
		if !ok {
			return token.Token{Type: token.EOF, Line: l.line}
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		return Classify(raw, l.line)
	}
}

func (l *Lexer) readLine() (string, bool) {
	if l.err != nil {
		return "", false
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			l.err = err
			return "", false
		}
		if s == "" {
			return "", false
		}
	}
	l.line++
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

// Classify turns a single source line into a token.
func Classify(raw string, line int) token.Token {
	tok := token.Token{Type: token.ILLEGAL, Literal: raw, Line: line}
	trimmed := strings.TrimSpace(raw)
	tok.Indented = len(trimmed) > 0 && raw[0] != trimmed[0]

	switch {
	case trimmed == token.StructEnd:
		tok.Type = token.END
	case classifyParam(&tok, trimmed):
		// A parameter value may mention the keywords.
	case strings.Contains(trimmed, token.StructBegin):
		classifyBegin(&tok, trimmed)
	case strings.Contains(trimmed, token.StructEnd):
		tok.Type = token.END
	}
	return tok
}

// classifyBegin recognises "<name> : struct.begin" with an optional
// "{refkey=<key>}" suffix.
func classifyBegin(tok *token.Token, s string) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if !isName(name, tok.Indented) {
		return
	}
	rest, ok = strings.CutPrefix(strings.TrimSpace(rest), token.StructBegin)
	if !ok {
		return
	}
	rest = strings.TrimSpace(rest)
	if rest != "" {
		key, ok := strings.CutPrefix(rest, token.RefKeyOpen)
		if !ok {
			return
		}
		key, ok = strings.CutSuffix(key, "}")
		if !ok || key == "" || strings.ContainsAny(key, "{}") {
			return
		}
		tok.Value = key
	}
	tok.Type = token.BEGIN
	tok.Name = name
}

// classifyParam recognises "<name> = <value>" and reports whether s is one.
func classifyParam(tok *token.Token, s string) bool {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return false
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !isWord(name) || value == "" {
		return false
	}
	tok.Type = token.PARAM
	tok.Name = name
	tok.Value = value
	return true
}

// isName reports whether s can name a block. Headers may be wrapped in
// brackets, as in "[0]".
func isName(s string, indented bool) bool {
	if !indented {
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
	}
	return isWord(s)
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
