package parser

import (
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/errors"
	"github.com/KimNorgaard/go-weathercfg/internal/codec"
	"github.com/KimNorgaard/go-weathercfg/internal/lexer"
	"github.com/KimNorgaard/go-weathercfg/internal/token"
)

// Top-level fields with a dedicated slot in ast.Config.
const (
	fieldSID      = "SID"
	fieldPriority = "Priority"
)

// Mode controls how the parser treats input the reference tool tolerated.
type Mode struct {
	// Strict makes lines that match no production an error instead of a
	// warning.
	Strict bool
	// LegacyUnclosed drops a weather block still open at end of input instead
	// of failing.
	LegacyUnclosed bool
	// Warn receives tolerated problems. It may be nil.
	Warn func(line int, msg string)
}

type state int

const (
	outside state = iota
	inWeatherBlock
)

// Parser holds the state of the parser.
type Parser struct {
	l    *lexer.Lexer
	mode Mode

	state   state
	cfg     *ast.Config
	current *ast.WeatherType
	opened  int // line of the block being read
}

// New creates a new parser.
func New(l *lexer.Lexer, mode Mode) *Parser {
	return &Parser{l: l, mode: mode}
}

// Parse consumes the whole input and returns the config it describes.
// No config is returned on error.
func (p *Parser) Parse() (*ast.Config, error) {
	for {
		tok := p.l.NextToken()
		if tok.Type == token.EOF {
			if err := p.l.Err(); err != nil {
				return nil, err
			}
			return p.finish(tok.Line)
		}
		if err := p.step(tok); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) step(tok token.Token) error {
	switch p.state {
	case inWeatherBlock:
		return p.stepInBlock(tok)
	default:
		return p.stepOutside(tok)
	}
}

func (p *Parser) stepOutside(tok token.Token) error {
	switch tok.Type {
	case token.BEGIN:
		if tok.IsHeader() {
			return p.parseHeader(tok)
		}
		if p.cfg == nil {
			return errors.Newf(errors.ErrMalformedHeader, tok.Line, "block %q before header", tok.Name)
		}
		if tok.Value != "" {
			return errors.Newf(errors.ErrUnexpectedLine, tok.Line, "refkey on weather block %q", tok.Name)
		}
		p.current = ast.NewWeatherType(tok.Name)
		p.opened = tok.Line
		p.state = inWeatherBlock
		return nil
	case token.END:
		if strings.TrimSpace(tok.Literal) != token.StructEnd {
			return p.unexpected(tok)
		}
		// Closing the outer struct needs no bookkeeping.
		return nil
	case token.PARAM:
		if p.cfg == nil {
			return errors.Newf(errors.ErrMalformedHeader, tok.Line, "field %q before header", tok.Name)
		}
		return p.parseTopLevelParam(tok)
	default:
		return p.unexpected(tok)
	}
}

func (p *Parser) stepInBlock(tok token.Token) error {
	switch tok.Type {
	case token.END:
		return p.closeBlock()
	case token.BEGIN:
		return errors.Newf(errors.ErrNestedBlock, tok.Line, "%q inside %q", tok.Name, p.current.Name)
	case token.PARAM:
		// Inside a block any line mentioning struct.end closes it.
		if strings.Contains(tok.Literal, token.StructEnd) {
			return p.closeBlock()
		}
		p.current.Params[tok.Name] = codec.Decode(tok.Value)
		return nil
	default:
		return p.unexpected(tok)
	}
}

func (p *Parser) closeBlock() error {
	if !p.cfg.AddWeatherType(p.current) {
		return errors.Newf(errors.ErrDuplicateWeatherType, p.opened, "%q", p.current.Name)
	}
	p.current = nil
	p.state = outside
	return nil
}

func (p *Parser) parseHeader(tok token.Token) error {
	if p.cfg != nil {
		return errors.Newf(errors.ErrMalformedHeader, tok.Line, "second header %q", tok.Name)
	}
	p.cfg = ast.NewConfig(tok.Name)
	p.cfg.RefKey = tok.Value
	return nil
}

func (p *Parser) parseTopLevelParam(tok token.Token) error {
	switch tok.Name {
	case fieldSID:
		p.cfg.SID = tok.Value
	case fieldPriority:
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return errors.Newf(errors.ErrMalformedPriority, tok.Line, "%q is not an integer", tok.Value)
		}
		p.cfg.Priority = &n
	default:
		p.cfg.SetExtra(tok.Name, tok.Value)
	}
	return nil
}

func (p *Parser) unexpected(tok token.Token) error {
	if p.mode.Strict {
		return errors.Newf(errors.ErrUnexpectedLine, tok.Line, "%q", tok.Literal)
	}
	p.warn(tok.Line, "ignoring unrecognized line "+strconv.Quote(tok.Literal))
	return nil
}

func (p *Parser) finish(line int) (*ast.Config, error) {
	if p.cfg == nil {
		return nil, errors.Newf(errors.ErrMalformedHeader, line, "no header line")
	}
	if p.state == inWeatherBlock {
		if !p.mode.LegacyUnclosed {
			return nil, errors.Newf(errors.ErrUnclosedBlock, p.opened, "weather type %q never closed", p.current.Name)
		}
		p.warn(p.opened, "dropping unclosed weather type "+strconv.Quote(p.current.Name))
	}
	return p.cfg, nil
}

func (p *Parser) warn(line int, msg string) {
	if p.mode.Warn != nil {
		p.mode.Warn(line, msg)
	}
}
