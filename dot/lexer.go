// ABOUTME: Tokenizer for DOT digraph source producing a flat token stream.
// ABOUTME: Handles identifiers, keywords, quoted strings with escapes, numerals, comments, and DOT punctuation.
package dot

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenEOF        TokenType = iota
	TokenStrict               // strict keyword
	TokenDigraph              // digraph keyword
	TokenGraph                // graph keyword
	TokenSubgraph             // subgraph keyword
	TokenNode                 // node keyword
	TokenEdge                 // edge keyword
	TokenLBrace               // {
	TokenRBrace               // }
	TokenLBracket             // [
	TokenRBracket             // ]
	TokenArrow                // ->
	TokenUndirected           // --
	TokenEquals               // =
	TokenComma                // ,
	TokenSemicolon            // ;
	TokenIdentifier           // bare identifier
	TokenString               // double-quoted string
	TokenNumber               // numeral, optionally signed
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenStrict:     "STRICT",
	TokenDigraph:    "DIGRAPH",
	TokenGraph:      "GRAPH",
	TokenSubgraph:   "SUBGRAPH",
	TokenNode:       "NODE",
	TokenEdge:       "EDGE",
	TokenLBrace:     "LBRACE",
	TokenRBrace:     "RBRACE",
	TokenLBracket:   "LBRACKET",
	TokenRBracket:   "RBRACKET",
	TokenArrow:      "ARROW",
	TokenUndirected: "UNDIRECTED",
	TokenEquals:     "EQUALS",
	TokenComma:      "COMMA",
	TokenSemicolon:  "SEMICOLON",
	TokenIdentifier: "IDENTIFIER",
	TokenString:     "STRING",
	TokenNumber:     "NUMBER",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// Token represents a single lexical token with its type, value, and source location.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// keywords are matched case-insensitively, as Graphviz does.
var keywords = map[string]TokenType{
	"strict":   TokenStrict,
	"digraph":  TokenDigraph,
	"graph":    TokenGraph,
	"subgraph": TokenSubgraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
}

type lexer struct {
	input  []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

// Lex tokenizes DOT source. The returned slice always ends with a TokenEOF.
func Lex(input string) ([]Token, error) {
	l := &lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) peekRune(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) scan() error {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case unicode.IsSpace(ch):
			l.advance()

		case ch == '/' && l.peekRune(1) == '/':
			l.skipLine()

		case ch == '#' && l.col == 1:
			// preprocessor-style line, ignored by Graphviz
			l.skipLine()

		case ch == '/' && l.peekRune(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}

		case ch == '"':
			if err := l.lexString(); err != nil {
				return err
			}

		case ch == '-' && l.peekRune(1) == '>':
			l.emitN(TokenArrow, "->", 2)

		case ch == '-' && l.peekRune(1) == '-':
			l.emitN(TokenUndirected, "--", 2)

		case unicode.IsDigit(ch),
			ch == '.' && unicode.IsDigit(l.peekRune(1)),
			ch == '-' && (unicode.IsDigit(l.peekRune(1)) || l.peekRune(1) == '.'):
			l.lexNumber()

		case ch == '_' || unicode.IsLetter(ch):
			l.lexIdentifier()

		default:
			typ, ok := punctuation[ch]
			if !ok {
				return errorAt(l.line, l.col, "unexpected character %q", string(ch))
			}
			l.emitN(typ, string(ch), 1)
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenEOF, Line: l.line, Col: l.col})
	return nil
}

var punctuation = map[rune]TokenType{
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	'=': TokenEquals,
	',': TokenComma,
	';': TokenSemicolon,
}

// advance moves forward one rune, tracking line and column.
func (l *lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// emitN records a token at the current position and consumes n runes.
func (l *lexer) emitN(typ TokenType, value string, n int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Line: l.line, Col: l.col})
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *lexer) skipLine() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

func (l *lexer) skipBlockComment() error {
	startLine, startCol := l.line, l.col
	l.advance()
	l.advance()
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peekRune(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return errorAt(startLine, startCol, "unterminated block comment")
}

// lexString reads a double-quoted string. Only \" and \\ are unescaped; other
// escapes such as \n or \l are Graphviz layout directives and are kept as written.
func (l *lexer) lexString() error {
	startLine, startCol := l.line, l.col
	l.advance()

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\' && (l.peekRune(1) == '"' || l.peekRune(1) == '\\'):
			sb.WriteRune(l.peekRune(1))
			l.advance()
			l.advance()
		case ch == '\\' && l.peekRune(1) == '\n':
			// line continuation
			l.advance()
			l.advance()
		case ch == '"':
			l.advance()
			l.tokens = append(l.tokens, Token{Type: TokenString, Value: sb.String(), Line: startLine, Col: startCol})
			return nil
		default:
			sb.WriteRune(ch)
			l.advance()
		}
	}
	return errorAt(startLine, startCol, "unterminated string")
}

// lexNumber reads a DOT numeral: [-]?(.[0-9]+ | [0-9]+(.[0-9]*)?).
func (l *lexer) lexNumber() {
	startLine, startCol := l.line, l.col
	var sb strings.Builder

	if l.input[l.pos] == '-' {
		sb.WriteByte('-')
		l.advance()
	}
	for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
		sb.WriteRune(l.input[l.pos])
		l.advance()
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		sb.WriteByte('.')
		l.advance()
		for l.pos < len(l.input) && unicode.IsDigit(l.input[l.pos]) {
			sb.WriteRune(l.input[l.pos])
			l.advance()
		}
	}

	l.tokens = append(l.tokens, Token{Type: TokenNumber, Value: sb.String(), Line: startLine, Col: startCol})
}

func (l *lexer) lexIdentifier() {
	startLine, startCol := l.line, l.col
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			break
		}
		sb.WriteRune(ch)
		l.advance()
	}

	word := sb.String()
	typ := TokenIdentifier
	if kw, ok := keywords[strings.ToLower(word)]; ok {
		typ = kw
	}
	l.tokens = append(l.tokens, Token{Type: typ, Value: word, Line: startLine, Col: startCol})
}
