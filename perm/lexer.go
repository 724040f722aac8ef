package perm

import (
	"fmt"
	"unicode"
)

// TokenType classifies lexer tokens.
type TokenType int

const (
	TokEOF TokenType = iota
	TokLParen
	TokRParen
	TokSymbol
)

// Token is a single lexer token. Pos is the byte offset in the input.
type Token struct {
	Type TokenType
	Val  rune
	Pos  int
}

// Lex tokenizes a cycle-notation string such as "(AELT) (BKNW)".
func Lex(input string) ([]Token, error) {
	var tokens []Token
	for i, ch := range input {
		switch {
		case unicode.IsSpace(ch):
			continue
		case ch == '(':
			tokens = append(tokens, Token{TokLParen, ch, i})
		case ch == ')':
			tokens = append(tokens, Token{TokRParen, ch, i})
		case unicode.IsLetter(ch) || unicode.IsDigit(ch):
			tokens = append(tokens, Token{TokSymbol, ch, i})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}
	tokens = append(tokens, Token{TokEOF, 0, len(input)})
	return tokens, nil
}

// parseCycles groups tokens into cycles. Parentheses must balance and may not
// nest; every symbol must sit inside a cycle.
func parseCycles(tokens []Token) ([][]rune, error) {
	var (
		cycles [][]rune
		cur    []rune
		open   = -1
	)
	for _, tok := range tokens {
		switch tok.Type {
		case TokLParen:
			if open >= 0 {
				return nil, fmt.Errorf("nested '(' at position %d", tok.Pos)
			}
			open = tok.Pos
			cur = nil
		case TokRParen:
			if open < 0 {
				return nil, fmt.Errorf("unbalanced ')' at position %d", tok.Pos)
			}
			cycles = append(cycles, cur)
			open = -1
		case TokSymbol:
			if open < 0 {
				return nil, fmt.Errorf("symbol %q at position %d is outside a cycle", tok.Val, tok.Pos)
			}
			cur = append(cur, tok.Val)
		case TokEOF:
			if open >= 0 {
				return nil, fmt.Errorf("unclosed '(' at position %d", open)
			}
		}
	}
	return cycles, nil
}
