// Package parser implements a small recursive-descent parser over
// internal/lexer's token stream, producing internal/ast nodes. It
// follows the teacher's parser shape (one token of lookahead, a
// dedicated function per grammar production) scaled down to the
// kernel's minimal prefix dialect: Π/λ spelled "Pi"/"fun", application
// by juxtaposition, "->" sugar for a non-dependent product, and one
// top-level command per spec.md §6 entry.
package parser

import (
	"fmt"

	"github.com/lambdapi-go/kernel/internal/ast"
	"github.com/lambdapi-go/kernel/internal/lexer"
)

type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func pos(t lexer.Token) ast.Pos { return ast.Pos{Line: t.Line, Column: t.Column} }

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, fmt.Errorf("parser: line %d: expected %s, got %q", p.cur.Line, what, p.cur.Lexeme)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// ParseProgram parses every top-level decl until EOF.
func (p *Parser) ParseProgram() ([]ast.Decl, error) {
	var decls []ast.Decl
	for p.cur.Type != lexer.EOF {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	switch p.cur.Type {
	case lexer.KW_STATIC, lexer.KW_DEFINABLE:
		return p.parseNewSymbol()
	case lexer.KW_DEF:
		return p.parseDefine()
	case lexer.KW_RULES:
		return p.parseAddRules()
	case lexer.KW_CHECK:
		return p.parseCheck()
	case lexer.KW_INFER:
		return p.parseInfer()
	case lexer.KW_EVAL:
		return p.parseEval()
	case lexer.KW_CONVERTIBLE:
		return p.parseConvertible()
	default:
		return nil, fmt.Errorf("parser: line %d: unexpected token %q at top level", p.cur.Line, p.cur.Lexeme)
	}
}

func (p *Parser) parseNewSymbol() (ast.Decl, error) {
	start := p.cur
	definable := p.cur.Type == lexer.KW_DEFINABLE
	p.next()
	name, err := p.expect(lexer.IDENT, "symbol name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, `":"`); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.NewSymbol{Pos: pos(start), Name: name.Lexeme, Type: ty, Definable: definable}, nil
}

func (p *Parser) parseDefine() (ast.Decl, error) {
	start := p.cur
	p.next()
	name, err := p.expect(lexer.IDENT, "definition name")
	if err != nil {
		return nil, err
	}
	var ty ast.Expr
	if p.cur.Type == lexer.COLON {
		p.next()
		ty, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.ASSIGN, `":="`); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.Define{Pos: pos(start), Name: name.Lexeme, Type: ty, Body: body}, nil
}

// parseAddRules parses one rule per "rules" command: an optional
// parenthesised context, a left-hand side, "->", and a right-hand
// side. A frontend issues one command per rule, which is a valid
// (length-one) instance of §6's add_rules([rule …]).
func (p *Parser) parseAddRules() (ast.Decl, error) {
	start := p.cur
	p.next()

	var ctx []ast.Param
	for p.cur.Type == lexer.LPAREN {
		p.next()
		nameTok, err := p.expect(lexer.IDENT, "context variable name")
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: nameTok.Lexeme}
		if p.cur.Type == lexer.COLON {
			p.next()
			ty, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			param.Type = ty
		}
		if _, err := p.expect(lexer.RPAREN, `")"`); err != nil {
			return nil, err
		}
		ctx = append(ctx, param)
	}

	lhs, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW, `"->"`); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.AddRules{Pos: pos(start), Rules: []ast.Rule{{Pos: pos(start), Context: ctx, LHS: lhs, RHS: rhs}}}, nil
}

func (p *Parser) parseCheck() (ast.Decl, error) {
	start := p.cur
	p.next()
	term, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, `":"`); err != nil {
		return nil, err
	}
	ty, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.Check{Pos: pos(start), Term: term, Type: ty}, nil
}

func (p *Parser) parseInfer() (ast.Decl, error) {
	start := p.cur
	p.next()
	term, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.Infer{Pos: pos(start), Term: term}, nil
}

func (p *Parser) parseEval() (ast.Decl, error) {
	start := p.cur
	p.next()
	term, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.Eval{Pos: pos(start), Term: term}, nil
}

func (p *Parser) parseConvertible() (ast.Decl, error) {
	start := p.cur
	p.next()
	t, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	u, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	return &ast.Convertible{Pos: pos(start), T: t, U: u}, nil
}

// parseExpr parses an application, then "->" right-associatively into
// a non-dependent Pi.
func (p *Parser) parseExpr() (ast.Expr, error) {
	lhs, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.ARROW {
		arrowPos := pos(p.cur)
		p.next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Pi{Pos: arrowPos, Name: "_", Dom: lhs, Cod: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseApp() (ast.Expr, error) {
	fn, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Pos: fn.Position(), Fun: fn, Arg: arg}
	}
	return fn, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur.Type {
	case lexer.IDENT, lexer.LPAREN, lexer.KW_TYPE, lexer.KW_KIND, lexer.KW_PI, lexer.KW_FUN, lexer.UNDERSCORE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	switch p.cur.Type {
	case lexer.KW_TYPE:
		t := p.cur
		p.next()
		return &ast.TypeSort{Pos: pos(t)}, nil
	case lexer.KW_KIND:
		t := p.cur
		p.next()
		return &ast.KindSort{Pos: pos(t)}, nil
	case lexer.IDENT:
		t := p.cur
		p.next()
		return &ast.Ident{Pos: pos(t), Name: t.Lexeme}, nil
	case lexer.UNDERSCORE:
		t := p.cur
		p.next()
		return &ast.Wildcard{Pos: pos(t)}, nil
	case lexer.LPAREN:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, `")"`); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.KW_PI:
		return p.parseBinder(true)
	case lexer.KW_FUN:
		return p.parseBinder(false)
	default:
		return nil, fmt.Errorf("parser: line %d: unexpected token %q in expression", p.cur.Line, p.cur.Lexeme)
	}
}

func (p *Parser) parseBinder(isPi bool) (ast.Expr, error) {
	start := p.cur
	p.next()
	if _, err := p.expect(lexer.LPAREN, `"("`); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT, "bound variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON, `":"`); err != nil {
		return nil, err
	}
	dom, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, `")"`); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.DOT, `"."`); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if isPi {
		return &ast.Pi{Pos: pos(start), Name: name.Lexeme, Dom: dom, Cod: body}, nil
	}
	return &ast.Fun{Pos: pos(start), Name: name.Lexeme, Dom: dom, Body: body}, nil
}
