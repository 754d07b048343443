// Package parser implements the recursive-descent parser (F3): F1's
// token stream to F2's surface AST, per the grammar in spec §6.1.
package parser

import (
	"strconv"

	"github.com/korelang/kore/internal/ast"
	"github.com/korelang/kore/internal/errors"
	"github.com/korelang/kore/internal/lexer"
)

// Parser walks a fully-tokenized input with one token of lookahead and
// explicit backtracking for the "(names : domain)" binder-group prefix,
// which is ambiguous with a plain parenthesized term until the colon (or
// its absence) is seen.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse tokenizes and parses src into the ordered list of top-level
// commands it contains.
func Parse(src []byte) ([]ast.Command, error) {
	l := lexer.New(src)
	var toks []lexer.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	p := &Parser{toks: toks}
	var cmds []ast.Command
	for p.cur().Type != lexer.EOF {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != tt {
		return lexer.Token{}, errors.Parsef(errors.PAR001, "unexpected token %s", p.cur())
	}
	return p.advance(), nil
}

// ---- commands ----

func (p *Parser) parseCommand() (ast.Command, error) {
	start := p.cur()
	switch start.Type {
	case lexer.DEF:
		return p.parseDefine(start)
	case lexer.CHECK:
		return p.parseCheck(start)
	case lexer.EVAL:
		p.advance()
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Eval{Term: t}, nil
	case lexer.IMPORT:
		return p.parseImport(start)
	case lexer.SEARCH:
		return p.parseSearch(start)
	}
	return nil, errors.Parsef(errors.PAR001, "unexpected token %s, expected a command", start)
}

func (p *Parser) parseDefine(start lexer.Token) (ast.Command, error) {
	p.advance() // def
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	var univParams []string
	if p.cur().Type == lexer.DOT {
		p.advance()
		if _, err := p.expect(lexer.LBRACE); err != nil {
			return nil, err
		}
		for p.cur().Type == lexer.IDENT {
			univParams = append(univParams, p.advance().Literal)
			if p.cur().Type == lexer.COMMA {
				p.advance()
			}
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return nil, err
		}
	}

	args, err := p.parseArgGroups()
	if err != nil {
		return nil, err
	}

	var typ ast.Term
	if p.cur().Type == lexer.COLON {
		p.advance()
		typ, err = p.parseTerm()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	return ast.Define{
		Name:       nameTok.Literal,
		UnivParams: univParams,
		Args:       args,
		Type:       typ,
		Body:       body,
	}, nil
}

func (p *Parser) parseCheck(start lexer.Token) (ast.Command, error) {
	p.advance() // check
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.COLON {
		p.advance()
		typ, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.CheckType{Term: t, Type: typ}, nil
	}
	return ast.GetType{Term: t}, nil
}

func (p *Parser) parseImport(start lexer.Token) (ast.Command, error) {
	p.advance() // import
	var files []string
	for p.cur().Type == lexer.IDENT {
		name := p.advance().Literal
		// A dotted file name such as sub.kore lexes as IDENT DOT IDENT.
		for p.cur().Type == lexer.DOT && p.pos+1 < len(p.toks) && p.toks[p.pos+1].Type == lexer.IDENT {
			p.advance() // .
			name += "." + p.advance().Literal
		}
		files = append(files, name)
	}
	if len(files) == 0 {
		return nil, errors.Parsef(errors.PAR001, "expected at least one filename after import, got %s", p.cur())
	}
	return ast.Import{Files: files}, nil
}

func (p *Parser) parseSearch(start lexer.Token) (ast.Command, error) {
	p.advance() // search
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return ast.Search{Name: nameTok.Literal}, nil
}

// ---- binder groups ----

// tryBinderGroup attempts to parse one "(name1 name2 ... : domain)" group
// at the current position. ok is false with no tokens consumed when the
// input does not look like a binder group at all (so the caller can fall
// back to parsing a plain parenthesized term); once a colon is seen
// inside the parens the parse is committed, and any further failure is a
// real error rather than a silent backtrack.
func (p *Parser) tryBinderGroup() (names []string, domain ast.Term, ok bool, err error) {
	if p.cur().Type != lexer.LPAREN {
		return nil, nil, false, nil
	}
	save := p.pos
	p.advance()
	for p.cur().Type == lexer.IDENT {
		names = append(names, p.advance().Literal)
	}
	if len(names) == 0 || p.cur().Type != lexer.COLON {
		p.pos = save
		return nil, nil, false, nil
	}
	p.advance() // colon
	domain, err = p.parseTerm()
	if err != nil {
		return nil, nil, false, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, nil, false, errors.Parsef(errors.PAR002, "unterminated binder group: %v", err)
	}
	return names, domain, true, nil
}

func (p *Parser) parseArgGroups() ([]ast.Arg, error) {
	var args []ast.Arg
	for {
		names, domain, ok, err := p.tryBinderGroup()
		if err != nil {
			return nil, err
		}
		if !ok {
			return args, nil
		}
		for _, n := range names {
			args = append(args, ast.Arg{Name: n, Domain: domain})
		}
	}
}

// ---- terms ----

func (p *Parser) parseTerm() (ast.Term, error) {
	switch p.cur().Type {
	case lexer.FUN:
		return p.parseFun()
	case lexer.LPAREN:
		groupNames, groupDomains, ok, err := p.tryBinderGroupChain()
		if err != nil {
			return nil, err
		}
		if ok {
			if p.cur().Type != lexer.ARROW {
				return nil, errors.Parsef(errors.PAR003, "invalid binder group: expected -> after (%v : ...), got %s", groupNames, p.cur())
			}
			p.advance() // ->
			cod, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			return buildProdChain(groupNames, groupDomains, cod), nil
		}
	}
	return p.parseArrow()
}

// tryBinderGroupChain parses consecutive binder groups, e.g.
// "(x y: A) (z: B)", used at the head of a dependent product. Returns
// ok=false (no tokens consumed) if the very first group attempt fails to
// look like a binder group.
func (p *Parser) tryBinderGroupChain() (names [][]string, domains []ast.Term, ok bool, err error) {
	for {
		grpNames, domain, grpOk, err := p.tryBinderGroup()
		if err != nil {
			return nil, nil, false, err
		}
		if !grpOk {
			return names, domains, len(names) > 0, nil
		}
		names = append(names, grpNames)
		domains = append(domains, domain)
	}
}

func buildProdChain(names [][]string, domains []ast.Term, cod ast.Term) ast.Term {
	result := cod
	for gi := len(names) - 1; gi >= 0; gi-- {
		group, domain := names[gi], domains[gi]
		for ni := len(group) - 1; ni >= 0; ni-- {
			result = ast.TProd{Param: group[ni], Domain: domain, Codomain: result}
		}
	}
	return result
}

func buildAbsChain(names [][]string, domains []ast.Term, body ast.Term) ast.Term {
	result := body
	for gi := len(names) - 1; gi >= 0; gi-- {
		group, domain := names[gi], domains[gi]
		for ni := len(group) - 1; ni >= 0; ni-- {
			result = ast.TAbs{Param: group[ni], Domain: domain, Body: result}
		}
	}
	return result
}

func (p *Parser) parseFun() (ast.Term, error) {
	p.advance() // fun
	names, domains, ok, err := p.tryBinderGroupChain()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Parsef(errors.PAR003, "expected at least one binder group after fun, got %s", p.cur())
	}
	if _, err := p.expect(lexer.FARROW); err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return buildAbsChain(names, domains, body), nil
}

// parseArrow handles plain (non-dependent) arrows and application; the
// dependent-binder-group case is peeled off in parseTerm before this is
// reached.
func (p *Parser) parseArrow() (ast.Term, error) {
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.ARROW {
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.TProd{Param: "_", Domain: left, Codomain: right}, nil
	}
	return left, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur().Type {
	case lexer.IDENT, lexer.PROP, lexer.TYPE, lexer.SORT, lexer.LPAREN:
		return true
	}
	return false
}

func (p *Parser) parseApp() (ast.Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = ast.TApp{Fn: left, Arg: arg}
	}
	return left, nil
}

func (p *Parser) parseAtom() (ast.Term, error) {
	switch p.cur().Type {
	case lexer.PROP:
		p.advance()
		return ast.TSort{Level: ast.LENat{N: 0}}, nil

	case lexer.TYPE:
		p.advance()
		lvl, err := p.parseLevelAtom()
		if err != nil {
			return nil, err
		}
		return ast.TSort{Level: ast.LEPlus{Base: lvl, N: 1}}, nil

	case lexer.SORT:
		p.advance()
		lvl, err := p.parseLevelExpr()
		if err != nil {
			return nil, err
		}
		return ast.TSort{Level: lvl}, nil

	case lexer.IDENT:
		nameTok := p.advance()
		if p.cur().Type == lexer.DOT {
			save := p.pos
			p.advance() // .
			if p.cur().Type == lexer.LBRACE {
				p.advance()
				var levels []ast.LevelExpr
				for p.cur().Type != lexer.RBRACE {
					lvl, err := p.parseLevelExpr()
					if err != nil {
						return nil, err
					}
					levels = append(levels, lvl)
					if p.cur().Type == lexer.COMMA {
						p.advance()
					}
				}
				p.advance() // }
				return ast.TRef{Name: nameTok.Literal, Levels: levels}, nil
			}
			p.pos = save
		}
		return ast.TVar{Name: nameTok.Literal}, nil

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, errors.Parsef(errors.PAR002, "unterminated group: %v", err)
		}
		return inner, nil
	}
	return nil, errors.Parsef(errors.PAR001, "unexpected token %s, expected a term", p.cur())
}

// ---- universe-level expressions ----

func (p *Parser) parseLevelExpr() (ast.LevelExpr, error) {
	if p.cur().Type == lexer.IDENT && (p.cur().Literal == "max" || p.cur().Literal == "imax") {
		op := p.advance().Literal
		var left, right ast.LevelExpr
		var err error
		if p.cur().Type == lexer.LPAREN {
			p.advance()
			left, err = p.parseLevelExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COMMA); err != nil {
				return nil, err
			}
			right, err = p.parseLevelExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
		} else {
			left, err = p.parseLevelAtom()
			if err != nil {
				return nil, err
			}
			right, err = p.parseLevelAtom()
			if err != nil {
				return nil, err
			}
		}
		if op == "max" {
			return ast.LEMax{Left: left, Right: right}, nil
		}
		return ast.LEIMax{Left: left, Right: right}, nil
	}
	return p.parseLevelPlus()
}

func (p *Parser) parseLevelPlus() (ast.LevelExpr, error) {
	base, err := p.parseLevelAtom()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == lexer.PLUS {
		p.advance()
		nTok, err := p.expect(lexer.INT)
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(nTok.Literal)
		if convErr != nil {
			return nil, errors.Parsef(errors.PAR004, "invalid universe literal: %s", nTok.Literal)
		}
		return ast.LEPlus{Base: base, N: n}, nil
	}
	return base, nil
}

func (p *Parser) parseLevelAtom() (ast.LevelExpr, error) {
	switch p.cur().Type {
	case lexer.INT:
		tok := p.advance()
		n, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return nil, errors.Parsef(errors.PAR004, "invalid universe literal: %s", tok.Literal)
		}
		return ast.LENat{N: n}, nil
	case lexer.IDENT:
		tok := p.advance()
		return ast.LEVar{Name: tok.Literal}, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseLevelExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, errors.Parsef(errors.PAR004, "invalid universe expression at %s", p.cur())
}
