package parser

import (
	"github.com/kharelang/kc/ast"
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// parseStatement implements "Statement dispatch": absorb any
// incase/static specifier prefix, then switch on the current keyword.
func (p *Parser) parseStatement() ast.Stmt {
	begin := p.cur().Pos

	isIncase, isStatic := false, false
	for {
		if p.isKeyword(token.INCASE) {
			p.advance()
			isIncase = true
			continue
		}
		if p.isKeyword(token.STATIC) {
			p.advance()
			isStatic = true
			continue
		}
		break
	}

	noSpecifier := func() {
		if isIncase || isStatic {
			p.errorf(begin, "specifier not allowed here")
		}
	}

	t := p.cur()
	switch {
	case t.Kind == token.KEYWORD && t.Keyword == token.IMPORT:
		noSpecifier()
		return p.parseImportStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.INCLUDE:
		noSpecifier()
		return p.parseIncludeStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.DEF && p.peek(1).Kind == token.IDENTIFIER:
		// `def name...` is a function definition; `def(` and `def!` fall
		// through to the expression statement (lambda / function type).
		return p.parseFunctionStmt(begin, isIncase, isStatic)
	case t.Kind == token.KEYWORD && (t.Keyword == token.CLASS || t.Keyword == token.STRUCT):
		return p.parseClassStmt(begin, isIncase, isStatic)
	case t.Kind == token.KEYWORD && t.Keyword == token.ENUM:
		noSpecifier()
		return p.parseEnumStmt(begin, isIncase)
	case t.Kind == token.KEYWORD && t.Keyword == token.ALIAS:
		return p.parseAliasStmt(begin, isIncase, isStatic)
	case t.Kind == token.KEYWORD && t.Keyword == token.IF:
		noSpecifier()
		return p.parseIfStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.FOR:
		noSpecifier()
		return p.parseForStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.WHILE:
		noSpecifier()
		return p.parseWhileStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.DO:
		noSpecifier()
		return p.parseDoWhileStmt(begin)
	case t.Kind == token.KEYWORD && t.Keyword == token.BREAK:
		noSpecifier()
		p.advance()
		s := &ast.BreakStmt{}
		s.SetSpan(begin, p.lastEnd())
		p.expectTerminator(begin)
		return s
	case t.Kind == token.KEYWORD && t.Keyword == token.CONTINUE:
		noSpecifier()
		p.advance()
		s := &ast.ContinueStmt{}
		s.SetSpan(begin, p.lastEnd())
		p.expectTerminator(begin)
		return s
	case t.Kind == token.KEYWORD && t.Keyword == token.RETURN:
		noSpecifier()
		return p.parseReturnStmt(begin)
	default:
		noSpecifier()
		x := p.parseExpression()
		s := &ast.ExprStmt{X: x}
		s.SetSpan(begin, p.lastEnd())
		p.expectTerminator(begin)
		return s
	}
}

func (p *Parser) lastEnd() diag.Position {
	if p.pos == 0 {
		return diag.Position{Line: 1, Column: 1}
	}
	return p.toks[p.pos-1].End
}

func (p *Parser) parseImportStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'import'
	relative := false
	if p.isDelim(token.DOT) {
		p.advance()
		relative = true
	}
	path := p.parseDottedPath()
	alias := ""
	if p.isKeyword(token.AS) {
		p.advance()
		name, _, _ := p.expectIdentifier()
		alias = name
	}
	s := &ast.ImportStmt{Relative: relative, Path: path, Alias: alias}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

func (p *Parser) parseIncludeStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'include'
	relative := false
	if p.isDelim(token.DOT) {
		p.advance()
		relative = true
	}
	path := p.parseDottedPath()
	s := &ast.IncludeStmt{Relative: relative, Path: path}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

func (p *Parser) parseDottedPath() []string {
	var path []string
	name, _, ok := p.expectIdentifier()
	if !ok {
		return path
	}
	path = append(path, name)
	for p.isDelim(token.DOT) {
		p.advance()
		name, _, ok := p.expectIdentifier()
		if !ok {
			break
		}
		path = append(path, name)
	}
	return path
}

// parseFunctionStmt implements "[incase] [static] def head(params, ...)
// [-> [ref] type] { body }".
func (p *Parser) parseFunctionStmt(begin diag.Position, isIncase, isStatic bool) ast.Stmt {
	p.advance() // 'def'

	head := p.parseFunctionHead()

	p.expectDelimiter(token.PAREN_OPEN, "'('")
	p.bracketDepth++
	params, variadic := p.parseParamList()
	p.bracketDepth--
	p.expectDelimiter(token.PAREN_CLOSE, "')'")

	isReturnRef := false
	var returnType ast.Expr
	if p.isDelim(token.ARROW) {
		p.advance()
		if p.isKeyword(token.REF) {
			p.advance()
			isReturnRef = true
		}
		returnType = p.parseTypeExpression()
	}

	body := p.parseBlock()

	s := &ast.FunctionStmt{
		IsIncase: isIncase, IsStatic: isStatic, Head: head,
		Params: params, Variadic: variadic,
		IsReturnRef: isReturnRef, ReturnType: returnType, Body: body,
	}
	s.SetSpan(begin, p.lastEnd())
	return s
}

// parseParamList reads a comma-separated list of variable-declaration
// parameters, with an optional trailing `...name` variadic parameter.
func (p *Parser) parseParamList() (params []*ast.VarDecl, variadic *ast.VarDecl) {
	for !p.isDelim(token.PAREN_CLOSE) && p.cur().Kind != token.EOF {
		if p.isDelim(token.ELLIPSIS) {
			pos := p.advance().Pos
			name, _, _ := p.expectIdentifier()
			v := &ast.VarDecl{Name: name}
			v.SetSpan(pos, p.lastEnd())
			variadic = v
		} else {
			params = append(params, p.parseVarDecl())
		}
		if p.isDelim(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return
}

func (p *Parser) parseReturnStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'return'
	var value ast.Expr
	if !atStatementEnd(p.cur()) {
		value = p.parseExpression()
	}
	s := &ast.ReturnStmt{Value: value}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

func atStatementEnd(t token.Token) bool {
	if t.Kind == token.NEWLINE || t.Kind == token.EOF {
		return true
	}
	return t.Kind == token.DELIMITER && (t.Delimiter == token.SEMICOLON || t.Delimiter == token.CURLY_CLOSE)
}

// parseClassStmt implements "[incase] [static] (class|struct) Name [!T |
// !(T, ...)] [(BaseType)] { body }".
func (p *Parser) parseClassStmt(begin diag.Position, isIncase, isStatic bool) ast.Stmt {
	isStruct := p.cur().Keyword == token.STRUCT
	p.advance()

	name, _, _ := p.expectIdentifier()

	var templateParams []string
	if p.isDelim(token.BANG) {
		p.advance()
		if p.isDelim(token.PAREN_OPEN) {
			p.advance()
			p.bracketDepth++
			for !p.isDelim(token.PAREN_CLOSE) && p.cur().Kind != token.EOF {
				n, _, _ := p.expectIdentifier()
				templateParams = append(templateParams, n)
				if p.isDelim(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.bracketDepth--
			p.expectDelimiter(token.PAREN_CLOSE, "')'")
		} else {
			n, _, _ := p.expectIdentifier()
			templateParams = append(templateParams, n)
		}
	}

	var base ast.Expr
	if p.isDelim(token.PAREN_OPEN) {
		p.advance()
		p.bracketDepth++
		base = p.parseTypeExpression()
		p.bracketDepth--
		p.expectDelimiter(token.PAREN_CLOSE, "')'")
	}

	body := p.parseBlock()

	s := &ast.ClassStmt{
		IsIncase: isIncase, IsStatic: isStatic, IsStruct: isStruct,
		Name: name, TemplateParams: templateParams, Base: base, Body: body,
	}
	s.SetSpan(begin, p.lastEnd())
	return s
}

// parseEnumStmt implements "enum Name { member (, member)* }".
func (p *Parser) parseEnumStmt(begin diag.Position, isIncase bool) ast.Stmt {
	p.advance() // 'enum'
	name, _, _ := p.expectIdentifier()
	p.expectDelimiter(token.CURLY_OPEN, "'{'")
	p.bracketDepth++
	var members []string
	for !p.isDelim(token.CURLY_CLOSE) && p.cur().Kind != token.EOF {
		m, _, ok := p.expectIdentifier()
		if !ok {
			break
		}
		members = append(members, m)
		if p.isDelim(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.bracketDepth--
	p.expectDelimiter(token.CURLY_CLOSE, "'}'")
	s := &ast.EnumStmt{IsIncase: isIncase, Name: name, Members: members}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

// parseAliasStmt implements "[incase] [static] alias Name expression".
func (p *Parser) parseAliasStmt(begin diag.Position, isIncase, isStatic bool) ast.Stmt {
	p.advance() // 'alias'
	name, _, _ := p.expectIdentifier()
	value := p.parseExpression()
	s := &ast.AliasStmt{IsIncase: isIncase, IsStatic: isStatic, Name: name, Value: value}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

// parseIfStmt implements "if C { ... } (elif C { ... })* [else { ... }]".
func (p *Parser) parseIfStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'if'
	var conds []ast.Expr
	var bodies []*ast.BlockStmt

	p.bracketDepth++
	cond := p.parseExpression()
	p.bracketDepth--
	conds = append(conds, cond)
	bodies = append(bodies, p.parseBlock())

	for p.isKeyword(token.ELIF) {
		p.advance()
		p.bracketDepth++
		cond := p.parseExpression()
		p.bracketDepth--
		conds = append(conds, cond)
		bodies = append(bodies, p.parseBlock())
	}

	var elseBody *ast.BlockStmt
	if p.isKeyword(token.ELSE) {
		p.advance()
		elseBody = p.parseBlock()
	}

	s := &ast.IfStmt{Conds: conds, Bodies: bodies, Else: elseBody}
	s.SetSpan(begin, p.lastEnd())
	return s
}

func (p *Parser) parseWhileStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'while'
	p.bracketDepth++
	cond := p.parseExpression()
	p.bracketDepth--
	body := p.parseBlock()
	s := &ast.WhileStmt{Cond: cond, Body: body}
	s.SetSpan(begin, p.lastEnd())
	return s
}

func (p *Parser) parseDoWhileStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'do'
	body := p.parseBlock()
	p.expectKeyword(token.WHILE, "'while'")
	cond := p.parseExpression()
	s := &ast.DoWhileStmt{Body: body, Cond: cond}
	s.SetSpan(begin, p.lastEnd())
	p.expectTerminator(begin)
	return s
}

// parseForStmt implements both the classical "for E1, E2, E3 { body }" and
// for-each "for E1 [, E2 ...] in iteratee { body }" forms, disambiguated
// by reading the comma-separated expressions and checking
// for a following 'in'.
func (p *Parser) parseForStmt(begin diag.Position) ast.Stmt {
	p.advance() // 'for'

	p.bracketDepth++
	var exprs []ast.Expr
	exprs = append(exprs, p.parseExpression())
	for p.isDelim(token.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseExpression())
	}

	if p.isKeyword(token.IN) {
		p.advance()
		iteratee := p.parseExpression()
		p.bracketDepth--
		body := p.parseBlock()
		s := &ast.ForEachStmt{Iterators: exprs, Iteratee: iteratee, Body: body}
		s.SetSpan(begin, p.lastEnd())
		return s
	}
	p.bracketDepth--

	if len(exprs) != 3 {
		p.errorf(begin, "classical for loop requires exactly 3 control expressions, got %d", len(exprs))
		for len(exprs) < 3 {
			placeholder := &ast.InvalidExpr{Reason: "missing for-loop control expression"}
			placeholder.SetSpan(begin, begin)
			exprs = append(exprs, placeholder)
		}
	}
	body := p.parseBlock()
	s := &ast.ForStmt{Init: exprs[0], Cond: exprs[1], Step: exprs[2], Body: body}
	s.SetSpan(begin, p.lastEnd())
	return s
}

// parseBlock implements the `{ ... }` block: a sequence of statements, each
// separated by significant newlines/semicolons, framed by braces that may
// themselves be preceded or followed by blank lines. EOF inside a block is
// a diagnostic, not a silent stop.
func (p *Parser) parseBlock() *ast.BlockStmt {
	open, _ := p.expectDelimiter(token.CURLY_OPEN, "'{'")
	savedDepth := p.bracketDepth
	p.bracketDepth = 0 // block bodies are newline-sensitive even inside brackets
	var stmts []ast.Stmt
	for {
		p.skipStatementSeparators()
		if p.isDelim(token.CURLY_CLOSE) {
			break
		}
		if p.cur().Kind == token.EOF {
			p.errorf(open.Pos, "unterminated block: reached end of input")
			break
		}
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		if p.pos == before {
			p.advance()
		}
	}
	p.bracketDepth = savedDepth
	closeTok, _ := p.expectDelimiter(token.CURLY_CLOSE, "'}'")
	b := &ast.BlockStmt{Stmts: stmts}
	b.SetSpan(open.Pos, closeTok.End)
	return b
}
