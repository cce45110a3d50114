package parser

import (
	"github.com/kharelang/kc/ast"
	"github.com/kharelang/kc/diag"
	"github.com/kharelang/kc/token"
)

// parseExpression is the entry point into the 17-level precedence ladder,
// starting at level 1 (assignment, the loosest-binding level).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseLevel1()
}

// parseTypeExpression parses a type in "type position" (variable
// declarations, return types, base classes, template arguments). Types are
// always postfix/atom productions — a bare name, a scoped name, or a
// templatized name — so this enters the ladder at level 16 rather than
// level 1, and sets typeFilterDepth so parseAtom rejects value-only
// productions (strings, buffers, float literals, lambdas, array/dict
// literals) while in this "type-filter mode". Integer literals are
// accepted.
func (p *Parser) parseTypeExpression() ast.Expr {
	p.typeFilterDepth++
	defer func() { p.typeFilterDepth-- }()
	return p.parseLevel16()
}

// --- level 1: assignment (right-associative) ---

var assignOps = map[token.Operator]ast.AssignOp{
	token.ASSIGN:         ast.AssignPlain,
	token.PLUS_ASSIGN:    ast.AssignAdd,
	token.MINUS_ASSIGN:   ast.AssignSub,
	token.STAR_ASSIGN:    ast.AssignMul,
	token.SLASH_ASSIGN:   ast.AssignDiv,
	token.PERCENT_ASSIGN: ast.AssignMod,
	token.POW_ASSIGN:     ast.AssignPow,
	token.DOT_ASSIGN:     ast.AssignDot,
	token.AND_ASSIGN:     ast.AssignAnd,
	token.OR_ASSIGN:      ast.AssignOr,
	token.XOR_ASSIGN:     ast.AssignXor,
	token.NOT_ASSIGN:     ast.AssignNot,
	token.SHL_ASSIGN:     ast.AssignShl,
	token.SHR_ASSIGN:     ast.AssignShr,
}

func (p *Parser) parseLevel1() ast.Expr {
	begin := p.cur().Pos
	left := p.parseLevel2()
	t := p.cur()
	if t.Kind != token.OPERATOR {
		return left
	}
	op, ok := assignOps[t.Operator]
	if !ok {
		return left
	}
	p.advance()
	right := p.parseLevel1() // right-associative
	n := &ast.AssignExpr{Op: op, Target: left, Value: right}
	n.SetSpan(begin, p.lastEnd())
	return n
}

// --- level 2: ternary `Value if Cond else Else` ---

func (p *Parser) parseLevel2() ast.Expr {
	begin := p.cur().Pos
	value := p.parseLevel3()
	if p.inTypeFilter() {
		return value
	}
	if !p.isKeyword(token.IF) {
		return value
	}
	p.advance()
	cond := p.parseLevel3()
	if _, ok := p.expectKeyword(token.ELSE, "'else'"); !ok {
		n := &ast.TernaryExpr{Value: value, Cond: cond, Else: &ast.InvalidExpr{Reason: "missing else in ternary"}}
		n.SetSpan(begin, p.lastEnd())
		return n
	}
	elseVal := p.parseLevel2()
	n := &ast.TernaryExpr{Value: value, Cond: cond, Else: elseVal}
	n.SetSpan(begin, p.lastEnd())
	return n
}

func (p *Parser) inTypeFilter() bool { return p.typeFilterDepth > 0 }

// --- levels 3-5: or / xor / and (word operators, left-associative) ---

func (p *Parser) parseLevel3() ast.Expr { return p.parseWordBinary(token.OR, ast.BinOr, p.parseLevel4) }
func (p *Parser) parseLevel4() ast.Expr { return p.parseWordBinary(token.XOR, ast.BinXor, p.parseLevel5) }
func (p *Parser) parseLevel5() ast.Expr { return p.parseWordBinary(token.AND, ast.BinAnd, p.parseLevel6) }

func (p *Parser) parseWordBinary(kw token.Keyword, op ast.BinaryOp, next func() ast.Expr) ast.Expr {
	begin := p.cur().Pos
	left := next()
	for p.isKeyword(kw) {
		p.advance()
		right := next()
		n := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		left = n
	}
	return left
}

// --- level 6: logical not (prefix, word operator) ---

func (p *Parser) parseLevel6() ast.Expr {
	if p.isKeyword(token.NOT) && !p.inTypeFilter() {
		begin := p.advance().Pos
		operand := p.parseLevel6()
		n := &ast.UnaryExpr{Op: ast.UnLogicalNot, Operand: operand}
		n.SetSpan(begin, p.lastEnd())
		return n
	}
	return p.parseLevel7()
}

// --- level 7: comparison chain `a < b < c` ---

var comparisonOps = map[token.Operator]ast.BinaryOp{
	token.EQ: ast.BinEq, token.NE: ast.BinNe,
	token.LT: ast.BinLt, token.GT: ast.BinGt,
	token.LE: ast.BinLe, token.GE: ast.BinGe,
}

func (p *Parser) parseLevel7() ast.Expr {
	begin := p.cur().Pos
	first := p.parseLevel8()
	operands := []ast.Expr{first}
	var ops []ast.BinaryOp
	for {
		t := p.cur()
		if t.Kind != token.OPERATOR {
			break
		}
		op, ok := comparisonOps[t.Operator]
		if !ok {
			break
		}
		p.advance()
		ops = append(ops, op)
		operands = append(operands, p.parseLevel8())
	}
	if len(ops) == 0 {
		return first
	}
	n := &ast.ComparisonExpr{Ops: ops, Operands: operands}
	n.SetSpan(begin, p.lastEnd())
	return n
}

// --- levels 8-10: bitwise or / xor / and ---

func (p *Parser) parseLevel8() ast.Expr {
	return p.parseOpBinary(token.BIT_OR, ast.BinBitOr, p.parseLevel9)
}
func (p *Parser) parseLevel9() ast.Expr {
	return p.parseOpBinary(token.BIT_XOR, ast.BinBitXor, p.parseLevel10)
}
func (p *Parser) parseLevel10() ast.Expr {
	return p.parseOpBinary(token.BIT_AND, ast.BinBitAnd, p.parseLevel11)
}

// --- level 11: shift ---

func (p *Parser) parseLevel11() ast.Expr {
	begin := p.cur().Pos
	left := p.parseLevel12()
	for {
		t := p.cur()
		var op ast.BinaryOp
		switch {
		case t.Kind == token.OPERATOR && t.Operator == token.SHL:
			op = ast.BinShl
		case t.Kind == token.OPERATOR && t.Operator == token.SHR:
			op = ast.BinShr
		default:
			return left
		}
		p.advance()
		right := p.parseLevel12()
		n := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		left = n
	}
}

// --- level 12: additive ---

func (p *Parser) parseLevel12() ast.Expr {
	begin := p.cur().Pos
	left := p.parseLevel13()
	for {
		t := p.cur()
		var op ast.BinaryOp
		switch {
		case t.Kind == token.OPERATOR && t.Operator == token.PLUS:
			op = ast.BinAdd
		case t.Kind == token.OPERATOR && t.Operator == token.MINUS:
			op = ast.BinSub
		default:
			return left
		}
		p.advance()
		right := p.parseLevel13()
		n := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		left = n
	}
}

// --- level 13: multiplicative ---

func (p *Parser) parseLevel13() ast.Expr {
	begin := p.cur().Pos
	left := p.parseLevel14()
	for {
		t := p.cur()
		var op ast.BinaryOp
		switch {
		case t.Kind == token.OPERATOR && t.Operator == token.STAR:
			op = ast.BinMul
		case t.Kind == token.OPERATOR && t.Operator == token.SLASH:
			op = ast.BinDiv
		case t.Kind == token.OPERATOR && t.Operator == token.PERCENT:
			op = ast.BinMod
		default:
			return left
		}
		p.advance()
		right := p.parseLevel14()
		n := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		left = n
	}
}

// --- level 14: power (right-associative) ---

func (p *Parser) parseLevel14() ast.Expr {
	begin := p.cur().Pos
	left := p.parseLevel15()
	if p.isOperator(token.POW) {
		p.advance()
		right := p.parseLevel14() // right-associative
		n := &ast.BinaryExpr{Op: ast.BinPow, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		return n
	}
	return left
}

// --- level 15: prefix unary ---

func (p *Parser) parseLevel15() ast.Expr {
	begin := p.cur().Pos
	t := p.cur()
	var op ast.UnaryOp
	switch {
	case t.Kind == token.OPERATOR && t.Operator == token.PLUS:
		op = ast.UnPlus
	case t.Kind == token.OPERATOR && t.Operator == token.MINUS:
		op = ast.UnMinus
	case t.Kind == token.OPERATOR && t.Operator == token.BIT_NOT:
		op = ast.UnBitNot
	case t.Kind == token.OPERATOR && t.Operator == token.INCR:
		op = ast.UnPreIncr
	case t.Kind == token.OPERATOR && t.Operator == token.DECR:
		op = ast.UnPreDecr
	case t.Kind == token.OPERATOR && t.Operator == token.ADDRESS:
		op = ast.UnAddress
	default:
		return p.parseLevel16()
	}
	p.advance()
	operand := p.parseLevel15()
	n := &ast.UnaryExpr{Op: op, Operand: operand}
	n.SetSpan(begin, p.lastEnd())
	return n
}

// --- level 16: postfix (call, index, scope, templatize, post incr/decr) ---

// parseFunctionHead parses a `def` statement's head: a name, optionally
// followed by '.name' scoping or '!T'/'!(...)' templatizing, as in
// `Container!T.get` or `MyClass.method`. This is deliberately narrower than
// the full level-16 postfix production: it must stop before the parameter
// list's '(', which full postfix parsing would otherwise swallow as a
// CallExpr.
func (p *Parser) parseFunctionHead() ast.Expr {
	begin := p.cur().Pos
	name, pos, _ := p.expectIdentifier()
	ident := &ast.Ident{Name: name}
	ident.SetSpan(pos, p.lastEnd())
	var x ast.Expr = ident

	for {
		switch {
		case p.isDelim(token.DOT):
			p.advance()
			var names []string
			for {
				n2, _, ok := p.expectIdentifier()
				if !ok {
					break
				}
				names = append(names, n2)
				if p.isDelim(token.DOT) {
					p.advance()
					continue
				}
				break
			}
			n := &ast.ScopeExpr{Value: x, Names: names}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isDelim(token.BANG):
			p.advance()
			var typeArgs []ast.Expr
			if p.isDelim(token.PAREN_OPEN) {
				p.advance()
				p.bracketDepth++
				for !p.isDelim(token.PAREN_CLOSE) && p.cur().Kind != token.EOF {
					typeArgs = append(typeArgs, p.parseTypeExpression())
					if p.isDelim(token.COMMA) {
						p.advance()
						continue
					}
					break
				}
				p.bracketDepth--
				p.expectDelimiter(token.PAREN_CLOSE, "')'")
			} else {
				argName, argPos, _ := p.expectIdentifier()
				arg := &ast.Ident{Name: argName}
				arg.SetSpan(argPos, p.lastEnd())
				typeArgs = append(typeArgs, arg)
			}
			n := &ast.TemplatizeExpr{Value: x, TypeArgs: typeArgs}
			n.SetSpan(begin, p.lastEnd())
			x = n
		default:
			return x
		}
	}
}

func (p *Parser) parseLevel16() ast.Expr {
	begin := p.cur().Pos
	x := p.parseAtom()
	for {
		switch {
		case p.isDelim(token.PAREN_OPEN):
			p.advance()
			p.bracketDepth++
			args := p.parseExpressionList(token.PAREN_CLOSE)
			p.bracketDepth--
			p.expectDelimiter(token.PAREN_CLOSE, "')'")
			n := &ast.CallExpr{Callee: x, Args: args}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isDelim(token.SQUARE_OPEN):
			p.advance()
			p.bracketDepth++
			args := p.parseExpressionList(token.SQUARE_CLOSE)
			p.bracketDepth--
			p.expectDelimiter(token.SQUARE_CLOSE, "']'")
			n := &ast.IndexExpr{Indexee: x, Args: args}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isDelim(token.DOT):
			p.advance()
			var names []string
			for {
				name, _, ok := p.expectIdentifier()
				if !ok {
					break
				}
				names = append(names, name)
				if p.isDelim(token.DOT) {
					p.advance()
					continue
				}
				break
			}
			n := &ast.ScopeExpr{Value: x, Names: names}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isDelim(token.BANG):
			p.advance()
			var typeArgs []ast.Expr
			if p.isDelim(token.PAREN_OPEN) {
				p.advance()
				p.bracketDepth++
				for !p.isDelim(token.PAREN_CLOSE) && p.cur().Kind != token.EOF {
					typeArgs = append(typeArgs, p.parseTypeExpression())
					if p.isDelim(token.COMMA) {
						p.advance()
						continue
					}
					break
				}
				p.bracketDepth--
				p.expectDelimiter(token.PAREN_CLOSE, "')'")
			} else {
				argName, argPos, _ := p.expectIdentifier()
				arg := &ast.Ident{Name: argName}
				arg.SetSpan(argPos, p.lastEnd())
				typeArgs = append(typeArgs, arg)
			}
			n := &ast.TemplatizeExpr{Value: x, TypeArgs: typeArgs}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isOperator(token.INCR) && !p.inTypeFilter():
			p.advance()
			n := &ast.UnaryExpr{Op: ast.UnPostIncr, Operand: x}
			n.SetSpan(begin, p.lastEnd())
			x = n
		case p.isOperator(token.DECR) && !p.inTypeFilter():
			p.advance()
			n := &ast.UnaryExpr{Op: ast.UnPostDecr, Operand: x}
			n.SetSpan(begin, p.lastEnd())
			x = n
		default:
			return x
		}
	}
}

// parseExpressionList reads a comma-separated list of expressions up to
// (without consuming) the closing delimiter end.
func (p *Parser) parseExpressionList(end token.Delimiter) []ast.Expr {
	var exprs []ast.Expr
	for !p.isDelim(end) && p.cur().Kind != token.EOF {
		exprs = append(exprs, p.parseExpression())
		if p.isDelim(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return exprs
}

// --- level 17: atom ---

func (p *Parser) parseAtom() ast.Expr {
	begin := p.cur().Pos
	t := p.cur()

	switch {
	case t.Kind == token.KEYWORD && (t.Keyword == token.STATIC || t.Keyword == token.WILD || t.Keyword == token.REF):
		return p.parseVarDecl()

	case t.Kind == token.IDENTIFIER:
		if !p.noVarDeclAtom && p.peek(1).Kind == token.DELIMITER && p.peek(1).Delimiter == token.COLON {
			return p.parseVarDecl()
		}
		p.advance()
		n := &ast.Ident{Name: t.Text}
		n.SetSpan(begin, p.lastEnd())
		return n

	case t.IsNumeric():
		if p.inTypeFilter() {
			switch t.Kind {
			case token.FLOAT, token.DOUBLE, token.IFLOAT, token.IDOUBLE:
				p.errorf(begin, "float literal not allowed in a type")
			}
		}
		p.advance()
		n := &ast.NumberLit{Kind: t.Kind, IntValue: t.IntValue, FloatValue: t.FloatValue}
		n.SetSpan(begin, p.lastEnd())
		return n

	case t.Kind == token.CHAR:
		p.advance()
		n := &ast.CharLit{Value: t.Rune, IsByte: t.IsByte}
		n.SetSpan(begin, p.lastEnd())
		return n

	case t.Kind == token.STRING:
		if p.inTypeFilter() {
			p.errorf(begin, "string literal not allowed in a type")
		}
		p.advance()
		n := &ast.StringLit{Value: t.Runes}
		n.SetSpan(begin, p.lastEnd())
		return n

	case t.Kind == token.BUFFER:
		if p.inTypeFilter() {
			p.errorf(begin, "buffer literal not allowed in a type")
		}
		p.advance()
		n := &ast.BufferLit{Value: t.Bytes}
		n.SetSpan(begin, p.lastEnd())
		return n

	case p.isDelim(token.PAREN_OPEN):
		return p.parseTupleOrParen(begin)

	case p.isDelim(token.SQUARE_OPEN):
		if p.inTypeFilter() {
			p.errorf(begin, "array literal not allowed in a type")
		}
		return p.parseArrayLit(begin)

	case p.isDelim(token.CURLY_OPEN):
		if p.inTypeFilter() {
			p.errorf(begin, "dict literal not allowed in a type")
		}
		return p.parseDictLit(begin)

	case t.Kind == token.KEYWORD && t.Keyword == token.DEF:
		if next := p.peek(1); p.inTypeFilter() && !(next.Kind == token.DELIMITER && next.Delimiter == token.BANG) {
			p.errorf(begin, "lambda not allowed in a type")
		}
		return p.parseLambdaOrFunctionType(begin)

	default:
		p.errorf(begin, "expected an expression")
		p.advance()
		n := &ast.InvalidExpr{Reason: "expected an expression"}
		n.SetSpan(begin, p.lastEnd())
		return n
	}
}

// parseTupleOrParen implements tuple-vs-paren collapse: a single parenthesized
// expression with no comma collapses to that inner expression; any comma,
// including a trailing one as in `(x,)`, makes a TupleExpr.
func (p *Parser) parseTupleOrParen(begin diag.Position) ast.Expr {
	p.advance() // '('
	p.bracketDepth++
	first := p.parseExpression()
	if !p.isDelim(token.COMMA) {
		p.bracketDepth--
		p.expectDelimiter(token.PAREN_CLOSE, "')'")
		return first
	}
	elems := []ast.Expr{first}
	for p.isDelim(token.COMMA) {
		p.advance()
		if p.isDelim(token.PAREN_CLOSE) {
			break
		}
		elems = append(elems, p.parseExpression())
	}
	p.bracketDepth--
	p.expectDelimiter(token.PAREN_CLOSE, "')'")
	n := &ast.TupleExpr{Elems: elems}
	n.SetSpan(begin, p.lastEnd())
	return n
}

func (p *Parser) parseArrayLit(begin diag.Position) ast.Expr {
	p.advance() // '['
	p.bracketDepth++
	elems := p.parseExpressionList(token.SQUARE_CLOSE)
	p.bracketDepth--
	p.expectDelimiter(token.SQUARE_CLOSE, "']'")
	n := &ast.ArrayExpr{Elems: elems}
	n.SetSpan(begin, p.lastEnd())
	return n
}

func (p *Parser) parseDictLit(begin diag.Position) ast.Expr {
	p.advance() // '{'
	p.bracketDepth++
	var keys, values []ast.Expr
	for !p.isDelim(token.CURLY_CLOSE) && p.cur().Kind != token.EOF {
		saved := p.noVarDeclAtom
		p.noVarDeclAtom = true
		k := p.parseExpression()
		p.noVarDeclAtom = saved
		p.expectDelimiter(token.COLON, "':'")
		v := p.parseExpression()
		keys = append(keys, k)
		values = append(values, v)
		if p.isDelim(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.bracketDepth--
	p.expectDelimiter(token.CURLY_CLOSE, "'}'")
	n := &ast.DictExpr{Keys: keys, Values: values}
	n.SetSpan(begin, p.lastEnd())
	return n
}

// parseLambdaOrFunctionType resolves "def followed by !" lookahead:
// `def!(...)` is a first-class function-type atom, `def(...)` is a lambda.
// One token of lookahead (peek) always suffices, so no backtracking is
// needed here.
func (p *Parser) parseLambdaOrFunctionType(begin diag.Position) ast.Expr {
	p.advance() // 'def'

	if p.isDelim(token.BANG) {
		p.advance()
		p.expectDelimiter(token.PAREN_OPEN, "'('")
		p.bracketDepth++
		var refFlags []bool
		var types []ast.Expr
		for !p.isDelim(token.PAREN_CLOSE) && p.cur().Kind != token.EOF {
			ref := false
			if p.isKeyword(token.REF) {
				p.advance()
				ref = true
			}
			refFlags = append(refFlags, ref)
			types = append(types, p.parseTypeExpression())
			if p.isDelim(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
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
		n := &ast.FunctionTypeExpr{ArgRefFlags: refFlags, ArgTypes: types, IsReturnRef: isReturnRef, ReturnType: returnType}
		n.SetSpan(begin, p.lastEnd())
		return n
	}

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
	n := &ast.LambdaExpr{Params: params, Variadic: variadic, IsReturnRef: isReturnRef, ReturnType: returnType, Body: body}
	n.SetSpan(begin, p.lastEnd())
	return n
}

// parseVarDecl implements `[static] [wild] [ref] name [: type] [= init]`.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	begin := p.cur().Pos
	isStatic, isWild, isRef := false, false, false
	for more := true; more; {
		switch {
		case p.isKeyword(token.STATIC):
			p.advance()
			isStatic = true
		case p.isKeyword(token.WILD):
			p.advance()
			isWild = true
		case p.isKeyword(token.REF):
			p.advance()
			isRef = true
		default:
			more = false
		}
	}
	name, _, _ := p.expectIdentifier()

	var typ ast.Expr
	if p.isDelim(token.COLON) {
		p.advance()
		typ = p.parseTypeExpression()
	}

	var init ast.Expr
	if p.isOperator(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}

	if typ == nil && init == nil {
		p.errorf(begin, "variable declaration %q needs a type or an initializer", name)
	}

	n := &ast.VarDecl{IsStatic: isStatic, IsWild: isWild, IsRef: isRef, Name: name, Type: typ, Init: init}
	n.SetSpan(begin, p.lastEnd())
	return n
}

func (p *Parser) parseOpBinary(op token.Operator, astOp ast.BinaryOp, next func() ast.Expr) ast.Expr {
	begin := p.cur().Pos
	left := next()
	for p.isOperator(op) {
		p.advance()
		right := next()
		n := &ast.BinaryExpr{Op: astOp, Left: left, Right: right}
		n.SetSpan(begin, p.lastEnd())
		left = n
	}
	return left
}
