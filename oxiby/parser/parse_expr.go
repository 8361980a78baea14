package parser

// Binding power of the binary operators. Assignment and range sit below
// these and are parsed by their own rules; unary, field and call/index
// sit above.
const (
	precOr = iota + 2
	precAnd
	precComparative
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[TokenKind]int{
	TokenOr:      precOr,
	TokenAnd:     precAnd,
	TokenEQ:      precComparative,
	TokenNE:      precComparative,
	TokenLT:      precComparative,
	TokenLE:      precComparative,
	TokenGT:      precComparative,
	TokenGE:      precComparative,
	TokenPlus:    precAdditive,
	TokenMinus:   precAdditive,
	TokenStar:    precMultiplicative,
	TokenSlash:   precMultiplicative,
	TokenPercent: precMultiplicative,
}

func isRangeOperator(kind TokenKind) bool {
	return kind == TokenRange || kind == TokenRangeInclusive || kind == TokenRangeExclusive
}

// canStartExpression reports whether tok may begin an expression. It
// decides whether optional operands (range bounds, break and return
// values) are present.
func (p *Parser) canStartExpression(tok Token) bool {
	switch tok.Kind {
	case TokenTrue, TokenFalse, TokenInt, TokenFloat, TokenString,
		TokenIdentLower, TokenIdentUpper, TokenSelf,
		TokenLParen, TokenLBracket,
		TokenFn, TokenLet, TokenMatch, TokenIf, TokenWhile, TokenFor, TokenLoop,
		TokenBreak, TokenContinue, TokenReturn,
		TokenMinus, TokenNot,
		TokenRange, TokenRangeInclusive, TokenRangeExclusive:
		return true
	case TokenLBrace:
		return !p.noStruct
	}
	return false
}

func (p *Parser) parseExpression() *Node {
	p.enter()
	defer p.leave()
	return p.parseAssignment()
}

// parseNested parses an expression inside delimiters, where struct
// literals are always allowed.
func (p *Parser) parseNested() *Node {
	return p.withStructLiterals(true, p.parseExpression)
}

// parseCondition parses the condition or subject of if, while, match and
// for, where a struct literal would swallow the body.
func (p *Parser) parseCondition() *Node {
	return p.withStructLiterals(false, p.parseExpression)
}

// lhs = rhs, right-associative.
func (p *Parser) parseAssignment() *Node {
	lhs := p.parseRange()
	if !p.check(TokenAssign) {
		return lhs
	}
	node := p.startNodeFrom(KindAssignment, lhs)
	node.AddField("lhs", lhs)
	p.advance()
	node.AddField("right", p.parseExpression())
	return p.finishNode(node)
}

// [start] (.. | ..= | ..<) [end]. Ranges do not chain.
func (p *Parser) parseRange() *Node {
	var start *Node
	if !isRangeOperator(p.peek().Kind) {
		start = p.parseBinary(precOr)
		if !isRangeOperator(p.peek().Kind) {
			return start
		}
	}

	var node *Node
	if start != nil {
		node = p.startNodeFrom(KindRange, start)
		node.AddField("start", start)
	} else {
		node = p.startNode(KindRange)
	}
	node.AddField("operator", p.leaf(KindOperator))
	if p.canStartExpression(p.peek()) && !isRangeOperator(p.peek().Kind) {
		node.AddField("end", p.parseBinary(precOr))
	}
	if tok := p.peek(); isRangeOperator(tok.Kind) {
		p.fail(ClassSyntax, tok, nil, "range operators cannot be chained; parenthesize the inner range")
	}
	return p.finishNode(node)
}

// parseBinary implements precedence climbing over the binary operator
// table. All binary operators are left-associative.
func (p *Parser) parseBinary(minPrec int) *Node {
	p.enter()
	defer p.leave()

	return p.climbBinary(p.parseUnary(), minPrec)
}

// climbBinary extends an already parsed left operand with binary operators
// of at least minPrec.
func (p *Parser) climbBinary(left *Node, minPrec int) *Node {
	for {
		prec, ok := binaryPrecedence[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		node := p.startNodeFrom(KindBinary, left)
		node.AddField("lhs", left)
		node.AddField("operator", p.leaf(KindOperator))
		node.AddField("rhs", p.parseBinary(prec+1))
		left = p.finishNode(node)
	}
}

func (p *Parser) parseUnary() *Node {
	if p.check(TokenMinus) || p.check(TokenNot) {
		p.enter()
		defer p.leave()
		node := p.startNode(KindUnary)
		node.AddField("operator", p.leaf(KindOperator))
		node.AddField("operand", p.parseUnary())
		return p.finishNode(node)
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix applies field access, calls and indexing left to right,
// so a.b(c) is a call of the field a.b.
func (p *Parser) parsePostfix(left *Node) *Node {
	for {
		switch p.peek().Kind {
		case TokenDot:
			node := p.startNodeFrom(KindField, left)
			node.AddField("value", left)
			p.advance()
			switch p.peek().Kind {
			case TokenIdentLower:
				node.AddField("field", p.leaf(KindExprIdentifier))
			case TokenInt:
				node.AddField("field", p.leaf(KindInteger))
			default:
				p.errorExpected(TokenIdentLower, TokenInt)
			}
			left = p.finishNode(node)
		case TokenLParen:
			node := p.startNodeFrom(KindCall, left)
			node.AddField("name", left)
			node.AddField("arguments", p.parseArguments())
			left = p.finishNode(node)
		case TokenLBracket:
			node := p.startNodeFrom(KindIndex, left)
			node.AddField("expr", left)
			p.advance()
			node.AddField("index", p.parseNested())
			p.expect(TokenRBracket)
			left = p.finishNode(node)
		default:
			return left
		}
	}
}

func (p *Parser) parsePrimary() *Node {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case TokenTrue, TokenFalse, TokenInt, TokenFloat, TokenString:
		return p.parseLiteral()
	case TokenIdentLower, TokenSelf:
		return p.leaf(KindExprIdentifier)
	case TokenIdentUpper:
		return p.parseTypeLed()
	case TokenLBracket:
		return p.parseListOrMap()
	case TokenLParen:
		return p.parseTupleOrParenthesized()
	case TokenLBrace:
		return p.parseBlock()
	case TokenFn:
		return p.parseClosure()
	case TokenLet:
		return p.parseLet()
	case TokenMatch:
		return p.parseMatch()
	case TokenIf:
		return p.parseConditional()
	case TokenWhile:
		return p.parseWhile()
	case TokenFor:
		return p.parseFor()
	case TokenLoop:
		return p.parseLoop()
	case TokenBreak:
		return p.parseJump(KindBreak)
	case TokenReturn:
		return p.parseJump(KindReturn)
	case TokenContinue:
		return p.leaf(KindContinue)
	}
	p.errorExpectedWhat("expression")
	return nil
}

func (p *Parser) parseLiteral() *Node {
	switch p.peek().Kind {
	case TokenTrue, TokenFalse:
		return p.leaf(KindBoolean)
	case TokenInt:
		return p.leaf(KindInteger)
	case TokenFloat:
		return p.leaf(KindFloat)
	case TokenString:
		return p.leaf(KindString)
	}
	p.errorExpectedWhat("literal")
	return nil
}

// parseTypeLed parses the expressions that begin with a type identifier:
// Type, Type.name, Type.Variant, Type { ... } and Type.Variant { ... }.
func (p *Parser) parseTypeLed() *Node {
	name := p.leaf(KindTypeIdentifier)

	if p.check(TokenDot) {
		switch p.peekN(1).Kind {
		case TokenIdentLower:
			node := p.startNodeFrom(KindScopedExprIdentifier, name)
			node.AddField("scope", name)
			p.advance()
			node.AddField("name", p.leaf(KindExprIdentifier))
			return p.finishNode(node)
		case TokenIdentUpper:
			if p.peekN(2).Kind == TokenLBrace && !p.noStruct {
				node := p.startNodeFrom(KindEnumLiteral, name)
				node.AddField("type", name)
				p.advance()
				node.AddField("variant", p.parseStructLiteral(p.leaf(KindTypeIdentifier)))
				return p.finishNode(node)
			}
			node := p.startNodeFrom(KindScopedTypeIdentifier, name)
			node.AddField("scope", name)
			p.advance()
			node.AddField("name", p.leaf(KindTypeIdentifier))
			return p.finishNode(node)
		}
	}

	if p.check(TokenLBrace) && !p.noStruct {
		return p.parseStructLiteral(name)
	}
	return name
}

// Name { field: value, ... }
func (p *Parser) parseStructLiteral(name *Node) *Node {
	node := p.startNodeFrom(KindStructLiteral, name)
	node.AddField("name", name)
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) {
		init := p.startNode(KindFieldInitializer)
		init.AddField("field", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
		p.expect(TokenColon)
		init.AddField("value", p.parseNested())
		node.AddField("initializer", p.finishNode(init))
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseListOrMap decides between a list and a map on the token after the
// first element: ":" commits to a map, anything else to a list. Every
// later element must agree with that decision.
func (p *Parser) parseListOrMap() *Node {
	open := p.expect(TokenLBracket)
	if p.check(TokenRBracket) {
		node := p.startNodeAt(KindList, open.Span.Start)
		p.advance()
		return p.finishNode(node)
	}

	first := p.parseNested()
	if !p.check(TokenColon) {
		node := p.startNodeAt(KindList, open.Span.Start)
		node.AddField("element", first)
		for p.match(TokenComma) && !p.check(TokenRBracket) {
			node.AddField("element", p.parseNested())
			if tok := p.peek(); tok.Kind == TokenColon {
				p.fail(ClassStructural, tok, nil, "unexpected %q in list literal; a literal mixing elements with key: value entries is neither a list nor a map", ":")
			}
		}
		p.expect(TokenRBracket)
		return p.finishNode(node)
	}

	node := p.startNodeAt(KindHashMap, open.Span.Start)
	node.AddField("entry", p.parseMapEntry(first))
	for p.match(TokenComma) && !p.check(TokenRBracket) {
		node.AddField("entry", p.parseMapEntry(p.parseNested()))
	}
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseMapEntry(key *Node) *Node {
	if tok := p.peek(); tok.Kind != TokenColon {
		p.fail(ClassStructural, tok, []TokenKind{TokenColon},
			"expected %q after map key, found %s; every map entry must be a key: value pair", ":", tok)
	}
	node := p.startNodeFrom(KindHashMapEntry, key)
	node.AddField("key", key)
	p.advance()
	node.AddField("value", p.parseNested())
	return p.finishNode(node)
}

// () is the empty tuple, (e) a parenthesized expression, (e,) and
// (e1, e2[,]) tuples.
func (p *Parser) parseTupleOrParenthesized() *Node {
	open := p.expect(TokenLParen)
	if p.check(TokenRParen) {
		node := p.startNodeAt(KindTuple, open.Span.Start)
		p.advance()
		return p.finishNode(node)
	}

	first := p.parseNested()
	if p.check(TokenRParen) {
		node := p.startNodeAt(KindParenthesized, open.Span.Start)
		node.AddField("expression", first)
		p.advance()
		return p.finishNode(node)
	}

	node := p.startNodeAt(KindTuple, open.Span.Start)
	node.AddField("element", first)
	if !p.check(TokenComma) {
		p.errorExpected(TokenComma, TokenRParen)
	}
	for p.match(TokenComma) && !p.check(TokenRParen) {
		node.AddField("element", p.parseNested())
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseArguments parses a call's argument list. Keyword arguments carry a
// leading ":" sigil and may only follow the positional arguments.
func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.expect(TokenLParen)

	var positional, keyword *Node
	for !p.check(TokenRParen) {
		if p.check(TokenColon) {
			if keyword == nil {
				keyword = p.startNode(KindKeywordArgs)
			}
			arg := p.startNode(KindKeywordArgument)
			p.advance()
			arg.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
			p.expect(TokenColon)
			arg.AddField("value", p.parseNested())
			keyword.AddField("argument", p.finishNode(arg))
		} else {
			if keyword != nil {
				p.fail(ClassSyntax, p.peek(), []TokenKind{TokenColon, TokenRParen},
					"positional argument follows keyword arguments")
			}
			if positional == nil {
				positional = p.startNode(KindPositionalArgs)
			}
			positional.AddField("expression", p.parseNested())
			p.finishNode(positional)
		}
		if keyword != nil {
			p.finishNode(keyword)
		}
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)

	node.AddField("positional", positional)
	node.AddField("keyword", keyword)
	return p.finishNode(node)
}

// fn(name[: Type], ...) [-> Type] { body }
func (p *Parser) parseClosure() *Node {
	node := p.startNode(KindClosure)
	p.expect(TokenFn)
	p.expect(TokenLParen)
	for !p.check(TokenRParen) {
		param := p.startNode(KindClosureParameter)
		param.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
		if p.match(TokenColon) {
			param.AddField("type", p.parseType())
		}
		node.AddField("parameter", p.finishNode(param))
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	if p.match(TokenArrow) {
		node.AddField("return_type", p.parseType())
	}
	node.AddField("body", p.parseBlock())
	return p.finishNode(node)
}

// parseBlock parses { expr* }. An expression that starts with a
// block-shaped construct ends with that construct, so a following "(" or
// "[" opens the next expression instead of calling or indexing it.
func (p *Parser) parseBlock() *Node {
	p.enter()
	defer p.leave()

	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)
	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		if p.startsBlockLike() {
			node.AddField("expression", p.parseBlockLikeStatement())
			continue
		}
		node.AddField("expression", p.parseExpression())
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseBlockLikeStatement parses a statement that starts with a
// block-shaped construct. The construct ends the statement unless the next
// token can only continue an expression: "." or a binary operator other
// than "-", or "=".
func (p *Parser) parseBlockLikeStatement() *Node {
	p.enter()
	defer p.leave()

	expr := p.parsePrimary()
	if p.check(TokenDot) {
		expr = p.parsePostfix(expr)
	}
	if kind := p.peek().Kind; kind != TokenMinus {
		if _, ok := binaryPrecedence[kind]; ok {
			expr = p.climbBinary(expr, precOr)
		}
	}
	if !p.check(TokenAssign) {
		return expr
	}
	node := p.startNodeFrom(KindAssignment, expr)
	node.AddField("lhs", expr)
	p.advance()
	node.AddField("right", p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) startsBlockLike() bool {
	switch p.peek().Kind {
	case TokenLBrace, TokenIf, TokenWhile, TokenFor, TokenLoop, TokenMatch:
		return true
	}
	return false
}

// let pattern [: Type] = value
func (p *Parser) parseLet() *Node {
	node := p.startNode(KindLet)
	p.expect(TokenLet)
	node.AddField("pattern", p.parsePattern())
	if p.match(TokenColon) {
		node.AddField("type", p.parseType())
	}
	p.expect(TokenAssign)
	node.AddField("value", p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseMatch() *Node {
	node := p.startNode(KindMatch)
	p.expect(TokenMatch)
	node.AddField("expr", p.parseCondition())
	node.AddField("body", p.parseMatchBody())
	return p.finishNode(node)
}

// parseMatchBody parses { arm* }. An arm is terminated by "," unless its
// body is a block or it is the last arm.
func (p *Parser) parseMatchBody() *Node {
	node := p.startNode(KindMatchBody)
	p.expect(TokenLBrace)
	if tok := p.peek(); tok.Kind == TokenRBrace {
		p.fail(ClassStructural, tok, nil, "match expression has no arms")
	}

	saved := p.noStruct
	p.noStruct = false
	defer func() { p.noStruct = saved }()

	for {
		arm := p.parseMatchArm()
		node.AddField("arm", arm)
		if p.match(TokenComma) {
			if p.check(TokenRBrace) {
				break
			}
			continue
		}
		if p.check(TokenRBrace) {
			break
		}
		if arm.Field("expr").Kind.Is(SupertypeExpressionWithTrailingBlock) {
			continue
		}
		tok := p.peek()
		p.fail(ClassSyntax, tok, []TokenKind{TokenComma, TokenRBrace},
			"expected %q after match arm, found %s; only block-bodied arms may omit the comma", ",", tok)
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseMatchArm() *Node {
	node := p.startNode(KindMatchArm)
	node.AddField("pattern", p.parsePattern())
	p.expect(TokenArrow)
	if p.check(TokenLBrace) {
		node.AddField("expr", p.parseBlock())
	} else {
		node.AddField("expr", p.parseExpression())
	}
	return p.finishNode(node)
}

// if cond { ... } [else if ... | else { ... }]
func (p *Parser) parseConditional() *Node {
	p.enter()
	defer p.leave()

	node := p.startNode(KindConditional)
	p.expect(TokenIf)
	node.AddField("condition", p.parseCondition())
	node.AddField("consequence", p.parseBlock())
	if p.match(TokenElse) {
		if p.check(TokenIf) {
			node.AddField("alternative", p.parseConditional())
		} else {
			node.AddField("alternative", p.parseBlock())
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseWhile() *Node {
	node := p.startNode(KindWhileLoop)
	p.expect(TokenWhile)
	node.AddField("predicate", p.parseCondition())
	node.AddField("body", p.parseBlock())
	return p.finishNode(node)
}

// for pattern in iterable { ... }
func (p *Parser) parseFor() *Node {
	node := p.startNode(KindForLoop)
	p.expect(TokenFor)
	node.AddField("pattern", p.parsePattern())
	p.expect(TokenIn)
	node.AddField("iterable", p.parseCondition())
	node.AddField("body", p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseLoop() *Node {
	node := p.startNode(KindLoop)
	p.expect(TokenLoop)
	node.AddField("body", p.parseBlock())
	return p.finishNode(node)
}

// break and return take an optional value.
func (p *Parser) parseJump(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	if p.canStartExpression(p.peek()) {
		node.AddField("value", p.parseExpression())
	}
	return p.finishNode(node)
}
