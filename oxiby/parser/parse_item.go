package parser

func (p *Parser) parseItem() *Node {
	start := p.peek().Span.Start
	var vis *Node
	if p.check(TokenPub) {
		vis = p.leaf(KindVisibilityModifier)
	}

	switch p.peek().Kind {
	case TokenEnum:
		return p.parseEnum(start, vis)
	case TokenFn:
		return p.parseFunction(start, vis)
	case TokenStruct:
		return p.parseStruct(start, vis)
	case TokenTrait:
		return p.parseTrait(start, vis)
	}
	if vis != nil {
		p.errorExpected(TokenEnum, TokenFn, TokenStruct, TokenTrait)
	}

	switch p.peek().Kind {
	case TokenImpl:
		return p.parseImpl()
	case TokenUse:
		return p.parseUse()
	}
	p.errorExpected(TokenPub, TokenEnum, TokenFn, TokenImpl, TokenStruct, TokenTrait, TokenUse)
	return nil
}

// parseMethod parses a function inside a struct, enum or impl body.
func (p *Parser) parseMethod() *Node {
	start := p.peek().Span.Start
	var vis *Node
	if p.check(TokenPub) {
		vis = p.leaf(KindVisibilityModifier)
	}
	return p.parseFunction(start, vis)
}

func (p *Parser) isMethodStart() bool {
	return p.check(TokenFn) || (p.check(TokenPub) && p.peekN(1).Kind == TokenFn)
}

// [pub] fn name(params) [-> Type] [where ...] { body }
func (p *Parser) parseFunction(start Position, vis *Node) *Node {
	sig := p.parseSignature(start, vis)
	node := p.startNodeFrom(KindItemFn, sig)
	node.AddField("signature", sig)
	node.AddField("body", p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseSignature(start Position, vis *Node) *Node {
	node := p.startNodeAt(KindFnSignature, start)
	node.AddField("visibility", vis)
	p.expect(TokenFn)
	node.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
	node.AddField("parameters", p.parseParameters())
	if p.match(TokenArrow) {
		node.AddField("return_type", p.parseType())
	}
	if p.check(TokenWhere) {
		node.AddField("where_clause", p.parseWhereClause())
	}
	return p.finishNode(node)
}

// parseParameters parses a parameter list. "self" may only appear once,
// as the first positional parameter. Keyword parameters carry a leading
// ":" sigil and may only follow the positional parameters.
func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)

	var positional, keyword *Node
	for !p.check(TokenRParen) {
		tok := p.peek()
		switch {
		case tok.Kind == TokenColon:
			if keyword == nil {
				keyword = p.startNode(KindKeywordParams)
			}
			param := p.startNode(KindKeywordParameter)
			p.advance()
			param.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
			p.expect(TokenColon)
			param.AddField("type", p.parseType())
			keyword.AddField("parameter", p.finishNode(param))
			p.finishNode(keyword)
		case keyword != nil:
			p.fail(ClassSyntax, tok, []TokenKind{TokenColon, TokenRParen},
				"positional parameter follows keyword parameters")
		case tok.Kind == TokenSelf:
			if positional != nil {
				p.fail(ClassSyntax, tok, nil, "self must be the first parameter")
			}
			positional = p.startNode(KindPositionalParams)
			positional.AddField("parameter", p.leaf(KindSelfParameter))
			p.finishNode(positional)
		default:
			if positional == nil {
				positional = p.startNode(KindPositionalParams)
			}
			param := p.startNode(KindParameter)
			param.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
			p.expect(TokenColon)
			param.AddField("type", p.parseType())
			positional.AddField("parameter", p.finishNode(param))
			p.finishNode(positional)
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

// where T: A + B = Default, U
func (p *Parser) parseWhereClause() *Node {
	node := p.startNode(KindWhereClause)
	p.expect(TokenWhere)
	for {
		c := p.startNode(KindConstraint)
		c.AddField("type", p.parseType())
		if p.match(TokenColon) {
			c.AddField("bounds", p.parseBounds())
		}
		if p.match(TokenAssign) {
			c.AddField("default", p.parseType())
		}
		node.AddField("constraint", p.finishNode(c))
		if !p.match(TokenComma) {
			break
		}
		// trailing comma
		if p.check(TokenLBrace) {
			break
		}
	}
	return p.finishNode(node)
}

// A + B + C
func (p *Parser) parseBounds() *Node {
	node := p.startNode(KindBounds)
	for {
		node.AddField("bound", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
		if !p.match(TokenPlus) {
			break
		}
	}
	return p.finishNode(node)
}

// [pub] enum Name[<T>] { Variant, ... [fn ...] }
func (p *Parser) parseEnum(start Position, vis *Node) *Node {
	node := p.startNodeAt(KindItemEnum, start)
	node.AddField("visibility", vis)
	p.expect(TokenEnum)
	node.AddField("name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.check(TokenLT) {
		node.AddField("type_params", p.parseTypeParams())
	}
	p.expect(TokenLBrace)
	for p.check(TokenIdentUpper) {
		node.AddField("variant", p.parseVariant())
		if !p.match(TokenComma) {
			break
		}
	}
	for p.isMethodStart() {
		node.AddField("functions", p.parseMethod())
	}
	if !p.check(TokenRBrace) {
		if len(node.FieldAll("functions")) == 0 {
			p.errorExpected(TokenIdentUpper, TokenComma, TokenFn, TokenRBrace)
		}
		p.errorExpected(TokenFn, TokenRBrace)
	}
	p.advance()
	return p.finishNode(node)
}

// Name, Name(T, ...) or Name { field: T, ... }
func (p *Parser) parseVariant() *Node {
	node := p.startNode(KindVariant)
	node.AddField("name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	switch p.peek().Kind {
	case TokenLParen:
		fields := p.startNode(KindTupleVariant)
		p.advance()
		for !p.check(TokenRParen) {
			fields.AddField("type", p.parseType())
			if !p.match(TokenComma) {
				break
			}
		}
		p.expect(TokenRParen)
		node.AddField("fields", p.finishNode(fields))
	case TokenLBrace:
		fields := p.startNode(KindRecordVariant)
		p.advance()
		for !p.check(TokenRBrace) {
			fields.AddField("field", p.parseFieldDeclaration(false))
			if !p.match(TokenComma) {
				break
			}
		}
		p.expect(TokenRBrace)
		node.AddField("fields", p.finishNode(fields))
	}
	return p.finishNode(node)
}

// parseFieldDeclaration parses "[pub] name: Type" in a record body.
func (p *Parser) parseFieldDeclaration(allowPub bool) *Node {
	node := p.startNode(KindFieldDeclaration)
	if allowPub && p.check(TokenPub) {
		node.AddField("visibility", p.leaf(KindVisibilityModifier))
	}
	node.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
	p.expect(TokenColon)
	node.AddField("type", p.parseType())
	return p.finishNode(node)
}

// [pub] struct Name[<T>] [(...) [{ fn ... }] | { ... }]
func (p *Parser) parseStruct(start Position, vis *Node) *Node {
	node := p.startNodeAt(KindItemStruct, start)
	node.AddField("visibility", vis)
	p.expect(TokenStruct)
	node.AddField("name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.check(TokenLT) {
		node.AddField("type_params", p.parseTypeParams())
	}
	switch p.peek().Kind {
	case TokenLParen:
		node.AddField("body", p.parseTupleStruct())
	case TokenLBrace:
		node.AddField("body", p.parseRecordStruct())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTupleStruct() *Node {
	node := p.startNode(KindTupleStruct)
	p.expect(TokenLParen)
	for !p.check(TokenRParen) {
		field := p.startNode(KindFieldDeclaration)
		if p.check(TokenPub) {
			field.AddField("visibility", p.leaf(KindVisibilityModifier))
		}
		field.AddField("type", p.parseType())
		node.AddField("field", p.finishNode(field))
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	if p.match(TokenLBrace) {
		if !p.isMethodStart() {
			p.errorExpected(TokenFn)
		}
		for p.isMethodStart() {
			node.AddField("functions", p.parseMethod())
		}
		p.expect(TokenRBrace)
	}
	return p.finishNode(node)
}

func (p *Parser) parseRecordStruct() *Node {
	node := p.startNode(KindRecordStruct)
	p.expect(TokenLBrace)
	for p.check(TokenIdentLower) || (p.check(TokenPub) && p.peekN(1).Kind == TokenIdentLower) {
		node.AddField("field", p.parseFieldDeclaration(true))
		if !p.match(TokenComma) {
			break
		}
	}
	for p.isMethodStart() {
		node.AddField("functions", p.parseMethod())
	}
	if !p.check(TokenRBrace) {
		p.errorExpected(TokenIdentLower, TokenFn, TokenRBrace)
	}
	p.advance()
	return p.finishNode(node)
}

// [pub] trait Name[<T>] [where ...] { type ...; fn ... }
func (p *Parser) parseTrait(start Position, vis *Node) *Node {
	node := p.startNodeAt(KindItemTrait, start)
	node.AddField("visibility", vis)
	p.expect(TokenTrait)
	node.AddField("name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.check(TokenLT) {
		node.AddField("type_params", p.parseTypeParams())
	}
	if p.check(TokenWhere) {
		node.AddField("where_clause", p.parseWhereClause())
	}
	p.expect(TokenLBrace)
	for p.check(TokenType) {
		node.AddField("associated_types", p.parseAssociatedType())
	}
	for p.isMethodStart() {
		fnStart := p.peek().Span.Start
		var fnVis *Node
		if p.check(TokenPub) {
			fnVis = p.leaf(KindVisibilityModifier)
		}
		sig := p.parseSignature(fnStart, fnVis)
		if !p.check(TokenLBrace) {
			node.AddField("functions", sig)
			continue
		}
		fn := p.startNodeFrom(KindItemFn, sig)
		fn.AddField("signature", sig)
		fn.AddField("body", p.parseBlock())
		node.AddField("functions", p.finishNode(fn))
	}
	if !p.check(TokenRBrace) {
		p.errorExpected(TokenType, TokenFn, TokenRBrace)
	}
	p.advance()
	return p.finishNode(node)
}

// type Name [: A + B, C] [= Default]
func (p *Parser) parseAssociatedType() *Node {
	node := p.startNode(KindAssociatedType)
	p.expect(TokenType)
	node.AddField("name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.match(TokenColon) {
		for {
			node.AddField("bounds", p.parseBounds())
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if p.match(TokenAssign) {
		node.AddField("default", p.parseType())
	}
	return p.finishNode(node)
}

// impl Trait[<T>] for Type[<U>] [where ...] { type ...; fn ... }
func (p *Parser) parseImpl() *Node {
	node := p.startNode(KindItemImpl)
	p.expect(TokenImpl)
	node.AddField("trait_name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.check(TokenLT) {
		node.AddField("trait_params", p.parseTypeParams())
	}
	if tok := p.peek(); tok.Kind != TokenFor {
		if tok.Kind == TokenLBrace {
			p.fail(ClassSyntax, tok, []TokenKind{TokenFor},
				"expected %q: only trait implementations are supported; define inherent functions inside the struct or enum body", "for")
		}
		p.errorExpected(TokenFor)
	}
	p.advance()
	node.AddField("type_name", p.expectLeaf(KindTypeIdentifier, TokenIdentUpper))
	if p.check(TokenLT) {
		node.AddField("type_params", p.parseTypeParams())
	}
	if p.check(TokenWhere) {
		node.AddField("where_clause", p.parseWhereClause())
	}
	p.expect(TokenLBrace)
	for p.check(TokenType) {
		node.AddField("associated_types", p.parseAssociatedType())
	}
	for p.isMethodStart() {
		node.AddField("functions", p.parseMethod())
	}
	if !p.check(TokenRBrace) {
		p.errorExpected(TokenType, TokenFn, TokenRBrace)
	}
	p.advance()
	return p.finishNode(node)
}

// use module.path name, Type, Type.Variant -> Alias
func (p *Parser) parseUse() *Node {
	node := p.startNode(KindItemUse)
	p.expect(TokenUse)

	module := p.startNode(KindModulePath)
	module.AddField("segment", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdentLower {
		p.advance()
		module.AddField("segment", p.leaf(KindExprIdentifier))
	}
	node.AddField("module", p.finishNode(module))

	for {
		node.AddField("import", p.parseImport())
		if !p.match(TokenComma) {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseImport() *Node {
	node := p.startNode(KindImport)
	switch p.peek().Kind {
	case TokenIdentLower:
		node.AddField("name", p.leaf(KindExprIdentifier))
	case TokenIdentUpper:
		node.AddField("name", p.parseScopedTypeIdentifier())
	default:
		p.errorExpected(TokenIdentLower, TokenIdentUpper)
	}
	if p.match(TokenArrow) {
		switch p.peek().Kind {
		case TokenIdentLower:
			node.AddField("rename", p.leaf(KindExprIdentifier))
		case TokenIdentUpper:
			node.AddField("rename", p.leaf(KindTypeIdentifier))
		default:
			p.errorExpected(TokenIdentLower, TokenIdentUpper)
		}
	}
	return p.finishNode(node)
}
