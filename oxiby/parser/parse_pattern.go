package parser

func (p *Parser) parsePattern() *Node {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case TokenTrue, TokenFalse, TokenInt, TokenFloat, TokenString:
		node := p.startNode(KindPatternLiteral)
		node.AddField("value", p.parseLiteral())
		return p.finishNode(node)
	case TokenIdentLower:
		if tok.Literal == "_" {
			return p.leaf(KindWildcardPattern)
		}
		return p.leaf(KindExprIdentifier)
	case TokenIdentUpper:
		return p.parseStructPattern()
	case TokenLParen:
		return p.parseTuplePattern()
	case TokenLBracket:
		return p.parseListPattern()
	}
	p.errorExpectedWhat("pattern")
	return nil
}

// parseStructPattern handles the patterns led by a type name: a unit
// pattern, Name(p, ...) and Name { field: p, ... }.
func (p *Parser) parseStructPattern() *Node {
	typ := p.parseScopedTypeIdentifier()
	switch p.peek().Kind {
	case TokenLParen:
		node := p.startNodeFrom(KindPatternTupleStruct, typ)
		node.AddField("type", typ)
		p.advance()
		for !p.check(TokenRParen) {
			node.AddField("pattern", p.parsePattern())
			if !p.match(TokenComma) {
				break
			}
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	case TokenLBrace:
		node := p.startNodeFrom(KindPatternRecordStruct, typ)
		node.AddField("type", typ)
		p.advance()
		for !p.check(TokenRBrace) {
			field := p.startNode(KindFieldPattern)
			field.AddField("name", p.expectLeaf(KindExprIdentifier, TokenIdentLower))
			p.expect(TokenColon)
			field.AddField("pattern", p.parsePattern())
			node.AddField("field", p.finishNode(field))
			if !p.match(TokenComma) {
				break
			}
		}
		p.expect(TokenRBrace)
		return p.finishNode(node)
	}
	return typ
}

// (p) groups, (p,) and (p, q) are tuples, () is the empty tuple.
func (p *Parser) parseTuplePattern() *Node {
	node := p.startNode(KindPatternTuple)
	p.expect(TokenLParen)
	if p.match(TokenRParen) {
		return p.finishNode(node)
	}
	first := p.parsePattern()
	if p.match(TokenRParen) {
		return first
	}
	node.AddField("pattern", first)
	p.expect(TokenComma)
	for !p.check(TokenRParen) {
		node.AddField("pattern", p.parsePattern())
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseListPattern() *Node {
	node := p.startNode(KindPatternList)
	p.expect(TokenLBracket)
	for !p.check(TokenRBracket) {
		node.AddField("pattern", p.parsePattern())
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

// Name or Scope.Name
func (p *Parser) parseScopedTypeIdentifier() *Node {
	name := p.expectLeaf(KindTypeIdentifier, TokenIdentUpper)
	if !p.check(TokenDot) || p.peekN(1).Kind != TokenIdentUpper {
		return name
	}
	node := p.startNodeFrom(KindScopedTypeIdentifier, name)
	node.AddField("scope", name)
	p.advance()
	node.AddField("name", p.leaf(KindTypeIdentifier))
	return p.finishNode(node)
}
