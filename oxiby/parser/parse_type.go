package parser

func (p *Parser) parseType() *Node {
	p.enter()
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case TokenIdentLower:
		return p.leaf(KindVariableType)
	case TokenLParen:
		return p.parseTupleType()
	case TokenIdentUpper:
		if tok.Literal == "Fn" && p.peekN(1).Kind == TokenLParen {
			return p.parseFunctionType()
		}
		return p.parseConcreteType()
	}
	p.errorExpectedWhat("type")
	return nil
}

// (T, U, ...)
func (p *Parser) parseTupleType() *Node {
	node := p.startNode(KindTupleType)
	p.expect(TokenLParen)
	for !p.check(TokenRParen) {
		node.AddField("type", p.parseType())
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// Fn(T, U) -> R
func (p *Parser) parseFunctionType() *Node {
	node := p.startNode(KindFunctionType)
	p.advance()
	p.expect(TokenLParen)
	for !p.check(TokenRParen) {
		node.AddField("parameter", p.parseType())
		if !p.match(TokenComma) {
			break
		}
	}
	p.expect(TokenRParen)
	if p.match(TokenArrow) {
		node.AddField("return_type", p.parseType())
	}
	return p.finishNode(node)
}

// [Qualifier.]TypeName[<T, U>]
func (p *Parser) parseConcreteType() *Node {
	node := p.startNode(KindConcreteType)
	name := p.expectLeaf(KindTypeIdentifier, TokenIdentUpper)
	if p.check(TokenDot) && p.peekN(1).Kind == TokenIdentUpper {
		p.advance()
		node.AddField("qualifier", name)
		name = p.leaf(KindTypeIdentifier)
	}
	node.AddField("type_name", name)
	if p.check(TokenLT) {
		node.AddField("type_parameters", p.parseTypeParams())
	}
	return p.finishNode(node)
}

// <T, U>
func (p *Parser) parseTypeParams() *Node {
	node := p.startNode(KindTypeParams)
	p.expect(TokenLT)
	for {
		node.AddField("type", p.parseType())
		if !p.match(TokenComma) {
			break
		}
	}
	p.expectGT()
	return p.finishNode(node)
}
