package parser

import (
	"fmt"
	"io"
)

// DefaultMaxDepth bounds the nesting of expressions, types, patterns and
// blocks. Deeper input is rejected with a structural error.
const DefaultMaxDepth = 256

// Policy selects how the source file driver reacts to errors.
type Policy int

const (
	// PolicyFailFast stops at the first error and returns no tree.
	PolicyFailFast Policy = iota
	// PolicyTolerant wraps each unparseable region in an ERROR node,
	// resumes at the next top-level item and collects every error.
	PolicyTolerant
)

func (p Policy) String() string {
	if p == PolicyTolerant {
		return "tolerant"
	}
	return "fail-fast"
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail-fast", "failfast":
		return PolicyFailFast, nil
	case "tolerant":
		return PolicyTolerant, nil
	}
	return PolicyFailFast, fmt.Errorf("unknown error policy %q (want fail-fast or tolerant)", s)
}

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithPolicy(policy Policy) Option {
	return func(p *Parser) {
		p.policy = policy
	}
}

func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

type parseFunc func(*Parser) *Node

type Parser struct {
	file            string
	policy          Policy
	maxDepth        int
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	comments        []Token
	// braces[i] is the brace nesting depth in front of tokens[i]
	braces   []int
	pos      int
	lastEnd  Position
	entry    parseFunc
	depth    int
	noStruct bool
	errors   ErrorList
}

// bailout carries a parse error up the stack to the driver. Grammar rules
// never recover from one.
type bailout struct {
	err *Error
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		reader:   r,
		entry:    entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSourceFile prepares a parser for a whole file. The root of the
// result is a source_file node.
func ParseSourceFile(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSourceFile, opts)
}

// ParseItem prepares a parser for exactly one item.
func ParseItem(r io.Reader, opts ...Option) *Parser {
	return newParser(r, parseSingle((*Parser).parseItem), opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, parseSingle((*Parser).parseExpression), opts)
}

func ParseType(r io.Reader, opts ...Option) *Parser {
	return newParser(r, parseSingle((*Parser).parseType), opts)
}

func ParsePattern(r io.Reader, opts ...Option) *Parser {
	return newParser(r, parseSingle((*Parser).parsePattern), opts)
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) Policy() Policy {
	return p.policy
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	if p.reader == nil {
		p.input = []byte{}
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// IsComplete reports whether the input parses without running off the end
// of the input. "1 + " is incomplete, "1 + )" is complete but invalid.
func (p *Parser) IsComplete() bool {
	if err := p.readAll(); err != nil {
		return false
	}
	saved := *p
	defer func() { *p = saved }()

	p.policy = PolicyFailFast
	p.start()
	_, err := p.run()
	for _, e := range AsErrors(err) {
		if e.Got != nil && e.Got.Kind == TokenEOF {
			return false
		}
	}
	return true
}

// Finish parses the input. Under PolicyFailFast the first error is
// returned with a nil node. Under PolicyTolerant a source file is always
// returned, together with an ErrorList when anything failed.
func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, err
	}
	p.start()
	return p.run()
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.tokens = nil
	p.comments = nil
	p.braces = nil
	p.pos = 0
	p.errors = nil
}

func (p *Parser) start() {
	p.tokens = nil
	p.comments = nil
	p.braces = nil
	p.pos = 0
	p.depth = 0
	p.noStruct = false
	p.errors = nil
	p.lastEnd = Position{File: p.file, Line: 1, Column: 1}
	p.tokenize()
}

func (p *Parser) run() (node *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			node, err = nil, b.err
		}
	}()
	node = p.entry(p)
	if len(p.errors) > 0 {
		return node, p.errors
	}
	return node, nil
}

func (p *Parser) tokenize() {
	tokens, trivia := Tokenize(p.input, p.file)
	if p.includeComments {
		for _, tok := range trivia {
			if tok.Kind == TokenComment {
				p.comments = append(p.comments, tok)
			}
		}
	}
	p.tokens = tokens
	p.braces = make([]int, len(tokens))
	depth := 0
	for i, tok := range tokens {
		p.braces[i] = depth
		switch tok.Kind {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			if depth > 0 {
				depth--
			}
		}
	}
}

func parseSingle(rule parseFunc) parseFunc {
	return func(p *Parser) *Node {
		node := rule(p)
		if !p.check(TokenEOF) {
			p.errorExpected(TokenEOF)
		}
		return node
	}
}

func (p *Parser) parseSourceFile() *Node {
	node := &Node{Kind: KindSourceFile}
	node.Span.Start = Position{File: p.file, Offset: 0, Line: 1, Column: 1}
	for !p.check(TokenEOF) {
		if p.policy == PolicyTolerant {
			node.AddChild(p.parseItemTolerant())
		} else {
			node.AddChild(p.parseItem())
		}
	}
	node.Span.End = p.peek().Span.End
	return node
}

// parseItemTolerant parses one item. On failure the error is recorded and
// the tokens up to the next top-level item keyword become an ERROR node.
func (p *Parser) parseItemTolerant() (node *Node) {
	start := p.pos
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			p.errors = append(p.errors, b.err)
			p.depth = 0
			node = p.skipToItem(start, b.err)
		}
	}()
	return p.parseItem()
}

func (p *Parser) skipToItem(start int, err *Error) *Node {
	p.pos = start + 1
	for p.pos < len(p.tokens)-1 {
		if p.braces[p.pos] == 0 && isItemStart(p.tokens[p.pos].Kind) {
			break
		}
		p.pos++
	}
	if p.pos > len(p.tokens)-1 {
		p.pos = len(p.tokens) - 1
	}
	last := p.tokens[p.pos-1]
	p.lastEnd = last.Span.End
	return &Node{
		Kind:  KindError,
		Span:  Span{Start: p.tokens[start].Span.Start, End: last.Span.End},
		Error: err,
	}
}

func isItemStart(kind TokenKind) bool {
	switch kind {
	case TokenPub, TokenEnum, TokenFn, TokenStruct, TokenTrait, TokenImpl, TokenUse:
		return true
	}
	return false
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) Token {
	if !p.check(kind) {
		p.errorExpected(kind)
	}
	return p.advance()
}

// expectGT consumes a closing ">" of a generic list, splitting ">=" so
// that "List<Int>= x" reads as "List<Int>" followed by "=".
func (p *Parser) expectGT() {
	tok := p.peek()
	switch tok.Kind {
	case TokenGT:
		p.advance()
		return
	case TokenGE:
		mid := tok.Span.Start
		mid.Offset++
		mid.Column++
		p.lastEnd = mid
		p.tokens[p.pos] = Token{
			Kind:    TokenAssign,
			Span:    Span{Start: mid, End: tok.Span.End},
			Literal: "=",
		}
		return
	}
	p.errorExpected(TokenGT)
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{Kind: kind, Span: Span{Start: p.peek().Span.Start}}
}

func (p *Parser) startNodeAt(kind NodeKind, start Position) *Node {
	return &Node{Kind: kind, Span: Span{Start: start}}
}

// startNodeFrom opens a node that begins with an already parsed child.
func (p *Parser) startNodeFrom(kind NodeKind, first *Node) *Node {
	return &Node{Kind: kind, Span: Span{Start: first.Span.Start}}
}

func (p *Parser) finishNode(node *Node) *Node {
	node.Span.End = p.lastEnd
	return node
}

// leaf consumes the current token as a childless node of the given kind.
func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Span: tok.Span, Token: &tok}
}

func (p *Parser) expectLeaf(kind NodeKind, tokKind TokenKind) *Node {
	if !p.check(tokKind) {
		p.errorExpected(tokKind)
	}
	return p.leaf(kind)
}

// enter guards recursion depth; every call must be paired with leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		p.fail(ClassStructural, p.peek(), nil, "nesting exceeds the maximum depth of %d", p.maxDepth)
	}
}

func (p *Parser) leave() {
	p.depth--
}

// withStructLiterals runs rule with struct literals allowed or forbidden
// at the outermost level of the expression it parses.
func (p *Parser) withStructLiterals(allowed bool, rule func() *Node) *Node {
	saved := p.noStruct
	p.noStruct = !allowed
	defer func() { p.noStruct = saved }()
	return rule()
}

func (p *Parser) fail(class ErrorClass, tok Token, expected []TokenKind, format string, args ...any) {
	if tok.Kind == TokenError {
		class = ClassLexical
		expected = nil
		if len(tok.Literal) > 0 && tok.Literal[0] == '"' {
			format, args = "unterminated string literal", nil
		} else {
			format, args = "unexpected character %q", []any{tok.Literal}
		}
	}
	got := tok
	panic(bailout{err: &Error{
		Class:    class,
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
		Got:      &got,
		Pos:      tok.Span.Start,
	}})
}

func (p *Parser) errorExpected(expected ...TokenKind) {
	tok := p.peek()
	p.fail(ClassSyntax, tok, expected, "expected %s, found %s", describeExpected(expected), tok)
}

func (p *Parser) errorExpectedWhat(what string) {
	tok := p.peek()
	p.fail(ClassSyntax, tok, nil, "expected %s, found %s", what, tok)
}
