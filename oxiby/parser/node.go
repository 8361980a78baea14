package parser

import (
	"strconv"
	"strings"
)

type NodeKind int

const (
	KindError NodeKind = iota

	KindSourceFile

	// Items
	KindItemEnum
	KindItemFn
	KindItemImpl
	KindItemStruct
	KindItemTrait
	KindItemUse

	// Item components
	KindFnSignature
	KindVisibilityModifier
	KindTupleStruct
	KindRecordStruct
	KindFieldDeclaration
	KindVariant
	KindTupleVariant
	KindRecordVariant
	KindTypeParams
	KindWhereClause
	KindConstraint
	KindBounds
	KindAssociatedType
	KindModulePath
	KindImport

	// Parameters and arguments
	KindParameters
	KindPositionalParams
	KindKeywordParams
	KindParameter
	KindKeywordParameter
	KindSelfParameter
	KindArguments
	KindPositionalArgs
	KindKeywordArgs
	KindKeywordArgument

	// Identifiers
	KindExprIdentifier
	KindTypeIdentifier
	KindScopedExprIdentifier
	KindScopedTypeIdentifier

	// Types
	KindVariableType
	KindTupleType
	KindFunctionType
	KindConcreteType

	// Expressions
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindRange
	KindHashMap
	KindHashMapEntry
	KindList
	KindTuple
	KindStructLiteral
	KindFieldInitializer
	KindEnumLiteral
	KindField
	KindIndex
	KindCall
	KindClosure
	KindClosureParameter
	KindBreak
	KindContinue
	KindReturn
	KindConditional
	KindForLoop
	KindLoop
	KindWhileLoop
	KindLet
	KindMatch
	KindMatchBody
	KindMatchArm
	KindAssignment
	KindUnary
	KindBinary
	KindOperator
	KindParenthesized
	KindBlock

	// Patterns
	KindPatternLiteral
	KindWildcardPattern
	KindPatternTuple
	KindPatternList
	KindPatternTupleStruct
	KindPatternRecordStruct
	KindFieldPattern
)

var nodeKindNames = map[NodeKind]string{
	KindError:      "ERROR",
	KindSourceFile: "source_file",

	KindItemEnum:   "item_enum",
	KindItemFn:     "item_fn",
	KindItemImpl:   "item_impl",
	KindItemStruct: "item_struct",
	KindItemTrait:  "item_trait",
	KindItemUse:    "item_use",

	KindFnSignature:        "fn_signature",
	KindVisibilityModifier: "visibility_modifier",
	KindTupleStruct:        "tuple_struct",
	KindRecordStruct:       "record_struct",
	KindFieldDeclaration:   "field_declaration",
	KindVariant:            "variant",
	KindTupleVariant:       "tuple_variant",
	KindRecordVariant:      "record_variant",
	KindTypeParams:         "type_params",
	KindWhereClause:        "where_clause",
	KindConstraint:         "constraint",
	KindBounds:             "bounds",
	KindAssociatedType:     "associated_type",
	KindModulePath:         "module_path",
	KindImport:             "import",

	KindParameters:       "parameters",
	KindPositionalParams: "positional_params",
	KindKeywordParams:    "keyword_params",
	KindParameter:        "parameter",
	KindKeywordParameter: "keyword_parameter",
	KindSelfParameter:    "self",
	KindArguments:        "arguments",
	KindPositionalArgs:   "positional_args",
	KindKeywordArgs:      "keyword_args",
	KindKeywordArgument:  "keyword_argument",

	KindExprIdentifier:       "expr_identifier",
	KindTypeIdentifier:       "type_identifier",
	KindScopedExprIdentifier: "scoped_expr_identifier",
	KindScopedTypeIdentifier: "scoped_type_identifier",

	KindVariableType: "variable_type",
	KindTupleType:    "tuple_type",
	KindFunctionType: "function_type",
	KindConcreteType: "concrete_type",

	KindBoolean:          "boolean",
	KindInteger:          "integer",
	KindFloat:            "float",
	KindString:           "string",
	KindRange:            "range",
	KindHashMap:          "hash_map",
	KindHashMapEntry:     "hash_map_entry",
	KindList:             "list",
	KindTuple:            "tuple",
	KindStructLiteral:    "struct_literal",
	KindFieldInitializer: "field_initializer",
	KindEnumLiteral:      "enum_literal",
	KindField:            "field",
	KindIndex:            "index",
	KindCall:             "call",
	KindClosure:          "closure",
	KindClosureParameter: "closure_parameter",
	KindBreak:            "break",
	KindContinue:         "continue",
	KindReturn:           "return",
	KindConditional:      "conditional",
	KindForLoop:          "for_loop",
	KindLoop:             "loop",
	KindWhileLoop:        "while_loop",
	KindLet:              "let",
	KindMatch:            "match",
	KindMatchBody:        "match_body",
	KindMatchArm:         "match_arm",
	KindAssignment:       "assignment",
	KindUnary:            "unary",
	KindBinary:           "binary",
	KindOperator:         "operator",
	KindParenthesized:    "parenthesized",
	KindBlock:            "block",

	KindPatternLiteral:      "pattern_literal",
	KindWildcardPattern:     "wildcard_pattern",
	KindPatternTuple:        "pattern_tuple",
	KindPatternList:         "pattern_list",
	KindPatternTupleStruct:  "pattern_tuple_struct",
	KindPatternRecordStruct: "pattern_record_struct",
	KindFieldPattern:        "field_pattern",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Supertype names a set of node kinds that may appear interchangeably at a
// grammar position.
type Supertype int

const (
	SupertypeItem Supertype = iota
	SupertypeExpression
	SupertypeExpressionWithTrailingBlock
)

func (s Supertype) String() string {
	switch s {
	case SupertypeItem:
		return "item"
	case SupertypeExpression:
		return "expression"
	case SupertypeExpressionWithTrailingBlock:
		return "expression_with_trailing_block"
	}
	return "Unknown"
}

// Is reports whether k belongs to the supertype s.
func (k NodeKind) Is(s Supertype) bool {
	switch s {
	case SupertypeItem:
		switch k {
		case KindItemEnum, KindItemFn, KindItemImpl, KindItemStruct, KindItemTrait, KindItemUse:
			return true
		}
	case SupertypeExpression:
		switch k {
		case KindBoolean, KindInteger, KindFloat, KindString, KindRange,
			KindHashMap, KindList, KindTuple,
			KindStructLiteral, KindEnumLiteral,
			KindExprIdentifier, KindTypeIdentifier, KindScopedExprIdentifier, KindScopedTypeIdentifier,
			KindField, KindIndex, KindCall, KindClosure,
			KindBreak, KindConditional, KindContinue, KindForLoop, KindLoop, KindReturn, KindWhileLoop,
			KindLet, KindMatch,
			KindAssignment, KindUnary, KindBinary, KindParenthesized:
			return true
		}
		return k.Is(SupertypeExpressionWithTrailingBlock)
	case SupertypeExpressionWithTrailingBlock:
		return k == KindBlock
	}
	return false
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
	// fields[i] is the field name of Children[i], or "" when unnamed.
	fields []string
}

func (n *Node) AddChild(child *Node) {
	n.AddField("", child)
}

// AddField appends child under the given field name. Fields may repeat;
// FieldAll returns every child with the name in order.
func (n *Node) AddField(name string, child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	n.fields = append(n.fields, name)
}

// Field returns the first child stored under name, or nil if the field is
// absent.
func (n *Node) Field(name string) *Node {
	for i, f := range n.fields {
		if f == name {
			return n.Children[i]
		}
	}
	return nil
}

func (n *Node) FieldAll(name string) []*Node {
	var result []*Node
	for i, f := range n.fields {
		if f == name {
			result = append(result, n.Children[i])
		}
	}
	return result
}

func (n *Node) HasField(name string) bool {
	return n.Field(name) != nil
}

// FieldName returns the field name of the i-th child.
func (n *Node) FieldName(i int) string {
	if i < 0 || i >= len(n.fields) {
		return ""
	}
	return n.fields[i]
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Text returns the slice of src covered by the node.
func (n *Node) Text(src []byte) string {
	start, end := n.Span.Start.Offset, n.Span.End.Offset
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return string(src[start:end])
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Inclusive reports whether a range node uses the "..=" operator.
func (n *Node) Inclusive() bool {
	if n.Kind != KindRange {
		return false
	}
	op := n.Field("operator")
	return op != nil && op.Token != nil && op.Token.Kind == TokenRangeInclusive
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, "", false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, "", true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, field string, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	if field != "" {
		sb.WriteString(field)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: " + n.Error.Message)
	}
	sb.WriteString("\n")

	for i, child := range n.Children {
		child.writeIndent(sb, indent+1, n.FieldName(i), showPositions)
	}
}

// SExpr renders the node as an S-expression in the style of tree-sitter,
// with field names and the literal text of leaf tokens:
//
//	(binary lhs: (integer "1") operator: (operator "+") rhs: (integer "2"))
func (n *Node) SExpr() string {
	var sb strings.Builder
	n.writeSExpr(&sb)
	return sb.String()
}

func (n *Node) writeSExpr(sb *strings.Builder) {
	sb.WriteString("(")
	sb.WriteString(n.Kind.String())
	if n.Token != nil && len(n.Children) == 0 {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(n.Token.Literal))
	}
	for i, child := range n.Children {
		sb.WriteString(" ")
		if name := n.FieldName(i); name != "" {
			sb.WriteString(name)
			sb.WriteString(": ")
		}
		child.writeSExpr(sb)
	}
	sb.WriteString(")")
}
