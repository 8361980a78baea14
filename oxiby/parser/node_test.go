package parser

import (
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindError, "ERROR"},
		{KindSourceFile, "source_file"},
		{KindItemFn, "item_fn"},
		{KindItemImpl, "item_impl"},
		{KindFnSignature, "fn_signature"},
		{KindSelfParameter, "self"},
		{KindScopedTypeIdentifier, "scoped_type_identifier"},
		{KindHashMap, "hash_map"},
		{KindExprIdentifier, "expr_identifier"},
		{KindPatternRecordStruct, "pattern_record_struct"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestEveryKindHasAName(t *testing.T) {
	for k := KindError; k <= KindFieldPattern; k++ {
		if k.String() == "Unknown" {
			t.Errorf("NodeKind(%d) has no name", k)
		}
	}
}

func TestSupertypes(t *testing.T) {
	tests := []struct {
		kind  NodeKind
		super Supertype
		want  bool
	}{
		{KindItemEnum, SupertypeItem, true},
		{KindItemUse, SupertypeItem, true},
		{KindFnSignature, SupertypeItem, false},
		{KindBinary, SupertypeExpression, true},
		{KindBlock, SupertypeExpression, true},
		{KindEnumLiteral, SupertypeExpression, true},
		{KindMatchArm, SupertypeExpression, false},
		{KindHashMapEntry, SupertypeExpression, false},
		{KindBlock, SupertypeExpressionWithTrailingBlock, true},
		{KindConditional, SupertypeExpressionWithTrailingBlock, false},
		{KindItemFn, SupertypeExpression, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.super.String(), func(t *testing.T) {
			if got := tt.kind.Is(tt.super); got != tt.want {
				t.Errorf("%s.Is(%s) = %v, want %v", tt.kind, tt.super, got, tt.want)
			}
		})
	}
}

func TestNodeAddChild(t *testing.T) {
	parent := &Node{Kind: KindBlock}
	child1 := &Node{Kind: KindInteger}
	child2 := &Node{Kind: KindString}

	parent.AddChild(child1)
	parent.AddField("expression", child2)
	parent.AddChild(nil)

	if len(parent.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(parent.Children))
	}
	if parent.FieldName(0) != "" {
		t.Errorf("FieldName(0) = %q, want empty", parent.FieldName(0))
	}
	if parent.FieldName(1) != "expression" {
		t.Errorf("FieldName(1) = %q, want expression", parent.FieldName(1))
	}
	if parent.FieldName(5) != "" {
		t.Errorf("FieldName out of range should be empty")
	}
}

func TestNodeFields(t *testing.T) {
	n := &Node{Kind: KindList}
	a := &Node{Kind: KindInteger}
	b := &Node{Kind: KindInteger}
	n.AddField("element", a)
	n.AddField("element", b)

	if n.Field("element") != a {
		t.Error("Field should return the first child with the name")
	}
	if got := n.FieldAll("element"); len(got) != 2 || got[1] != b {
		t.Errorf("FieldAll = %v", got)
	}
	if n.Field("missing") != nil || n.HasField("missing") {
		t.Error("missing field should be absent")
	}
	if len(n.ChildrenOfKind(KindInteger)) != 2 {
		t.Error("ChildrenOfKind should find both integers")
	}
	if n.FirstChildOfKind(KindString) != nil {
		t.Error("FirstChildOfKind should return nil for an absent kind")
	}
}

func TestNodeString(t *testing.T) {
	node := parseExpr(t, "f(1)")
	want := `call
  name: expr_identifier f
  arguments: arguments
    positional: positional_args
      expression: integer 1
`
	if got := node.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestNodeText(t *testing.T) {
	src := []byte("let x = 1 + 2")
	node := parseExpr(t, string(src))
	if got := node.Field("value").Text(src); got != "1 + 2" {
		t.Errorf("Text() = %q, want %q", got, "1 + 2")
	}
}
