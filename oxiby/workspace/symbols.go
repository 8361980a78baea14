package workspace

import (
	"strings"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolMethod
	SymbolStruct
	SymbolEnum
	SymbolVariant
	SymbolField
	SymbolTrait
	SymbolImpl
	SymbolAssociatedType
	SymbolImport
)

var symbolKindNames = [...]string{
	SymbolFunction:       "function",
	SymbolMethod:         "method",
	SymbolStruct:         "struct",
	SymbolEnum:           "enum",
	SymbolVariant:        "variant",
	SymbolField:          "field",
	SymbolTrait:          "trait",
	SymbolImpl:           "impl",
	SymbolAssociatedType: "type",
	SymbolImport:         "use",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "unknown"
}

// Symbol is one entry in the outline of a file.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Span covers the whole declaration, NameSpan only its name.
	Span     parser.Span
	NameSpan parser.Span
	Doc      string
	Children []Symbol
}

// Symbols returns the outline of path, or nil when the file is unknown or
// has no tree.
func (w *Workspace) Symbols(path string) []Symbol {
	f := w.GetFile(path)
	if f == nil || f.Tree == nil {
		return nil
	}
	return Outline(f.Tree)
}

// Outline lists the items of tree with their members nested below them.
func Outline(tree *parser.Tree) []Symbol {
	var symbols []Symbol
	for _, item := range tree.Items() {
		if sym, ok := itemSymbol(tree, item); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func itemSymbol(tree *parser.Tree, item *parser.Node) (Symbol, bool) {
	switch item.Kind {
	case parser.KindItemFn:
		return fnSymbol(tree, item, SymbolFunction), true

	case parser.KindItemStruct:
		sym := newSymbol(tree, item, item.Field("name"), SymbolStruct)
		if body := item.Field("body"); body != nil {
			for i, field := range body.FieldAll("field") {
				if name := field.Field("name"); name != nil {
					sym.Children = append(sym.Children, newSymbol(tree, field, name, SymbolField))
				} else {
					// tuple struct fields are positional
					child := newSymbol(tree, field, field, SymbolField)
					child.Name = itoa(i)
					sym.Children = append(sym.Children, child)
				}
			}
			sym.Children = append(sym.Children, methodSymbols(tree, body)...)
		}
		return sym, true

	case parser.KindItemEnum:
		sym := newSymbol(tree, item, item.Field("name"), SymbolEnum)
		for _, variant := range item.FieldAll("variant") {
			sym.Children = append(sym.Children, newSymbol(tree, variant, variant.Field("name"), SymbolVariant))
		}
		sym.Children = append(sym.Children, methodSymbols(tree, item)...)
		return sym, true

	case parser.KindItemTrait:
		sym := newSymbol(tree, item, item.Field("name"), SymbolTrait)
		sym.Children = append(sym.Children, associatedTypeSymbols(tree, item)...)
		sym.Children = append(sym.Children, methodSymbols(tree, item)...)
		return sym, true

	case parser.KindItemImpl:
		sym := newSymbol(tree, item, item.Field("type_name"), SymbolImpl)
		sym.Name = tree.Text(item.Field("trait_name")) + " for " + tree.Text(item.Field("type_name"))
		sym.Children = append(sym.Children, associatedTypeSymbols(tree, item)...)
		sym.Children = append(sym.Children, methodSymbols(tree, item)...)
		return sym, true

	case parser.KindItemUse:
		module := item.Field("module")
		var segments []string
		for _, seg := range module.FieldAll("segment") {
			segments = append(segments, tree.Text(seg))
		}
		sym := newSymbol(tree, item, module, SymbolImport)
		sym.Name = strings.Join(segments, ".")
		for _, imp := range item.FieldAll("import") {
			name := imp.Field("rename")
			if name == nil {
				name = imp.Field("name")
			}
			sym.Children = append(sym.Children, newSymbol(tree, imp, name, SymbolImport))
		}
		return sym, true
	}
	return Symbol{}, false
}

func fnSymbol(tree *parser.Tree, fn *parser.Node, kind SymbolKind) Symbol {
	sig := fn
	if fn.Kind == parser.KindItemFn {
		sig = fn.Field("signature")
	}
	return newSymbol(tree, fn, sig.Field("name"), kind)
}

func methodSymbols(tree *parser.Tree, owner *parser.Node) []Symbol {
	var symbols []Symbol
	for _, fn := range owner.FieldAll("functions") {
		symbols = append(symbols, fnSymbol(tree, fn, SymbolMethod))
	}
	return symbols
}

func associatedTypeSymbols(tree *parser.Tree, owner *parser.Node) []Symbol {
	var symbols []Symbol
	for _, typ := range owner.FieldAll("associated_types") {
		symbols = append(symbols, newSymbol(tree, typ, typ.Field("name"), SymbolAssociatedType))
	}
	return symbols
}

func newSymbol(tree *parser.Tree, decl, name *parser.Node, kind SymbolKind) Symbol {
	sym := Symbol{
		Kind: kind,
		Span: decl.Span,
		Doc:  tree.DocComment(decl),
	}
	if name != nil {
		sym.Name = tree.Text(name)
		sym.NameSpan = name.Span
	} else {
		sym.NameSpan = decl.Span
	}
	return sym
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + itoa(i%10)
}
