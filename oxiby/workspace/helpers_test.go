package workspace

import "github.com/dhamidi/oxiparse/oxiby/parser"

func tokenizeForTest(src []byte) ([]parser.Token, []parser.Token) {
	return parser.Tokenize(src, "")
}
