package console

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Segment is a run of command text with one highlight class. Class is a
// theme part under the console kind; "" means plain output.
type Segment struct {
	Text  string
	Class string
}

const (
	ClassPlain   = ""
	ClassKeyword = "keyword"
	ClassString  = "string"
	ClassBuiltin = "builtin"
)

var (
	lexerOnce sync.Once
	bash      chroma.Lexer
)

func bashLexer() chroma.Lexer {
	lexerOnce.Do(func() {
		if l := lexers.Get("bash"); l != nil {
			bash = chroma.Coalesce(l)
		}
	})
	return bash
}

// Highlight splits a command line into classed segments using the bash
// lexer. Joining the segment texts gives back the command. A leading '!'
// shell escape is kept as plain text.
func Highlight(command string) []Segment {
	var segs []Segment
	body := command
	if strings.HasPrefix(body, "!") {
		segs = append(segs, Segment{Text: "!"})
		body = body[1:]
	}

	lexer := bashLexer()
	if lexer == nil {
		return append(segs, Segment{Text: body})
	}
	it, err := lexer.Tokenise(nil, body)
	if err != nil {
		return append(segs, Segment{Text: body})
	}

	for _, tok := range it.Tokens() {
		text := strings.ReplaceAll(tok.Value, "\n", "")
		if text == "" {
			continue
		}
		class := classOf(tok.Type)
		if n := len(segs); n > 0 && segs[n-1].Class == class {
			segs[n-1].Text += text
			continue
		}
		segs = append(segs, Segment{Text: text, Class: class})
	}
	return segs
}

func classOf(t chroma.TokenType) string {
	switch {
	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return ClassBuiltin
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	}
	return ClassPlain
}
