package highlight

import (
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Syntax is a concrete lexical grammar. The zero value is not usable; obtain
// one from Lookup or Plain.
type Syntax struct {
	lexer chroma.Lexer
}

// plainName is the chroma name of the fallback lexer.
const plainName = "plaintext"

// Name returns the grammar's display name, e.g. "Python".
func (s *Syntax) Name() string {
	return s.lexer.Config().Name
}

// IsPlain reports whether s is the plain-text fallback.
func (s *Syntax) IsPlain() bool {
	return strings.EqualFold(s.Name(), plainName)
}

// Plain returns the plain-text syntax. It always exists.
func Plain() *Syntax {
	return newSyntax(lexers.Fallback)
}

func newSyntax(l chroma.Lexer) *Syntax {
	return &Syntax{lexer: chroma.Coalesce(l)}
}

// broken lists chroma lexers whose grammar never finishes tokenising
// ordinary input. Lookup resolves them to plain text.
var broken = map[string]bool{
	"Jungle": true,
}

// usable returns a Syntax for l, or nil when l is missing or broken.
func usable(l chroma.Lexer) *Syntax {
	if l == nil || broken[l.Config().Name] {
		return nil
	}
	return newSyntax(l)
}

// Lookup resolves a user hint such as "py", "golang", "rs" or "Dockerfile"
// to a Syntax. Resolution order:
//
//  1. chroma name, alias or file extension
//  2. linguist alias (e.g. "node" -> JavaScript)
//  3. linguist file extension
//  4. plain text
//
// Lookup never returns nil.
func Lookup(hint string) *Syntax {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Plain()
	}
	if s := usable(lexers.Get(hint)); s != nil {
		return s
	}
	if lang, ok := enry.GetLanguageByAlias(hint); ok {
		if s := usable(chromaLexer(lang)); s != nil {
			return s
		}
	}
	if lang, _ := enry.GetLanguageByExtension("snippet." + hint); lang != "" {
		if s := usable(chromaLexer(lang)); s != nil {
			return s
		}
	}
	return Plain()
}

// linguistToChroma maps linguist language names to chroma lexer names where
// the two projects disagree.
var linguistToChroma = map[string]string{
	"Shell":            "bash",
	"Vim Script":       "vim",
	"Emacs Lisp":       "emacslisp",
	"Jupyter Notebook": "python",
}

func chromaLexer(linguistName string) chroma.Lexer {
	if name, ok := linguistToChroma[linguistName]; ok {
		linguistName = name
	}
	return lexers.Get(linguistName)
}

// Languages returns the names of all usable syntaxes, sorted.
func Languages() []string {
	all := lexers.Names(false)
	names := make([]string, 0, len(all))
	for _, name := range all {
		if !broken[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Aliases returns the aliases and filename patterns a syntax answers to.
func (s *Syntax) Aliases() []string {
	cfg := s.lexer.Config()
	out := make([]string, 0, len(cfg.Aliases)+len(cfg.Filenames))
	out = append(out, cfg.Aliases...)
	out = append(out, cfg.Filenames...)
	return out
}
