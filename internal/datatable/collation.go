package datatable

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation turns a string into a sort key. Keys are compared bytewise, so a
// collation only has to be evaluated once per record and path during a sort.
type Collation interface {
	Key(s string) []byte
}

// LocaleCollator orders strings by the collation rules of a language, so
// accented letters sort next to their base letters ("ącki" near "Ananas"),
// subject to locale tailoring.
//
// A LocaleCollator reuses an internal buffer and is not safe for concurrent use.
type LocaleCollator struct {
	tag      language.Tag
	collator *collate.Collator
	buf      collate.Buffer
}

// LocaleCollation returns a collation for the given language tag.
// Use language.Und for the root (language-neutral) ordering.
func LocaleCollation(tag language.Tag, opts ...collate.Option) *LocaleCollator {
	return &LocaleCollator{
		tag:      tag,
		collator: collate.New(tag, opts...),
	}
}

// Key returns the collation key for s.
func (c *LocaleCollator) Key(s string) []byte {
	key := c.collator.KeyFromString(&c.buf, s)
	out := make([]byte, len(key))
	copy(out, key)
	c.buf.Reset()
	return out
}

// Tag returns the language the collator was built for.
func (c *LocaleCollator) Tag() language.Tag {
	return c.tag
}

type caseInsensitive struct{}

// CaseInsensitiveCollation orders strings by the code points of their lower-cased
// form. Accented letters sort after the whole Latin alphabet.
//
//nolint:gochecknoglobals // Stateless collation shared by all controllers.
var CaseInsensitiveCollation Collation = caseInsensitive{}

func (caseInsensitive) Key(s string) []byte {
	return []byte(strings.ToLower(s))
}
