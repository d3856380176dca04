package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document answers read-only, path-based queries against a parsed HTML
// tree. A Document returned by AllMatching is scoped to that node's
// subtree, so the same queries work recursively.
//
// Absence is always distinguishable from emptiness: every lookup reports
// ok=false when the path matched zero nodes (or the attribute does not
// exist), never an empty string.
type Document struct {
	sel *goquery.Selection
}

// Parse builds a Document from raw markup.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{sel: doc.Selection}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// TextOfFirst returns the trimmed text of the first node matching path.
func (d *Document) TextOfFirst(path string) (string, bool) {
	match := d.sel.Find(path).First()
	if match.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(match.Text()), true
}

// AttrOfFirst returns an attribute of the first node matching path. It
// reports false when no node matches or the node lacks the attribute.
func (d *Document) AttrOfFirst(path, attr string) (string, bool) {
	match := d.sel.Find(path).First()
	if match.Length() == 0 {
		return "", false
	}
	return match.Attr(attr)
}

// HTMLOfFirst returns the inner markup of the first node matching path.
func (d *Document) HTMLOfFirst(path string) (string, bool) {
	match := d.sel.Find(path).First()
	if match.Length() == 0 {
		return "", false
	}
	inner, err := match.Html()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// AllMatching returns one sub-document per node matching path, in
// document order. Zero matches yields an empty, non-nil slice.
func (d *Document) AllMatching(path string) []*Document {
	docs := make([]*Document, 0)
	d.sel.Find(path).Each(func(i int, s *goquery.Selection) {
		docs = append(docs, &Document{sel: s})
	})
	return docs
}

// Text returns the trimmed text content of the document's own subtree.
func (d *Document) Text() string {
	return strings.TrimSpace(d.sel.Text())
}

// Attr returns an attribute of the document's own root node.
func (d *Document) Attr(name string) (string, bool) {
	return d.sel.Attr(name)
}
