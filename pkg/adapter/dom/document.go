package dom

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"golang.org/x/net/html"
)

// Document is an in-memory HTML page usable as a render backend. It is safe
// for concurrent use.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

var _ interfaces.RenderBackend = &Document{}

func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse HTML document", goerr.T(errs.TagInvalidRequest))
	}
	return &Document{root: root}, nil
}

// Select compiles a CSS selector group. The target matches elements at write
// time, so elements added later are included and zero matches is not an error.
func (x *Document) Select(ctx context.Context, selector string) (interfaces.RenderTarget, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}
	return &documentTarget{doc: x, selector: selector, sel: sel}, nil
}

// Render writes the whole document as HTML.
func (x *Document) Render(w io.Writer) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := html.Render(w, x.root); err != nil {
		return goerr.Wrap(err, "failed to render HTML document")
	}
	return nil
}

// InnerHTML returns the inner HTML of every element matched by selector.
func (x *Document) InnerHTML(selector string) ([]string, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	var result []string
	for _, node := range cascadia.QueryAll(x.root, sel) {
		var b strings.Builder
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&b, c); err != nil {
				return nil, goerr.Wrap(err, "failed to render element content", goerr.V("selector", selector))
			}
		}
		result = append(result, b.String())
	}
	return result, nil
}

type documentTarget struct {
	doc      *Document
	selector string
	sel      cascadia.SelectorGroup
}

func (x *documentTarget) SetHTML(ctx context.Context, content string) error {
	x.doc.mu.Lock()
	defer x.doc.mu.Unlock()

	nodes := cascadia.QueryAll(x.doc.root, x.sel)
	for _, node := range nodes {
		fragment, err := html.ParseFragment(strings.NewReader(content), node)
		if err != nil {
			return goerr.Wrap(err, "failed to parse HTML content", goerr.V("selector", x.selector))
		}

		for c := node.FirstChild; c != nil; {
			next := c.NextSibling
			node.RemoveChild(c)
			c = next
		}
		for _, child := range fragment {
			node.AppendChild(child)
		}
	}

	logging.From(ctx).Debug("rendered into document",
		"selector", x.selector,
		"matched", len(nodes))
	return nil
}

func compileSelector(selector string) (cascadia.SelectorGroup, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid selector",
			goerr.V("selector", selector),
			goerr.T(errs.TagInvalidRequest))
	}
	return sel, nil
}
