// Package greeter provides Greeter, a small value object that formats
// localized greetings for one person and optionally writes them to a log sink
// or into page elements.
//
// Greeter has two collaborators with deliberately different failure modes. A
// missing LogSink makes Greet and Log silent no-ops, while a missing
// RenderBackend makes RenderInto fail with errs.ErrNoRenderBackend. Whether
// both should degrade the same way is undecided; the asymmetry is kept as is.
//
// The language is not checked at construction. Call Validate or SetLang when
// the language must be one of lang.Supported().
package greeter

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/domain/model/phrase"
)

// DefaultName replaces an empty first or last name.
const DefaultName = "Default"

// Greeter is not safe for concurrent use when SetLang is called.
type Greeter struct {
	firstName string
	lastName  string
	language  lang.Lang

	sink    interfaces.LogSink
	backend interfaces.RenderBackend
}

type Option func(*Greeter)

func WithSink(sink interfaces.LogSink) Option {
	return func(g *Greeter) {
		g.sink = sink
	}
}

func WithRenderBackend(backend interfaces.RenderBackend) Option {
	return func(g *Greeter) {
		g.backend = backend
	}
}

// New creates a Greeter. Empty names become DefaultName and an empty language
// becomes lang.Default. An unsupported language is stored as given.
func New(firstName, lastName string, language lang.Lang, opts ...Option) *Greeter {
	if firstName == "" {
		firstName = DefaultName
	}
	if lastName == "" {
		lastName = DefaultName
	}

	g := &Greeter{
		firstName: firstName,
		lastName:  lastName,
		language:  language.OrDefault(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Greeter) FirstName() string { return g.firstName }
func (g *Greeter) LastName() string  { return g.lastName }
func (g *Greeter) Lang() lang.Lang   { return g.language }

func (g *Greeter) FullName() string {
	return g.firstName + " " + g.lastName
}

func (g *Greeter) Validate() error {
	return g.language.Validate()
}

// Greeting returns the informal greeting. For an unsupported language the word
// is empty and the result starts with a space.
func (g *Greeter) Greeting() string {
	return fmt.Sprintf("%s %s!", phrase.Informal(g.language), g.firstName)
}

func (g *Greeter) FormalGreeting() string {
	return fmt.Sprintf("%s %s.", phrase.Formal(g.language), g.FullName())
}

// Message returns FormalGreeting when formal is true and Greeting otherwise.
func (g *Greeter) Message(formal bool) string {
	if formal {
		return g.FormalGreeting()
	}
	return g.Greeting()
}

// LoginLine returns the login log line, "<phrase>: <full name>".
func (g *Greeter) LoginLine() string {
	return fmt.Sprintf("%s: %s", phrase.Login(g.language), g.FullName())
}

// Greet writes the selected greeting to the sink and returns g.
func (g *Greeter) Greet(ctx context.Context, formal bool) *Greeter {
	g.emit(ctx, g.Message(formal))
	return g
}

// Log writes the login line to the sink and returns g.
func (g *Greeter) Log(ctx context.Context) *Greeter {
	g.emit(ctx, g.LoginLine())
	return g
}

// SetLang replaces the language and validates it. The new value is kept even
// when validation fails, so a later Validate reports the same error.
func (g *Greeter) SetLang(l lang.Lang) (*Greeter, error) {
	g.language = l
	if err := g.Validate(); err != nil {
		return g, err
	}
	return g, nil
}

// RenderInto writes the selected greeting into every element matched by
// selector. The selector is checked before the backend, so an empty selector
// always yields errs.ErrMissingRenderTarget.
func (g *Greeter) RenderInto(ctx context.Context, selector string, formal bool) (*Greeter, error) {
	if selector == "" {
		return g, goerr.Wrap(errs.ErrMissingRenderTarget, "selector is required",
			goerr.T(errs.TagInvalidRequest))
	}
	if g.backend == nil {
		return g, goerr.Wrap(errs.ErrNoRenderBackend, "no render backend is configured",
			goerr.V("selector", selector),
			goerr.T(errs.TagUnavailable))
	}

	target, err := g.backend.Select(ctx, selector)
	if err != nil {
		return g, goerr.Wrap(err, "failed to select render target", goerr.V("selector", selector))
	}

	msg := g.Message(formal)
	if err := target.SetHTML(ctx, msg); err != nil {
		return g, goerr.Wrap(err, "failed to render greeting",
			goerr.V("selector", selector),
			goerr.T(errs.TagExternal))
	}

	return g, nil
}

func (g *Greeter) emit(ctx context.Context, line string) {
	if g.sink == nil {
		return
	}
	g.sink.WriteLine(ctx, line)
}
