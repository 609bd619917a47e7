package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/guest"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/service/greeter"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

// GreetRequest describes one greeting. An empty Lang falls back to the
// language in the context.
type GreetRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Lang      lang.Lang `json:"lang"`
	Formal    bool      `json:"formal"`
	Login     bool      `json:"login"`
}

// GreetResult reports what was emitted. Names appear exactly as they were in
// the request; the HTTP render endpoint HTML-escapes them before calling
// Render, so its Greeting, FullName and LoginLine hold the escaped form
// (e.g. "&lt;b&gt;") as do the lines written to the sink.
type GreetResult struct {
	Greeting  string    `json:"greeting"`
	FullName  string    `json:"full_name"`
	Lang      lang.Lang `json:"lang"`
	LoginLine string    `json:"login_line,omitempty"`
	Selector  string    `json:"selector,omitempty"`
}

func (x *UseCases) newGreeter(ctx context.Context, req GreetRequest) (*greeter.Greeter, error) {
	l := req.Lang
	if l == "" {
		l = lang.From(ctx)
	}

	g := greeter.New(req.FirstName, req.LastName, l,
		greeter.WithSink(x.sink),
		greeter.WithRenderBackend(x.backend),
	)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func result(g *greeter.Greeter, req GreetRequest) *GreetResult {
	r := &GreetResult{
		Greeting: g.Message(req.Formal),
		FullName: g.FullName(),
		Lang:     g.Lang(),
	}
	if req.Login {
		r.LoginLine = g.LoginLine()
	}
	return r
}

// Greet validates the request, emits the greeting and, when requested, the
// login line.
func (x *UseCases) Greet(ctx context.Context, req GreetRequest) (*GreetResult, error) {
	g, err := x.newGreeter(ctx, req)
	if err != nil {
		return nil, err
	}

	g.Greet(ctx, req.Formal)
	if req.Login {
		g.Log(ctx)
	}

	logging.From(ctx).Debug("greeted",
		"full_name", g.FullName(),
		"lang", g.Lang(),
		"formal", req.Formal)

	return result(g, req), nil
}

// Render validates the request and writes the greeting into the elements
// matched by selector.
func (x *UseCases) Render(ctx context.Context, req GreetRequest, selector string) (*GreetResult, error) {
	g, err := x.newGreeter(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := g.RenderInto(ctx, selector, req.Formal); err != nil {
		return nil, err
	}
	if req.Login {
		g.Log(ctx)
	}

	logging.From(ctx).Info("rendered greeting",
		"selector", selector,
		"full_name", g.FullName(),
		"lang", g.Lang())

	r := result(g, req)
	r.Selector = selector
	return r, nil
}

// Roster greets every guest in order and stops at the first invalid guest.
func (x *UseCases) Roster(ctx context.Context, guests []guest.Guest) ([]*GreetResult, error) {
	results := make([]*GreetResult, 0, len(guests))
	for i, g := range guests {
		req := GreetRequest{
			FirstName: g.FirstName,
			LastName:  g.LastName,
			Lang:      g.Lang,
			Formal:    g.Formal,
			Login:     g.Login,
		}
		r, err := x.Greet(ctx, req)
		if err != nil {
			return results, goerr.Wrap(err, "failed to greet guest",
				goerr.V("index", i),
				goerr.V("first_name", g.FirstName))
		}
		results = append(results, r)
	}
	return results, nil
}
