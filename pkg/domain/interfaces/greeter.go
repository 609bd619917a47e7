package interfaces

import "context"

// LogSink records one line of text for observation, such as a console or a
// structured log. A greeter without a sink drops its log lines silently.
type LogSink interface {
	WriteLine(ctx context.Context, line string)
}

// RenderBackend locates page elements by selector. A greeter without a
// backend fails every render with errs.ErrNoRenderBackend.
type RenderBackend interface {
	Select(ctx context.Context, selector string) (RenderTarget, error)
}

// RenderTarget is the set of elements matched by one selector. SetHTML
// replaces the inner content of every element in the set.
type RenderTarget interface {
	SetHTML(ctx context.Context, content string) error
}

// PageBroadcaster delivers an encoded message to every connected live page.
type PageBroadcaster interface {
	Broadcast(ctx context.Context, data []byte) error
	ClientCount() int
}
