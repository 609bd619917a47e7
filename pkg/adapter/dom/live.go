package dom

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
	"github.com/secmon-lab/greetr/pkg/domain/model/page"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

// Live renders into the pages connected to a broadcaster. Each page applies
// the content to its own elements, so matching happens in the browser.
type Live struct {
	pages interfaces.PageBroadcaster
}

var _ interfaces.RenderBackend = &Live{}

func NewLive(pages interfaces.PageBroadcaster) *Live {
	return &Live{pages: pages}
}

// Select rejects selectors that are not valid CSS before anything is sent.
func (x *Live) Select(ctx context.Context, selector string) (interfaces.RenderTarget, error) {
	if _, err := compileSelector(selector); err != nil {
		return nil, err
	}
	return &liveTarget{pages: x.pages, selector: selector}, nil
}

type liveTarget struct {
	pages    interfaces.PageBroadcaster
	selector string
}

func (x *liveTarget) SetHTML(ctx context.Context, content string) error {
	data, err := page.NewRenderMessage(ctx, x.selector, content).ToBytes()
	if err != nil {
		return goerr.Wrap(err, "failed to encode render message")
	}

	if err := x.pages.Broadcast(ctx, data); err != nil {
		return goerr.Wrap(err, "failed to broadcast render message", goerr.V("selector", x.selector))
	}

	logging.From(ctx).Debug("rendered into live pages",
		"selector", x.selector,
		"pages", x.pages.ClientCount())
	return nil
}
