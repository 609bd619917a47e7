package dom_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/greetr/pkg/adapter/dom"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/domain/model/page"
	"github.com/secmon-lab/greetr/pkg/service/greeter"
)

type recordBroadcaster struct {
	messages [][]byte
	err      error
}

func (x *recordBroadcaster) Broadcast(ctx context.Context, data []byte) error {
	if x.err != nil {
		return x.err
	}
	x.messages = append(x.messages, data)
	return nil
}

func (x *recordBroadcaster) ClientCount() int { return 1 }

func TestLive(t *testing.T) {
	ctx := context.Background()

	t.Run("broadcasts a render message", func(t *testing.T) {
		pages := &recordBroadcaster{}
		g := greeter.New("John", "Smith", lang.English, greeter.WithRenderBackend(dom.NewLive(pages)))

		_, err := g.RenderInto(ctx, "#greeting", false)
		gt.NoError(t, err)
		gt.A(t, pages.messages).Length(1)

		var msg page.Message
		gt.NoError(t, json.Unmarshal(pages.messages[0], &msg))
		gt.Equal(t, msg.Type, page.TypeRender)
		gt.Equal(t, msg.Selector, "#greeting")
		gt.Equal(t, msg.HTML, g.Greeting())
	})

	t.Run("invalid selector is not broadcast", func(t *testing.T) {
		pages := &recordBroadcaster{}
		_, err := dom.NewLive(pages).Select(ctx, "#[")
		gt.True(t, goerr.HasTag(err, errs.TagInvalidRequest))
		gt.A(t, pages.messages).Length(0)
	})

	t.Run("broadcast failure", func(t *testing.T) {
		pages := &recordBroadcaster{err: errors.New("hub closed")}
		g := greeter.New("John", "Smith", lang.English, greeter.WithRenderBackend(dom.NewLive(pages)))
		_, err := g.RenderInto(ctx, "#greeting", false)
		gt.True(t, errors.Is(err, pages.err))
		gt.True(t, goerr.HasTag(err, errs.TagExternal))
	})
}
