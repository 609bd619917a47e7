package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/greetr/pkg/adapter/dom"
	"github.com/secmon-lab/greetr/pkg/adapter/sink"
	server "github.com/secmon-lab/greetr/pkg/controller/http"
	websocket_controller "github.com/secmon-lab/greetr/pkg/controller/websocket"
	"github.com/secmon-lab/greetr/pkg/domain/model/page"
	"github.com/secmon-lab/greetr/pkg/usecase"
)

const testPage = `<html><body><h1 id="greeting"></h1><p id="login"></p></body></html>`

func newDocument(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseDocument(strings.NewReader(testPage))
	gt.NoError(t, err).Required()
	return doc
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestPage(t *testing.T) {
	srv := server.New(usecase.New())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Header().Get("Content-Type")).Contains("text/html")
	gt.S(t, w.Body.String()).Contains(`id="greeting"`)
	gt.S(t, w.Body.String()).Contains(`id="login"`)
}

func TestGreeting(t *testing.T) {
	var buf bytes.Buffer
	srv := server.New(usecase.New(usecase.WithSink(sink.NewWriter(&buf))))

	t.Run("informal", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/greeting?first=John&last=Doe&lang=es", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[usecase.GreetResult](t, w)
		gt.Equal(t, resp.Greeting, "Hola John!")
		gt.Equal(t, resp.FullName, "John Doe")
		gt.Equal(t, buf.String(), "Hola John!\n")
	})

	t.Run("formal with login", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/greeting?first=John&last=Doe&formal=true&login=1", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[usecase.GreetResult](t, w)
		gt.Equal(t, resp.Greeting, "Greetings John Doe.")
		gt.Equal(t, resp.LoginLine, "Logged in: John Doe")
		gt.Equal(t, buf.String(), "Greetings John Doe.\nLogged in: John Doe\n")
	})

	t.Run("defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/greeting", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusOK)
		resp := decode[usecase.GreetResult](t, w)
		gt.Equal(t, resp.Greeting, "Hello Default!")
	})

	t.Run("unsupported language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/greeting?first=John&lang=fr", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("invalid formal flag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/greeting?formal=maybe", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func postRender(srv http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestRender(t *testing.T) {
	t.Run("writes into document", func(t *testing.T) {
		doc := newDocument(t)
		srv := server.New(usecase.New(usecase.WithRenderBackend(doc)))

		w := postRender(srv, `{"first_name":"John","last_name":"Doe","lang":"es","formal":true,"selector":"#greeting"}`)
		gt.Equal(t, w.Code, http.StatusOK)

		resp := decode[usecase.GreetResult](t, w)
		gt.Equal(t, resp.Greeting, "Sauldos John Doe.")
		gt.Equal(t, resp.Selector, "#greeting")

		got, err := doc.InnerHTML("#greeting")
		gt.NoError(t, err).Required()
		gt.A(t, got).Length(1).At(0, func(t testing.TB, v string) {
			gt.Equal(t, v, "Sauldos John Doe.")
		})
	})

	t.Run("escapes names", func(t *testing.T) {
		doc := newDocument(t)
		srv := server.New(usecase.New(usecase.WithRenderBackend(doc)))

		w := postRender(srv, `{"first_name":"<b>John</b>","selector":"#greeting"}`)
		gt.Equal(t, w.Code, http.StatusOK)

		resp := decode[usecase.GreetResult](t, w)
		gt.Equal(t, resp.Greeting, "Hello &lt;b&gt;John&lt;/b&gt;!")

		got, err := doc.InnerHTML("#greeting")
		gt.NoError(t, err).Required()
		gt.A(t, got).Length(1).At(0, func(t testing.TB, v string) {
			gt.S(t, v).NotContains("<b>")
			gt.S(t, v).Contains("&lt;b&gt;John&lt;/b&gt;")
		})
	})

	t.Run("missing selector", func(t *testing.T) {
		srv := server.New(usecase.New(usecase.WithRenderBackend(newDocument(t))))
		w := postRender(srv, `{"first_name":"John"}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("missing selector without backend", func(t *testing.T) {
		srv := server.New(usecase.New())
		w := postRender(srv, `{"first_name":"John"}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("no backend", func(t *testing.T) {
		srv := server.New(usecase.New())
		w := postRender(srv, `{"first_name":"John","selector":"#greeting"}`)
		gt.Equal(t, w.Code, http.StatusServiceUnavailable)
	})

	t.Run("invalid selector", func(t *testing.T) {
		srv := server.New(usecase.New(usecase.WithRenderBackend(newDocument(t))))
		w := postRender(srv, `{"first_name":"John","selector":"##"}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("unsupported language", func(t *testing.T) {
		srv := server.New(usecase.New(usecase.WithRenderBackend(newDocument(t))))
		w := postRender(srv, `{"first_name":"John","lang":"de","selector":"#greeting"}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := server.New(usecase.New(usecase.WithRenderBackend(newDocument(t))))
		w := postRender(srv, `{"first_name":`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("unknown field", func(t *testing.T) {
		srv := server.New(usecase.New(usecase.WithRenderBackend(newDocument(t))))
		w := postRender(srv, `{"first_name":"John","selector":"#greeting","nickname":"JD"}`)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestLivePage(t *testing.T) {
	ctx := context.Background()
	hub := websocket_controller.NewHub(ctx)
	go hub.Run()
	t.Cleanup(func() { _ = hub.Close() })

	uc := usecase.New(usecase.WithRenderBackend(dom.NewLive(hub)))
	srv := httptest.NewServer(server.New(uc,
		server.WithWebSocketHandler(websocket_controller.NewHandler(hub)),
	))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = conn.Close() })

	read := func() page.Message {
		gt.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second))).Required()
		var msg page.Message
		gt.NoError(t, conn.ReadJSON(&msg)).Required()
		return msg
	}

	gt.Equal(t, read().Type, page.TypeStatus)

	resp, err := http.Post(srv.URL+"/api/render", "application/json",
		strings.NewReader(`{"first_name":"John","lang":"es","selector":"#greeting"}`))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	msg := read()
	gt.Equal(t, msg.Type, page.TypeRender)
	gt.Equal(t, msg.Selector, "#greeting")
	gt.Equal(t, msg.HTML, "Hola John!")
}

type panicUseCase struct{}

func (panicUseCase) Greet(ctx context.Context, req usecase.GreetRequest) (*usecase.GreetResult, error) {
	panic("boom")
}

func (panicUseCase) Render(ctx context.Context, req usecase.GreetRequest, selector string) (*usecase.GreetResult, error) {
	return nil, errors.New("backend exploded")
}

func TestInternalErrors(t *testing.T) {
	srv := server.New(panicUseCase{})

	t.Run("panic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/greeting", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		gt.Equal(t, w.Code, http.StatusInternalServerError)
		gt.S(t, w.Body.String()).NotContains("boom")
	})

	t.Run("untagged error", func(t *testing.T) {
		w := postRender(srv, `{"selector":"#greeting"}`)
		gt.Equal(t, w.Code, http.StatusInternalServerError)
		gt.S(t, w.Body.String()).NotContains("exploded")
	})
}

func TestWebSocketRouteDisabled(t *testing.T) {
	srv := server.New(usecase.New())

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusNotFound)
}
