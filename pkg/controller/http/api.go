package http

import (
	"encoding/json"
	"html"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/usecase"
)

// maxRenderBodySize bounds the JSON body accepted by /api/render.
const maxRenderBodySize = 16 * 1024

type renderRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Lang      lang.Lang `json:"lang"`
	Formal    bool      `json:"formal"`
	Login     bool      `json:"login"`
	Selector  string    `json:"selector"`
}

func parseFlag(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, goerr.Wrap(err, "invalid boolean query parameter",
			goerr.V("key", key),
			goerr.V("value", v),
			goerr.T(errs.TagInvalidRequest))
	}
	return b, nil
}

func greetingHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formal, err := parseFlag(r, "formal")
		if err != nil {
			handleError(w, r, err)
			return
		}
		login, err := parseFlag(r, "login")
		if err != nil {
			handleError(w, r, err)
			return
		}

		q := r.URL.Query()
		req := usecase.GreetRequest{
			FirstName: q.Get("first"),
			LastName:  q.Get("last"),
			Lang:      lang.Lang(q.Get("lang")),
			Formal:    formal,
			Login:     login,
		}

		resp, err := uc.Greet(r.Context(), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func renderHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body renderRequest
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRenderBodySize))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&body); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode render request",
				goerr.T(errs.TagInvalidRequest)))
			return
		}

		// Rendered content lands in innerHTML on every connected page. The
		// escaped names also reach the sink and the JSON response.
		req := usecase.GreetRequest{
			FirstName: html.EscapeString(body.FirstName),
			LastName:  html.EscapeString(body.LastName),
			Lang:      body.Lang,
			Formal:    body.Formal,
			Login:     body.Login,
		}

		resp, err := uc.Render(r.Context(), req, body.Selector)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
