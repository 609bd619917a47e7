package http

import (
	"context"

	"github.com/secmon-lab/greetr/pkg/usecase"
)

type UseCase interface {
	Greet(ctx context.Context, req usecase.GreetRequest) (*usecase.GreetResult, error)
	Render(ctx context.Context, req usecase.GreetRequest, selector string) (*usecase.GreetResult, error)
}

var _ UseCase = &usecase.UseCases{}
