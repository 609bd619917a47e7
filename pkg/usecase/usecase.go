package usecase

import (
	"github.com/secmon-lab/greetr/pkg/domain/interfaces"
)

type UseCases struct {
	sink    interfaces.LogSink
	backend interfaces.RenderBackend
}

type Option func(*UseCases)

func WithSink(sink interfaces.LogSink) Option {
	return func(u *UseCases) {
		u.sink = sink
	}
}

func WithRenderBackend(backend interfaces.RenderBackend) Option {
	return func(u *UseCases) {
		u.backend = backend
	}
}

func New(opts ...Option) *UseCases {
	u := &UseCases{}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
