package cli

import (
	"context"
	"os"

	"github.com/secmon-lab/greetr/pkg/cli/config"
	"github.com/secmon-lab/greetr/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdGreet(sinkCfg *config.Sink) *cli.Command {
	var req usecase.GreetRequest

	return &cli.Command{
		Name:    "greet",
		Aliases: []string{"g"},
		Usage:   "Write a greeting to the sink",
		Flags:   greetFlags(&req),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logSink, err := sinkCfg.Configure(os.Stdout)
			if err != nil {
				return err
			}

			uc := usecase.New(usecase.WithSink(logSink))
			if _, err := uc.Greet(ctx, req); err != nil {
				return err
			}
			return nil
		},
	}
}
