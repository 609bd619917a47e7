package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/cli/config"
	"github.com/secmon-lab/greetr/pkg/domain/model/guest"
	"github.com/secmon-lab/greetr/pkg/usecase"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/secmon-lab/greetr/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdRoster(sinkCfg *config.Sink) *cli.Command {
	var file string

	return &cli.Command{
		Name:  "roster",
		Usage: "Greet every guest listed in a YAML roster",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Usage:       "Roster YAML file",
				Required:    true,
				Sources:     cli.EnvVars("GREETR_ROSTER"),
				Destination: &file,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logSink, err := sinkCfg.Configure(os.Stdout)
			if err != nil {
				return err
			}

			f, err := os.Open(filepath.Clean(file))
			if err != nil {
				return goerr.Wrap(err, "failed to open roster", goerr.V("path", file))
			}
			defer safe.Close(ctx, f)

			roster, err := guest.Load(f)
			if err != nil {
				return goerr.Wrap(err, "failed to load roster", goerr.V("path", file))
			}

			uc := usecase.New(usecase.WithSink(logSink))
			results, err := uc.Roster(ctx, roster.Guests)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("greeted roster",
				"path", file,
				"guests", len(results))
			return nil
		},
	}
}
