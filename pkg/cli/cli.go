package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/cli/config"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/domain/model/lang"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var sinkCfg config.Sink
	var language lang.Lang
	var closer func()
	app := &cli.Command{
		Name:  "greetr",
		Usage: "Localized greetings for the console and web pages",
		Flags: joinFlags(
			loggerCfg.Flags(),
			sinkCfg.Flags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "lang",
					Usage:       "Greeting language [en|es]",
					Value:       string(lang.Default),
					Sources:     cli.EnvVars("GREETR_LANG"),
					Destination: (*string)(&language),
				},
			},
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("base options",
				"language", language,
				"logger", loggerCfg,
				"sink", sinkCfg)

			if err := language.Validate(); err != nil {
				return ctx, err
			}

			return lang.With(ctx, language), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdGreet(&sinkCfg),
			cmdRender(&sinkCfg),
			cmdRoster(&sinkCfg),
			cmdServe(&sinkCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if goerr.HasTag(err, errs.TagValidation) || goerr.HasTag(err, errs.TagInvalidRequest) {
			logging.Default().Error("invalid input", "error", err)
		} else {
			errs.Handle(ctx, err)
		}
		return err
	}

	return nil
}
