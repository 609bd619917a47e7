package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/adapter/dom"
	"github.com/secmon-lab/greetr/pkg/cli/config"
	"github.com/secmon-lab/greetr/pkg/usecase"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/secmon-lab/greetr/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdRender(sinkCfg *config.Sink) *cli.Command {
	var (
		req      usecase.GreetRequest
		input    string
		output   string
		selector string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "HTML page to render into",
				Required:    true,
				Destination: &input,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Write the rendered page to this file (default: stdout)",
				Destination: &output,
			},
			&cli.StringFlag{
				Name:        "selector",
				Usage:       "CSS selector of the target elements",
				Value:       "#greeting",
				Destination: &selector,
			},
		},
		greetFlags(&req),
	)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render a greeting into a static HTML page",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// The page owns stdout when no output file is given.
			var sinkOut io.Writer = os.Stdout
			if output == "" {
				sinkOut = os.Stderr
			}
			logSink, err := sinkCfg.Configure(sinkOut)
			if err != nil {
				return err
			}

			doc, err := readDocument(ctx, input)
			if err != nil {
				return err
			}

			uc := usecase.New(
				usecase.WithSink(logSink),
				usecase.WithRenderBackend(doc),
			)
			if _, err := uc.Render(ctx, req, selector); err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := doc.Render(&buf); err != nil {
				return err
			}

			if err := writeOutput(ctx, output, buf.Bytes()); err != nil {
				return err
			}

			logging.From(ctx).Info("rendered page",
				"input", input,
				"output", output,
				"selector", selector,
				"size", humanize.Bytes(uint64(buf.Len())))
			return nil
		},
	}
}

func readDocument(ctx context.Context, path string) (*dom.Document, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input page", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	doc, err := dom.ParseDocument(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse input page", goerr.V("path", path))
	}
	return doc, nil
}

func writeOutput(ctx context.Context, path string, data []byte) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
		}
		defer safe.Close(ctx, f)
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write rendered page", goerr.V("path", path))
	}
	return nil
}
