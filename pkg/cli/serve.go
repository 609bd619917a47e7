package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/secmon-lab/greetr/pkg/adapter/dom"
	"github.com/secmon-lab/greetr/pkg/cli/config"
	server "github.com/secmon-lab/greetr/pkg/controller/http"
	websocket_controller "github.com/secmon-lab/greetr/pkg/controller/websocket"
	"github.com/secmon-lab/greetr/pkg/usecase"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func pageURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		if strings.HasPrefix(addr, ":") {
			return fmt.Sprintf("http://localhost%s", addr)
		}
		return fmt.Sprintf("http://%s", addr)
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}

	return fmt.Sprintf("http://%s", net.JoinHostPort(host, port))
}

func cmdServe(sinkCfg *config.Sink) *cli.Command {
	var (
		addr      string
		sentryCfg config.Sentry
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("GREETR_ADDR"),
				Usage:       "Listen address (default: 127.0.0.1:8080)",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
		},
		sentryCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the live greeting page server",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logging.Default().Info("starting server",
				"addr", addr,
				"page", pageURL(addr),
				"sentry", sentryCfg,
				"sink", sinkCfg,
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			logSink, err := sinkCfg.Configure(os.Stdout)
			if err != nil {
				return err
			}

			wsHub := websocket_controller.NewHub(ctx)
			go wsHub.Run()

			uc := usecase.New(
				usecase.WithSink(logSink),
				usecase.WithRenderBackend(dom.NewLive(wsHub)),
			)

			httpServer := http.Server{
				Addr: addr,
				Handler: server.New(uc,
					server.WithWebSocketHandler(websocket_controller.NewHandler(wsHub)),
				),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case err := <-errCh:
				_ = wsHub.Close()
				return err
			case <-sigCh:
				if err := wsHub.Close(); err != nil {
					logging.From(ctx).Error("failed to close WebSocket hub", "error", err)
				}

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}
}
