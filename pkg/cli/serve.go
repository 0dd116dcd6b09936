package cli

import (
	"context"

	"github.com/pathwise-dev/pathwise/pkg/server"
	"github.com/pathwise-dev/pathwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		cfg  config
		addr string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Listen address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PATHWISE_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the advisory API over HTTP",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)
			logger := logging.From(ctx)

			orch, cat, err := cfg.newOrchestrator(ctx)
			if err != nil {
				return err
			}

			srv := server.New(orch, cat.Size())
			logger.Info("starting server",
				"addr", addr,
				"catalog_size", cat.Size(),
				"generative", orch.GenerativeConfigured())

			return srv.Run(addr)
		},
	}
}
