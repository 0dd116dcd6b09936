package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/model"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive career guidance session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)

			orch, _, err := cfg.newOrchestrator(ctx)
			if err != nil {
				return err
			}

			sessionID := model.NewSessionID()

			rl, err := readline.New("you> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			w := c.Root().Writer
			fmt.Fprintf(w, "Career guidance session started. Type 'exit' to quit, '/reset' to start over.\n")

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				message := strings.TrimSpace(line)
				switch message {
				case "":
					continue
				case "exit", "quit":
					fmt.Fprintf(w, "\nGood luck out there!\n")
					return nil
				case "/reset":
					orch.ClearSession(sessionID)
					sessionID = model.NewSessionID()
					fmt.Fprintf(w, "Session cleared.\n")
					continue
				}

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " thinking..."
				sp.Start()
				result, err := orch.Handle(ctx, sessionID, message)
				sp.Stop()

				if err != nil {
					return goerr.Wrap(err, "failed to handle message")
				}

				fmt.Fprintf(w, "\n%s\n\n", result.ReplyText)
				if result.UsedFallback {
					fmt.Fprintf(w, "(generative advisor unavailable, answered from the catalog)\n\n")
				}
			}

			return nil
		},
	}
}
