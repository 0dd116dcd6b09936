package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/catalog"
	"github.com/urfave/cli/v3"
)

func validateCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the career catalog source",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger(ctx)

			cat, problems, err := catalog.AuditFile(cfg.catalogPath)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(w, "row %d: %s\n", p.Row, p.Err)
				}
				return goerr.Wrap(catalog.ErrDataLoad, "catalog has invalid rows",
					goerr.V("path", cfg.catalogPath), goerr.V("problems", len(problems)))
			}

			fmt.Fprintf(w, "Catalog OK: %d records\n", cat.Size())

			byCategory := make(map[string]int)
			for _, rec := range cat.Records() {
				byCategory[string(rec.Category)]++
			}
			for category, n := range byCategory {
				fmt.Fprintf(w, "  %-12s %d\n", category, n)
			}
			return nil
		},
	}
}
