package config_test

import (
	"context"

	"github.com/urfave/cli/v3"
)

// testCLICommand wraps flags in a no-op command so tests can exercise flag
// parsing without running an action.
func testCLICommand(flags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
}
