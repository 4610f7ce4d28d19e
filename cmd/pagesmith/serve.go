package main

import (
	"fmt"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := deps.Config.Host.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	fmt.Fprintf(deps.Stderr, "Hosting server listening on %s\n", addr)
	if err := deps.Server.ListenAndServe(deps.Ctx, addr); err != nil {
		return fail(deps, err)
	}
	return nil
}
