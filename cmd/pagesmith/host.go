package main

import (
	"fmt"

	"github.com/fwojciec/pagesmith"
)

// Run executes the host command.
func (c *HostCmd) Run(deps *Dependencies) error {
	html, err := readDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	u, err := deps.Hoster.Host(deps.Ctx, html)
	if err != nil {
		if pagesmith.ErrorCode(err) == pagesmith.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: start the hosting server with 'pagesmith serve'")
		}
		return fail(deps, err)
	}

	fmt.Fprintln(deps.Stdout, u)
	return nil
}

// Run executes the publish command.
func (c *PublishCmd) Run(deps *Dependencies) error {
	html, err := readDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	name := c.Name
	if name == "" {
		name = deps.Inspector.SuggestRepoName(html)
	}

	info, err := deps.Inspector.Inspect(html)
	if err != nil {
		return fail(deps, err)
	}
	readme, err := deps.Converter.Readme(info, html)
	if err != nil {
		return fail(deps, err)
	}

	u, err := deps.Publisher.Publish(deps.Ctx, pagesmith.PublishRequest{
		RepoName: name,
		HTML:     html,
		Readme:   readme,
	})
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Published %s: %s\n", name, u)
	return nil
}
