package main

import (
	"encoding/json"

	"github.com/fwojciec/pagesmith"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	html, err := readDocument(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	info, err := deps.Inspector.Inspect(html)
	if err != nil {
		return fail(deps, err)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		RepoName string `json:"repoName"`
		*pagesmith.PageInfo
	}{deps.Inspector.SuggestRepoName(html), info})
}
