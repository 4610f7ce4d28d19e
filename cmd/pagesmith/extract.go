package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagesmith"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	raw, err := readInput(deps, c.File)
	if err != nil {
		return fail(deps, err)
	}

	res := deps.Extractor.ExtractHTML(raw)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Found bool `json:"found"`
			pagesmith.Extraction
		}{res.Found(), res}); err != nil {
			return err
		}
	} else if res.Found() {
		fmt.Fprintln(deps.Stdout, res.HTML)
	}

	if !res.Found() {
		return fail(deps, pagesmith.Errorf(pagesmith.ENOTFOUND, "no HTML document found"))
	}
	return nil
}
