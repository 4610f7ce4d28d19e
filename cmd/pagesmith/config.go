package main

import (
	"fmt"

	yamlv3 "gopkg.in/yaml.v3"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if c.Init {
		path := deps.ConfigPath
		if err := deps.Config.Save(path); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		return nil
	}

	cfg := *deps.Config
	if cfg.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = "(set)"
	}
	if cfg.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = "(set)"
	}
	data, err := yamlv3.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = deps.Stdout.Write(data)
	return err
}
