// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds default settings for the CLI, read from a YAML file:
//
//	indent: 4
//	sort_keys: true
//	parallel: 8
//
// A field that is absent from the file leaves the corresponding setting at
// its default. Flags set on the command line take precedence over the file.
type Config struct {
	Indent   *int  `yaml:"indent"`
	SortKeys *bool `yaml:"sort_keys"`
	Parallel *int  `yaml:"parallel"`
}

// LoadConfig reads and decodes the config file at path. Unknown fields are
// reported as errors. An empty file is a valid, empty config.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %q: %w", path, err)
	}
	return &cfg, nil
}
