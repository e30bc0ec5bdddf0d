// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jsonfmt formats, minifies, validates, and measures JSON text.
//
// Usage:
//
//	jsonfmt format [--indent N | --tab] [--sort-keys] [FILE ...]
//	jsonfmt minify [FILE ...]
//	jsonfmt validate [FILE ...]
//	jsonfmt stats [FILE ...]
//
// With no files, jsonfmt reads standard input. Errors in the input are
// reported as name:line:column: message, and the exit status is non-zero.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nachofregeiro/jsonformatter/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalidInput) {
			fmt.Fprintf(os.Stderr, "jsonfmt: %v\n", err)
		}
		os.Exit(1)
	}
}
