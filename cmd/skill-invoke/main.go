// Command skill-invoke runs one request envelope through the skill and
// prints the response envelope.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	cli "github.com/spf13/pflag"

	"factskill/internal/app"
	"factskill/internal/config"
	"factskill/internal/domain"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	file := cli.StringP("file", "f", "-", "Request envelope file, - for stdin")
	logLevel := cli.StringP("log", "l", "warn", "Log level")
	cli.Parse()

	if err := run(*envFile, *file, *logLevel, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "skill-invoke:", err)
		os.Exit(1)
	}
}

func run(envFile, file, logLevel string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, logLevel, cfg.LogFormat)

	in := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var req domain.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	ctx := context.Background()
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	resp := a.Skill.Handle(ctx, req)
	// Lets pending scoring and journal tasks finish before exit.
	a.Close()

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
