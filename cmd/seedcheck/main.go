package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/junk"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/logic"
)

// fieldError is one invalid expression found in a seed file.
type fieldError struct {
	File  string
	Field string
	Err   error
}

func main() {
	app := &cli.App{
		Name:  "seedcheck",
		Usage: "validate rule expressions in seed option files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "data/seed/options",
				Usage: "directory of seed option JSON files",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	dir := c.String("dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read directory %s: %w", dir, err)
	}

	var (
		checked int
		errs    []fieldError
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		opts, err := loadOptions(path)
		if err != nil {
			errs = append(errs, fieldError{File: entry.Name(), Field: "file", Err: err})
			continue
		}
		for _, opt := range opts {
			n, fieldErrs := checkOption(entry.Name(), opt)
			checked += n
			errs = append(errs, fieldErrs...)
		}
	}

	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", e.File, e.Field, e.Err)
	}
	fmt.Printf("%d expressions valid, %d errors\n", checked, len(errs))
	if len(errs) > 0 {
		return cli.Exit("seed validation failed", 1)
	}
	return nil
}

// loadOptions reads a seed file holding either a single option document or
// an array of them.
func loadOptions(path string) ([]scoringtypes.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var opts []scoringtypes.Option
		if err := json.Unmarshal(data, &opts); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return opts, nil
	}
	var opt scoringtypes.Option
	if err := json.Unmarshal(data, &opt); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []scoringtypes.Option{opt}, nil
}

// checkOption validates every expression field the option carries and
// returns the number of fields that passed.
func checkOption(file string, opt scoringtypes.Option) (int, []fieldError) {
	var (
		checked int
		errs    []fieldError
	)
	check := func(field, expression string, validate func(string) error) {
		if strings.TrimSpace(expression) == "" {
			return
		}
		if err := validate(expression); err != nil {
			errs = append(errs, fieldError{File: file, Field: field, Err: err})
			return
		}
		checked++
	}

	switch opt.Type {
	case scoringtypes.OptionTypeJunk:
		check("logic", opt.Junk.Logic, logic.Validate)
		check("score_to_par", opt.Junk.ScoreToPar, func(s string) error {
			_, err := junk.ParseCondition(s)
			return err
		})
	case scoringtypes.OptionTypeMultiplier:
		check("availability", opt.Multiplier.Availability, logic.Validate)
	}
	return checked, errs
}
