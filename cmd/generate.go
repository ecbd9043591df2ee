// Copyright 2019 - 2025 The Samply Community
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/samply/cqlfsh/cql"
	"github.com/samply/cqlfsh/data"
	"github.com/samply/cqlfsh/fsh"
	"github.com/samply/cqlfsh/util"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"github.com/viant/afs"
)

var watch bool

// generator converts single CQL files into FSH files in the output directory.
type generator struct {
	fs         afs.Service
	indicators data.IndicatorLookup
	measures   *fsh.MeasureBuilder
	outputDir  string
	force      bool
	log        zerolog.Logger
}

// generateResult holds the paths of the files written for one input. measure
// is empty if no measure was generated.
type generateResult struct {
	library string
	measure string
}

func (g *generator) generate(ctx context.Context, input string) (generateResult, error) {
	content, err := g.fs.DownloadWithURL(ctx, location(input))
	if err != nil {
		return generateResult{}, fmt.Errorf("read CQL file: %w", err)
	}

	def, err := cql.NewParser(string(content)).Definition()
	if err != nil {
		return generateResult{}, err
	}

	library, err := fsh.BuildLibrary(def, g.indicators)
	if err != nil {
		return generateResult{}, err
	}
	result := generateResult{library: filepath.Join(g.outputDir, library.Name+".fsh")}
	if err := util.WriteOutputFile(result.library, library.Text, g.force); err != nil {
		return generateResult{}, err
	}
	g.log.Info().Str("file", result.library).Msg("Wrote library.")

	measure, err := g.measures.Build(def, g.indicators)
	if err != nil {
		return result, err
	}
	if measure == nil {
		return result, nil
	}
	measurePath := filepath.Join(g.outputDir, measure.Name+".fsh")
	if err := util.WriteOutputFile(measurePath, measure.Text, g.force); err != nil {
		return result, err
	}
	result.measure = measurePath
	g.log.Info().Str("file", result.measure).Msg("Wrote measure.")
	return result, nil
}

func (g *generator) generateAll(ctx context.Context, inputs []string) *util.GenerateStats {
	stats := &util.GenerateStats{Files: len(inputs)}

	var progress *mpb.Progress
	var bar *mpb.Bar
	if !noProgress {
		progress = mpb.NewWithContext(ctx, mpb.WithOutput(os.Stderr))
		bar = progress.AddBar(int64(len(inputs)),
			mpb.BarRemoveOnComplete(),
			mpb.PrependDecorators(
				decor.Name("generate "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	start := time.Now()
	for _, input := range inputs {
		fileStart := time.Now()
		result, err := g.generate(ctx, input)
		stats.Durations = append(stats.Durations, time.Since(fileStart))
		g.record(stats, input, result, err)
		if bar != nil {
			bar.Increment()
		}
	}
	if progress != nil {
		progress.Wait()
	}
	stats.TotalDuration = time.Since(start)
	return stats
}

func (g *generator) record(stats *util.GenerateStats, input string, result generateResult, err error) {
	if result.library != "" {
		stats.Libraries++
	}
	if result.measure != "" {
		stats.Measures++
	}
	if err != nil {
		stats.AddFailure(input, err)
		g.log.Error().Err(err).Str("file", input).Msg("Could not generate FSH.")
		return
	}
	if result.measure == "" {
		stats.SkippedMeasures++
	}
}

// watchInputs regenerates the FSH files of every local input whenever it is
// written. Regenerated files overwrite the previous output.
func (g *generator) watchInputs(ctx context.Context, inputs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, input := range inputs {
		if isURL(input) {
			continue
		}
		path, err := filepath.Abs(input)
		if err != nil {
			return err
		}
		watched[path] = true
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	g.force = true
	g.log.Info().Int("files", len(watched)).Msg("Watching for changes.")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !watched[event.Name] {
				continue
			}
			result, err := g.generate(ctx, event.Name)
			if err != nil {
				g.log.Error().Err(err).Str("file", event.Name).Msg("Could not generate FSH.")
				continue
			}
			g.log.Info().Str("file", event.Name).Str("library", result.library).
				Str("measure", result.measure).Msg("Regenerated.")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.log.Error().Err(err).Msg("Watch error.")
		}
	}
}

func isURL(input string) bool {
	return strings.Contains(input, "://")
}

// location returns input as absolute path unless it is a URL.
func location(input string) string {
	if isURL(input) {
		return input
	}
	if abs, err := filepath.Abs(input); err == nil {
		return abs
	}
	return input
}

// expandInputs turns the command line arguments into the list of CQL inputs.
// Directories are searched recursively for .cql files, glob patterns are
// expanded and URLs are passed through. Duplicates are removed.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	add := func(input string) {
		if !seen[input] {
			seen[input] = true
			inputs = append(inputs, input)
		}
	}

	for _, arg := range args {
		if isURL(arg) {
			add(arg)
			continue
		}
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			matches, err := doublestar.Glob(os.DirFS(arg), "**/*.cql", doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("search directory `%s`: %w", arg, err)
			}
			for _, match := range matches {
				add(filepath.Join(arg, filepath.FromSlash(match)))
			}
			continue
		}
		if err == nil {
			add(arg)
			continue
		}
		if !strings.ContainsAny(arg, "*?[{") {
			return nil, fmt.Errorf("input `%s` doesn't exist", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern `%s`: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match `%s`", arg)
		}
		for _, match := range matches {
			add(match)
		}
	}
	return inputs, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate [cql-file|directory|pattern]...",
	Short: "Generates FSH Library and Measure instances from CQL files",
	Long: `Parses the given CQL files and writes one FSH Library instance per file
and one FSH Measure instance per indicator library into the output directory.

Directories are searched recursively for .cql files. Patterns like
"input/cql/**/*.cql" are expanded. Indicator metadata is read from the file
given by --metadata.

Example:

  cqlfsh generate --metadata indicators.csv --output input/fsh input/cql`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateGenerate(); err != nil {
			return err
		}
		ctx := cmd.Context()

		inputs, err := expandInputs(args)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Output, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		fs := afs.New()
		indicators, err := loadIndicators(ctx, fs)
		if err != nil {
			return err
		}

		g := &generator{
			fs:         fs,
			indicators: indicators,
			measures:   fsh.NewMeasureBuilder(logger),
			outputDir:  cfg.Output,
			force:      cfg.Force,
			log:        logger,
		}

		stats := g.generateAll(ctx, inputs)
		fmt.Fprint(cmd.OutOrStdout(), stats.String())

		if watch {
			return g.watchInputs(ctx, inputs)
		}
		if len(stats.Failures) > 0 {
			return fmt.Errorf("%d of %d files failed", len(stats.Failures), stats.Files)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "directory to write the FSH files into")
	generateCmd.Flags().BoolVarP(&cfg.Force, "force", "f", cfg.Force, "overwrite existing FSH files")
	generateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when an input file changes")
}
