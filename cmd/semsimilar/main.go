// Copyright 2025 Poiesic Systems
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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/poiesic/semsimilar"
	"github.com/poiesic/semsimilar/ai"
	"github.com/poiesic/semsimilar/core"
	"github.com/poiesic/semsimilar/corpus"
	"github.com/poiesic/semsimilar/document"
	"github.com/poiesic/semsimilar/ingestion"
	"github.com/poiesic/semsimilar/regen"
	"github.com/poiesic/semsimilar/wsd"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "semsimilar",
		Usage: "Find semantically similar questions and articles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "senses",
				Usage:  "Load sense inventory entries from a JSON file",
				Action: sensesCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON array of {id, lemma, gloss, examples, hypernyms}",
						Required: true,
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Build and store documents from a JSON file of posts",
				Action: ingestCommand,
				Flags: append(append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "JSON array of {key, title, description, tags}",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "processors",
						Usage: "Number of parallel workers",
						Value: max(1, runtime.NumCPU()/2),
					},
				}, documentFlags()...), aiFlags()...),
			},
			{
				Name:   "search",
				Usage:  "Find stored documents similar to a query",
				Action: searchCommand,
				Flags: append(append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Query title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Query description",
					},
					&cli.StringFlag{
						Name:  "tags",
						Usage: "Query tags",
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of results",
						Value:   5,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum keyword cosine similarity",
						Value: corpus.DefaultThreshold,
					},
					&cli.Float64Flag{
						Name:  "semantic-threshold",
						Usage: "Minimum term relatedness for query expansion",
						Value: corpus.DefaultSemanticThreshold,
					},
					&cli.BoolFlag{
						Name:  "weighted",
						Usage: "Use TF-IDF weighted co-occurrence for relatedness",
					},
				}, documentFlags()...), aiFlags()...),
			},
			{
				Name:   "regen",
				Usage:  "Regenerate tokens and senses of all stored documents",
				Action: regenCommand,
				Flags: append(append([]cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per document",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, documentFlags()...), aiFlags()...),
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "window-size",
			Usage: "Context tokens around each word for disambiguation (even, >= 2)",
			Value: wsd.DefaultWindowSize,
		},
		&cli.BoolFlag{
			Name:  "include-description",
			Usage: "Include the description in document tokens",
		},
		&cli.BoolFlag{
			Name:  "include-tags",
			Usage: "Include tags in document tokens and sense windows",
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "ai-model",
			Usage: "Chat model for disambiguation (gloss overlap is used when empty)",
		},
		&cli.StringFlag{
			Name:    "ai-token",
			Usage:   "API token for the AI service",
			EnvVars: []string{"SEMSIMILAR_AI_TOKEN"},
		},
	}
}

// openDatabase opens the database named by the command's flags.
func openDatabase(c *cli.Context, extra ...semsimilar.DatabaseOption) (*semsimilar.Database, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	opts := []semsimilar.DatabaseOption{
		semsimilar.WithDocumentConfig(document.Config{
			SenseWindowSize:    c.Int("window-size"),
			IncludeDescription: c.Bool("include-description"),
			IncludeTags:        c.Bool("include-tags"),
		}),
	}
	if model := c.String("ai-model"); model != "" {
		aiConfig := ai.NewConfig(
			ai.WithHost(c.String("ai-host")),
			ai.WithModel(model),
			ai.WithToken(c.String("ai-token")),
		)
		if err := aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, semsimilar.WithAIConfig(aiConfig))
	}

	db, err := semsimilar.NewDatabase(dbPath, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// senseJSON is the file format of the senses command.
type senseJSON struct {
	ID        string   `json:"id"`
	Lemma     string   `json:"lemma"`
	Gloss     string   `json:"gloss"`
	Examples  []string `json:"examples"`
	Hypernyms []string `json:"hypernyms"`
}

// postJSON is the file format of the ingest command.
type postJSON struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func sensesCommand(c *cli.Context) error {
	ctx := context.Background()

	var entries []senseJSON
	if err := readJSON(c.String("file"), &entries); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	senses := make([]*core.SenseEntry, len(entries))
	for i, e := range entries {
		senses[i] = &core.SenseEntry{
			Id:        e.ID,
			Lemma:     e.Lemma,
			Gloss:     e.Gloss,
			Examples:  e.Examples,
			Hypernyms: e.Hypernyms,
		}
	}
	if err := db.AddSenses(ctx, senses...); err != nil {
		return fmt.Errorf("failed to store senses: %w", err)
	}

	count, err := db.SenseRepository().CountSenses(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Loaded %d senses (%d in inventory)\n", len(senses), count)
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	var entries []postJSON
	if err := readJSON(c.String("file"), &entries); err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	processors := c.Int("processors")
	if processors < 1 || processors > runtime.NumCPU() {
		return fmt.Errorf("%w: %d (must be between 1 and %d)",
			ingestion.ErrInvalidProcessorCount, processors, runtime.NumCPU())
	}

	pipeline, err := db.NewIngestionPipeline(ctx, ingestion.WithProcessors(processors))
	if err != nil {
		return err
	}

	posts := make([]core.Post, len(entries))
	for i, e := range entries {
		posts[i] = core.Post{Key: e.Key, Title: e.Title, Description: e.Description, Tags: e.Tags}
	}

	start := time.Now()
	added, err := pipeline.Ingest(ctx, posts)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Ingested %d documents in %v\n", len(added), time.Since(start).Round(time.Millisecond))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	var corpusOpts []corpus.Option
	corpusOpts = append(corpusOpts,
		corpus.WithThreshold(c.Float64("threshold")),
		corpus.WithSemanticThreshold(c.Float64("semantic-threshold")),
	)
	if c.Bool("weighted") {
		corpusOpts = append(corpusOpts, corpus.WithWeightedCoOccurrence())
	}

	db, err := openDatabase(c, semsimilar.WithCorpusOptions(corpusOpts...))
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := db.FindSimilar(ctx, core.Post{
		Key:         "query",
		Title:       c.String("title"),
		Description: c.String("description"),
		Tags:        c.String("tags"),
	}, c.Int("count"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Found %d similar documents\n", len(results))
	for i, r := range results {
		fmt.Fprintf(c.App.Writer, "%d: [%0.3f] %s %q\n", i+1, r.Score, r.Document.Key(), r.Document.Title())
	}
	return nil
}

func regenCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &regen.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	regenerator, err := db.NewRegenerator(ctx, config, c.App.ErrWriter)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n", c.String("db"))
	if model := c.String("ai-model"); model != "" {
		fmt.Fprintf(c.App.ErrWriter, "Disambiguation model: %s at %s\n", model, c.String("ai-host"))
	}
	fmt.Fprintln(c.App.ErrWriter)

	result, err := regenerator.Run(ctx)
	if err != nil {
		return fmt.Errorf("regeneration failed: %w", err)
	}
	if result.Failed > 0 {
		fmt.Fprintf(c.App.ErrWriter, "%d documents could not be regenerated and keep their previous tokens\n", result.Failed)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
