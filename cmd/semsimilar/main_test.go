package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findFlag(t *testing.T, cmd *cli.Command, name string) cli.Flag {
	t.Helper()
	for _, flag := range cmd.Flags {
		for _, n := range flag.Names() {
			if n == name {
				return flag
			}
		}
	}
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	return nil
}

func TestCommands(t *testing.T) {
	app := newApp()

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"senses", "ingest", "search", "regen"}, names)

	for _, name := range names {
		dbFlag, ok := findFlag(t, findCommand(t, app, name), "db").(*cli.StringFlag)
		require.True(t, ok)
		assert.True(t, dbFlag.Required, "%s requires --db", name)
		assert.Contains(t, dbFlag.Aliases, "d")
	}
}

func TestSearchCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(), "search")

	t.Run("count defaults to 5", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "count").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 5, flag.Value)
	})

	t.Run("thresholds default to corpus defaults", func(t *testing.T) {
		threshold, ok := findFlag(t, cmd, "threshold").(*cli.Float64Flag)
		require.True(t, ok)
		assert.Equal(t, 0.1, threshold.Value)

		semantic, ok := findFlag(t, cmd, "semantic-threshold").(*cli.Float64Flag)
		require.True(t, ok)
		assert.Equal(t, 0.4, semantic.Value)
	})

	t.Run("title is required", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "title").(*cli.StringFlag)
		require.True(t, ok)
		assert.True(t, flag.Required)
	})

	t.Run("window size defaults to 4", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "window-size").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 4, flag.Value)
	})
}

func TestRegenCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(), "regen")

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "batch-size").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 100, flag.Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "max-retries").(*cli.IntFlag)
		require.True(t, ok)
		assert.Equal(t, 3, flag.Value)
	})

	t.Run("retry-delay has default value of 1s", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "retry-delay").(*cli.DurationFlag)
		require.True(t, ok)
		assert.Equal(t, 1*time.Second, flag.Value)
	})

	t.Run("ai-model is optional", func(t *testing.T) {
		flag, ok := findFlag(t, cmd, "ai-model").(*cli.StringFlag)
		require.True(t, ok)
		assert.False(t, flag.Required)
		assert.Empty(t, flag.Value)
	})
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"semsimilar", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sensesJSON = `[
  {"id": "java.n.01", "lemma": "java", "gloss": "an island in Indonesia"},
  {"id": "java.n.02", "lemma": "java", "gloss": "a programming language you install on a computer", "examples": ["install java"], "hypernyms": ["language.n.01"]},
  {"id": "php.n.01", "lemma": "php", "gloss": "a scripting language for web servers", "hypernyms": ["language.n.01"]},
  {"id": "language.n.01", "lemma": "language", "gloss": "a system of communication"}
]`

const postsJSON = `[
  {"key": "q1", "title": "How to install Java on Ubuntu", "tags": "java ubuntu"},
  {"key": "q2", "title": "Secure PHP sessions against hijacking", "tags": "php security"},
  {"key": "q3", "title": "Java install fails with an error", "tags": "java"}
]`

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")
	sensesPath := writeFile(t, dir, "senses.json", sensesJSON)
	postsPath := writeFile(t, dir, "posts.json", postsJSON)

	out, err := runApp(t, "senses", "--db", dbPath, "--file", sensesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 4 senses")

	out, err = runApp(t, "ingest", "--db", dbPath, "--file", postsPath, "--processors", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ingested 3 documents")

	out, err = runApp(t, "search", "--db", dbPath, "--title", "How to install Java on Ubuntu", "--count", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "1: [1.000] q1")
	assert.NotContains(t, out, "q2")

	_, err = runApp(t, "regen", "--db", dbPath, "--batch-size", "2", "--retry-delay", "1ms")
	require.NoError(t, err)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")

	t.Run("missing db flag fails", func(t *testing.T) {
		_, err := runApp(t, "search", "--title", "java")
		require.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := runApp(t, "senses", "--db", dbPath, "--file", filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", `{"key": `)
		_, err := runApp(t, "ingest", "--db", dbPath, "--file", path)
		require.Error(t, err)
	})

	t.Run("invalid processor count fails", func(t *testing.T) {
		path := writeFile(t, dir, "posts.json", postsJSON)
		_, err := runApp(t, "ingest", "--db", dbPath, "--file", path, "--processors", "0")
		require.Error(t, err)
	})

	t.Run("invalid batch size fails", func(t *testing.T) {
		_, err := runApp(t, "regen", "--db", dbPath, "--batch-size", "0")
		require.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				app := &cli.App{
					Name:      "test",
					ErrWriter: &bytes.Buffer{},
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "log-level", Value: "info"},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error { return nil },
				}
				require.NoError(t, app.Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		err := app.Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		flag, ok := newApp().Flags[0].(*cli.StringFlag)
		require.True(t, ok)
		assert.Equal(t, "log-level", flag.Name)
		assert.Contains(t, flag.Aliases, "l")
		assert.Equal(t, "info", flag.Value)
	})
}

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	os.Exit(m.Run())
}
