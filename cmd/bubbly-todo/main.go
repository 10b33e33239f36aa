// Package main is the entry point for the bubbly-todo edit screen.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/bubbly-todo/internal/api"
	"github.com/hy4ri/bubbly-todo/internal/config"
	"github.com/hy4ri/bubbly-todo/internal/edit"
	"github.com/hy4ri/bubbly-todo/internal/logging"
	"github.com/hy4ri/bubbly-todo/internal/tui"
)

const version = "0.1.0"

const helpText = `bubbly-todo - edit a single todo from the terminal

USAGE:
    bubbly-todo --id ID [OPTIONS]

RECORD:
    --id ID             Id of the todo to edit (required unless --record has one)
    --record FILE       Read the todo from a JSON file
    --todo TEXT         Todo text; with --date/--category/--color, skips fetching
    --date YYYY-MM-DD   Todo date
    --category NAME     Todo category
    --color HEX         Category color, e.g. "#ff0000"

    Without --record or --todo the record is fetched from the server.

OPTIONS:
    --base-url URL      Server base URL (overrides config and BUBBLY_BASE_URL)
    --save-token TOKEN  Store an API token in the system keyring and exit
    --logout            Remove the stored API token and exit
    --init              Create a template config file
    -h, --help          Show this help message
    -v, --version       Show version information

CONFIGURATION:
    Config file: ~/.config/bubbly-todo/config.yaml
    Log file:    ~/.local/share/bubbly-todo/bubbly-todo.log

KEYBINDINGS:
    Tab/Shift+Tab       Next/previous field
    h/j/k/l, arrows     Move in the date grid or category list
    [ / ]               Previous/next month
    t / o               Today / original date
    Enter               Choose category, confirm dialog
    Ctrl+S              Save
    y                   Copy the dialog message
    Esc                 Leave without saving
`

const configTemplate = `# bubbly-todo configuration
# Location: ~/.config/bubbly-todo/config.yaml

server:
  base_url: http://localhost:8084
  timeout: 30s

ui:
  # Enable h/j/k/l in the pickers (default: true)
  vim_mode: true
  # Desktop notification after a successful save
  notify: false

log:
  # Defaults to ~/.local/share/bubbly-todo/bubbly-todo.log
  file: ""
  level: info
`

type options struct {
	id       int64
	todo     string
	date     string
	category string
	color    string
	record   string
	baseURL  string
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		opts        options
		showHelp    bool
		showVersion bool
		initConfig  bool
		saveToken   string
		logout      bool
	)

	flag.Int64Var(&opts.id, "id", 0, "Id of the todo to edit")
	flag.StringVar(&opts.todo, "todo", "", "Todo text")
	flag.StringVar(&opts.date, "date", "", "Todo date (YYYY-MM-DD)")
	flag.StringVar(&opts.category, "category", "", "Todo category")
	flag.StringVar(&opts.color, "color", "", "Category color")
	flag.StringVar(&opts.record, "record", "", "Read the todo from a JSON file")
	flag.StringVar(&opts.baseURL, "base-url", "", "Server base URL")
	flag.StringVar(&saveToken, "save-token", "", "Store an API token and exit")
	flag.BoolVar(&logout, "logout", false, "Remove the stored API token")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	switch {
	case showHelp:
		fmt.Print(helpText)
		return nil
	case showVersion:
		fmt.Printf("bubbly-todo version %s\n", version)
		return nil
	case initConfig:
		return createConfigTemplate()
	case saveToken != "":
		source, err := config.SaveToken(saveToken)
		if err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Printf("Token saved to %s.\n", source)
		return nil
	case logout:
		if err := config.ClearToken(); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}
		fmt.Println("Token removed.")
		return nil
	}

	return runApp(opts)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp resolves the record and runs the edit screen.
func runApp(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.Server.BaseURL = opts.baseURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("failed to resolve log path: %w", err)
	}
	logger, logFile, err := logging.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	client := api.NewClient(cfg.Server.BaseURL)
	client.SetTimeout(cfg.Server.Timeout)
	client.SetLogger(logger)

	token, source, err := config.GetToken()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read API token")
	}
	if token != "" {
		client.SetAccessToken(token)
		logger.Debug().Str("source", string(source)).Msg("using API token")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	record, err := resolveRecord(ctx, opts, client)
	if err != nil {
		return err
	}
	logger.Info().Int64("id", record.ID).Str("base_url", client.BaseURL()).Msg("editing todo")

	app := tui.NewApp(edit.NewFlow(client, logger), edit.New(record.ID, record), tui.Options{
		Context: ctx,
		Logger:  logger,
		VimMode: cfg.UI.VimMode,
		Notify:  cfg.UI.Notify,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if result, ok := app.Result(); ok {
		fmt.Println(result.Message)
	}
	return nil
}

type todoFetcher interface {
	GetTodo(ctx context.Context, id int64) (*api.Todo, error)
}

// resolveRecord builds the record to edit from a file, from flags, or by
// fetching it from the server, in that order.
func resolveRecord(ctx context.Context, opts options, fetcher todoFetcher) (api.Todo, error) {
	var record api.Todo

	switch {
	case opts.record != "":
		data, err := os.ReadFile(opts.record)
		if err != nil {
			return api.Todo{}, fmt.Errorf("failed to read record: %w", err)
		}
		if err := json.Unmarshal(data, &record); err != nil {
			return api.Todo{}, fmt.Errorf("failed to parse record %s: %w", opts.record, err)
		}
		if opts.id > 0 {
			record.ID = opts.id
		}

	case opts.todo != "":
		record = api.Todo{
			ID:           opts.id,
			Todo:         opts.todo,
			TodoDate:     opts.date,
			TodoCategory: opts.category,
		}
		if opts.color != "" {
			record.CategoryColor = api.StringPtr(opts.color)
		}

	default:
		if opts.id <= 0 {
			return api.Todo{}, errUsage
		}
		fetched, err := fetcher.GetTodo(ctx, opts.id)
		if err != nil {
			return api.Todo{}, err
		}
		record = *fetched
		record.ID = opts.id
	}

	if record.ID <= 0 {
		return api.Todo{}, errUsage
	}
	return record, nil
}

var errUsage = errors.New("a positive --id is required (see --help)")
