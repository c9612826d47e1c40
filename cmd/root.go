package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/1mikegrn/michaelgreen.dev/cmd/columns"
	"github.com/1mikegrn/michaelgreen.dev/cmd/project"
	"github.com/1mikegrn/michaelgreen.dev/cmd/publish"
	"github.com/1mikegrn/michaelgreen.dev/internal/config"
)

var (
	listColumns   = columns.ListColumnsWithParams
	projectColumn = project.ProjectColumnWithParams
	publishTable  = publish.PublishTableWithParams
)

// CLI represents the complete command structure for the csvstage application
type CLI struct {
	// Global flags
	Overwrite  bool   `help:"Overwrite existing output files"`
	Delimiter  string `help:"Field delimiter for input files" default:","`
	MaxRows    int64  `help:"Maximum number of data rows to ingest per file (0 = unlimited)" default:"0"`
	ScratchDir string `help:"Parent directory for staging scratch storage (defaults to the system temp directory)"`

	Columns ColumnsCmd `cmd:"" help:"List the columns of a delimited input file"`
	Project ProjectCmd `cmd:"" help:"Project one column of a delimited input file"`
	Publish PublishCmd `cmd:"" help:"Publish a staged table to a Datasette instance"`
}

// ColumnsCmd represents the columns command
type ColumnsCmd struct {
	Input string `short:"f" help:"Path to the delimited input file"`
	JSON  bool   `help:"Print column names as a JSON array"`
}

// ProjectCmd represents the project command
type ProjectCmd struct {
	Input         string `short:"f" help:"Path to the delimited input file"`
	Column        string `short:"c" help:"Column to project (omit for interactive selection)"`
	Format        string `help:"Output format" enum:"plain,json,yaml" default:"plain"`
	Output        string `short:"o" help:"Write the projection to this file instead of stdout"`
	NoInteractive bool   `help:"Disable the interactive column picker when no column is given" default:"false"`
}

// PublishCmd represents the publish command
type PublishCmd struct {
	Input    string `short:"f" help:"Path to the delimited input file"`
	Table    string `help:"Destination table name" required:""`
	URL      string `help:"Datasette base URL"`
	Database string `help:"Datasette database name"`
	Token    string `help:"Datasette API token"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	// Create CLI instance
	var cli CLI

	// Parse command line with Kong
	ctx := kong.Parse(&cli,
		kong.Name("csvstage"),
		kong.Description("Stage delimited text tables in transient SQLite storage and project columns from them."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	// Execute the selected command
	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("OverwriteFiles", false)

	// Staging defaults
	viper.SetDefault("staging.delimiter", ",")
	viper.SetDefault("staging.maxrows", 0)
	viper.SetDefault("staging.scratchdir", "")

	// Datasette defaults
	viper.SetDefault("datasette.url", "http://localhost:8001")
	viper.SetDefault("datasette.database", "staging")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("datasette.token", "DATASETTE_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	// Update config based on CLI flags
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetDelimiter(cli.Delimiter)
	config.SetMaxRows(cli.MaxRows)
	config.SetScratchDir(cli.ScratchDir)
}

// Run methods for each command

func (c *ColumnsCmd) Run() error {
	input := c.Input
	if input == "" {
		input = viper.GetString("staging.csvfile")
	}

	if input == "" {
		return fmt.Errorf("input file is required (provide via --input flag or staging.csvfile in config)")
	}

	return listColumns(input, c.JSON)
}

func (p *ProjectCmd) Run() error {
	input := p.Input
	if input == "" {
		input = viper.GetString("staging.csvfile")
	}

	if input == "" {
		return fmt.Errorf("input file is required (provide via --input flag or staging.csvfile in config)")
	}

	return projectColumn(project.Params{
		Input:       input,
		Column:      p.Column,
		Format:      p.Format,
		Output:      p.Output,
		Interactive: !p.NoInteractive, // Invert: default is interactive
	})
}

func (p *PublishCmd) Run() error {
	input := p.Input
	if input == "" {
		input = viper.GetString("staging.csvfile")
	}

	url := p.URL
	if url == "" {
		url = viper.GetString("datasette.url")
	}

	database := p.Database
	if database == "" {
		database = viper.GetString("datasette.database")
	}

	token := p.Token
	if token == "" {
		token = viper.GetString("datasette.token")
	}

	if input == "" {
		return fmt.Errorf("input file is required (provide via --input flag or staging.csvfile in config)")
	}
	if url == "" {
		return fmt.Errorf("datasette URL is required (provide via --url flag or datasette.url in config)")
	}

	return publishTable(publish.Params{
		Input:    input,
		Table:    p.Table,
		URL:      url,
		Database: database,
		Token:    token,
	})
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
