package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tably [dbname] [table]",
	Short: "tably is a paginated table viewer for databases and CSV files",
	Long: `tably displays database tables, query results and CSV files as
paginated tables. Wide terminals get a row/column grid; narrow terminals get
stacked cards.

Examples:
  tably test users
  tably test -c "select * from users where active"
  tably orders.csv --page-size 25
  tably test users --print`,
	Args: cobra.MaximumNArgs(2),
	Run:  runTably,
}

var (
	database   string
	host       string
	port       string
	username   string
	password   string
	command    string
	dbTypeName string

	pageSize     int
	noPagination bool
	noCards      bool
	cardWidth    int
	printMode    bool
)

func init() {
	rootCmd.Flags().BoolP("help", "", false, "help for tably")
	rootCmd.Flags().StringVarP(&database, "database", "d", "", "Database name")
	rootCmd.Flags().StringVarP(&host, "host", "h", "", "Database host")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "Database port")
	rootCmd.Flags().StringVarP(&username, "username", "U", "", "Database username")
	rootCmd.Flags().StringVarP(&password, "password", "W", "", "Database password")
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "SQL query to view")
	rootCmd.Flags().StringVarP(&dbTypeName, "type", "t", "", "Database type: sqlite, postgres or mysql")
	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page")
	rootCmd.Flags().BoolVar(&noPagination, "no-pagination", false, "Show the whole collection as one page")
	rootCmd.Flags().BoolVar(&noCards, "no-cards", false, "Always use the grid layout")
	rootCmd.Flags().IntVar(&cardWidth, "card-width", 0, "Terminal width below which cards are used")
	rootCmd.Flags().BoolVar(&printMode, "print", false, "Print one page to stdout and exit")
}

func runTably(cmd *cobra.Command, args []string) {
	settings, err := LoadSettings()
	if err != nil {
		// A broken settings file should not block the viewer.
		settings = defaultSettings()
	}
	if !settings.FirstRunComplete {
		settings.FirstRunComplete = true
		_ = SaveSettings(settings)
	}

	InitBreadcrumbs(100)
	if settings.TelemetryEnabled {
		if dsn := os.Getenv("TABLY_SENTRY_DSN"); dsn != "" {
			if err := InitSentry(dsn); err != nil {
				debugLog("sentry init failed: %v\n", err)
			}
			defer FlushAndShutdown()
		}
	}

	options := ViewerOptions{
		PageSize:   settings.PageSize,
		Pagination: !noPagination,
		CardView:   !noCards,
		CardWidth:  settings.CardWidth,
	}
	if pageSize > 0 {
		options.PageSize = pageSize
	}
	if cardWidth > 0 {
		options.CardWidth = cardWidth
	}

	if len(args) == 1 && strings.HasSuffix(args[0], ".csv") {
		runCSV(args[0], options)
		return
	}
	runDatabase(args, options)
}

// runCSV views a CSV file. No picker: the file is the only table.
func runCSV(path string, options ViewerOptions) {
	data, err := loadCSV(path)
	if err != nil {
		CaptureError(err)
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}
	if breadcrumbs != nil {
		breadcrumbs.RecordDataLoad(path, len(data.Records))
	}

	if printMode {
		fmt.Print(printTable(data, options, getTerminalWidth()))
		return
	}

	viewer := NewViewer(nil, options)
	viewer.SetTable(data.Name, data.Columns, data.Records)
	if err := viewer.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

// runDatabase connects, resolves what to view and runs the viewer.
func runDatabase(args []string, options ViewerOptions) {
	config := &Config{
		Database: database,
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		Command:  command,
	}
	if config.Database == "" && len(args) >= 1 {
		config.Database = args[0]
	}
	if dbTypeName != "" {
		parsed, err := parseDatabaseType(dbTypeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.DBTypeOverride = &parsed
	}
	if config.Database == "" {
		fmt.Fprintln(os.Stderr, "Error: must specify a database name or a .csv file")
		os.Exit(1)
	}

	var table string
	if len(args) >= 2 {
		table = args[1]
	}

	if config.Command != "" {
		cleaned, err := validateQuery(config.Command)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.Command = cleaned
	}

	db, dbType, err := config.connect()
	if err != nil {
		CaptureError(err)
		fmt.Fprintf(os.Stderr, "Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	tables, err := listTables(db, dbType, config.Database)
	if err != nil {
		CaptureError(err)
		fmt.Fprintf(os.Stderr, "Could not list tables: %v\n", err)
		os.Exit(1)
	}

	load := func() (*TableData, error) {
		if config.Command != "" {
			return loadQuery(db, config.Command)
		}
		if table == "" {
			if len(tables) == 0 {
				return nil, fmt.Errorf("database %s has no tables", config.Database)
			}
			table = tables[0]
		}
		return loadTable(db, dbType, table)
	}

	if printMode {
		data, err := load()
		if err != nil {
			CaptureError(err)
			fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(printTable(data, options, getTerminalWidth()))
		return
	}

	viewer := NewViewer(config, options)
	viewer.SetTablePicker(tables, table, func(name string) {
		table = name
		viewer.HideTablePicker()
		viewer.SetLoading(true)
		go func() {
			data, err := loadTable(db, dbType, name)
			viewer.QueueUpdate(func() {
				if err != nil {
					CaptureError(err)
					viewer.SetTable(name, nil, nil)
					viewer.SetStatusMessage(fmt.Sprintf("Error: %v", err))
					return
				}
				applyLoaded(viewer, dbType, data)
			})
		}()
	})

	// Initial load happens off the event loop so the loading page shows
	// immediately on slow connections.
	go func() {
		data, err := load()
		viewer.QueueUpdate(func() {
			if err != nil {
				CaptureError(err)
				viewer.SetTable(table, nil, nil)
				viewer.SetStatusMessage(fmt.Sprintf("Error: %v", err))
				return
			}
			applyLoaded(viewer, dbType, data)
		})
	}()

	if err := viewer.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

// applyLoaded installs loaded table data into the viewer.
func applyLoaded(viewer *Viewer, dbType DatabaseType, data *TableData) {
	if breadcrumbs != nil {
		breadcrumbs.RecordDataLoad(data.Name, len(data.Records))
	}
	debugLog("loaded %s: %d columns, %d records\n", data.Name, len(data.Columns), len(data.Records))
	name := fmt.Sprintf("%s %s", databaseIcons[dbType], data.Name)
	viewer.SetTable(name, data.Columns, data.Records)
}
