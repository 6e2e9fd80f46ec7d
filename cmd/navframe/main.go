package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/vidyasagar/navframe/internal/app"
	"github.com/vidyasagar/navframe/internal/config"
	"github.com/vidyasagar/navframe/internal/logging"
	"github.com/vidyasagar/navframe/internal/nav"
	"github.com/vidyasagar/navframe/internal/surface"
	"github.com/vidyasagar/navframe/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		configPath  string
		home        string
		capacity    int
		themeName   string
		debug       bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config file (default: <config dir>/navframe/config.json)")
	flag.StringVar(&home, "home", "", "home address, loaded at start")
	flag.IntVar(&capacity, "capacity", 0, "number of history entries kept")
	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "navframe - an embedded page frame with browser controls\n\n")
		fmt.Fprintf(os.Stderr, "Usage: navframe [flags] [address]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  navframe                         # open the configured home\n")
		fmt.Fprintf(os.Stderr, "  navframe golang.org              # auto-adds https://\n")
		fmt.Fprintf(os.Stderr, "  navframe -capacity 5 -theme nord\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment: NAVFRAME_HOME_URL, NAVFRAME_HISTORY_CAPACITY, NAVFRAME_THEME,\n")
		fmt.Fprintf(os.Stderr, "  NAVFRAME_BLOCKED_HOSTS, NAVFRAME_CACHE_SIZE, NAVFRAME_FETCH_TIMEOUT,\n")
		fmt.Fprintf(os.Stderr, "  NAVFRAME_LOG_LEVEL, NAVFRAME_LOG_DEV, NAVFRAME_LOG_FILE\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("navframe %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags and the address argument override the file and environment.
	if home != "" {
		cfg.Home = home
	}
	if flag.NArg() > 0 {
		cfg.Home = flag.Arg(0)
	}
	if capacity != 0 {
		cfg.Capacity = capacity
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !theme.Set(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", cfg.Theme, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		if dir, err := config.StateDir(); err == nil {
			logFile = filepath.Join(dir, "navframe.log")
		}
	}
	logger := logging.NewOrNop(logging.Config{
		Level:       cfg.LogLevel,
		Development: cfg.LogDev,
		File:        logFile,
	})
	defer func() { _ = logger.Sync() }()

	frame, err := surface.NewFrame(surface.Options{
		BlockedHosts: cfg.BlockedHosts,
		CacheSize:    cfg.CacheSize,
		Timeout:      cfg.FetchTimeout,
	}, logger.Named("surface"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctrl := nav.NewController(nav.Config{
		Home:     cfg.HomeAddress(),
		Capacity: cfg.Capacity,
	}, frame, logger.Named("nav"))

	logger.Info("starting",
		zap.String("version", version),
		zap.String("home", cfg.HomeAddress()),
		zap.Int("capacity", cfg.Capacity),
	)

	p := tea.NewProgram(app.New(ctrl, frame, logger.Named("app")),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
