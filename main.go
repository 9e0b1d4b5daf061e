package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/miosa/osa-vlist/app"
	"github.com/miosa/osa-vlist/config"
	"github.com/miosa/osa-vlist/feed"
	"github.com/miosa/osa-vlist/logger"
	"github.com/miosa/osa-vlist/style"
	"github.com/miosa/osa-vlist/virtual"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for settings isolation (~/.vlist/profiles/<name>)")
	itemsFlag := flag.Int("items", 0, "Number of generated notices (default from config)")
	overscanFlag := flag.Int("overscan", 0, "Rows rendered beyond each viewport edge")
	gapFlag := flag.Int("gap", 0, "Blank lines between items")
	delayFlag := flag.Duration("scrolling-delay", 0, "How long the list counts as scrolling after the last scroll")
	themeFlag := flag.String("theme", "", "Theme: dark, light, catppuccin, tokyo-night (default: detect)")
	seedFlag := flag.Uint64("seed", 1, "Seed for the generated feed")
	liveFlag := flag.Duration("live", 0, "Interval of simulated feed updates (0 = off)")
	logFlag := flag.String("log", "", "Write logs to this file")
	logLevelFlag := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	metricsFlag := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vlist %s\n", version)
		os.Exit(0)
	}

	home, _ := os.UserHomeDir()
	profileDir := filepath.Join(home, ".vlist")
	if *profileFlag != "" {
		profileDir = filepath.Join(home, ".vlist", "profiles", *profileFlag)
	}

	cfg, err := config.Load(profileDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vlist: %v\n", err)
		os.Exit(1)
	}

	// Flags override the file only when given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "items":
			cfg.Items = *itemsFlag
		case "overscan":
			cfg.Overscan = *overscanFlag
		case "gap":
			cfg.Gap = *gapFlag
		case "scrolling-delay":
			cfg.ScrollingDelayMs = int(delayFlag.Milliseconds())
		case "theme":
			cfg.Theme = *themeFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vlist: %v\n", err)
		os.Exit(2)
	}

	log := logger.Discard()
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vlist: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = logger.New(f, logger.ParseLevel(*logLevelFlag))
	}

	if *metricsFlag != "" {
		serveMetrics(*metricsFlag, log)
	}

	if cfg.Theme != "" {
		style.SetTheme(cfg.Theme)
	} else if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}

	log.Info("starting", "version", version, "items", cfg.Items, "overscan", cfg.Overscan,
		"gap", cfg.Gap, "scrolling_delay_ms", cfg.ScrollingDelayMs, "theme", style.CurrentThemeName)

	m := app.New(feed.New(cfg.Items, *seedFlag, cfg.EstimateHeight), app.Options{
		Version:        version,
		Gap:            cfg.Gap,
		Overscan:       cfg.Overscan,
		ScrollingDelay: time.Duration(cfg.ScrollingDelayMs) * time.Millisecond,
		LiveInterval:   *liveFlag,
		SaveTheme: func(name string) error {
			cfg.Theme = name
			return config.Save(profileDir, cfg)
		},
		Logger: log,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		log.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "vlist: %v\n", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, log logger.Logger) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(virtual.Collectors()...)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "addr", addr, "err", err)
		}
	}()
	log.Info("serving metrics", "addr", addr)
}
