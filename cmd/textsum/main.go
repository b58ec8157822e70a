package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"textsum/internal/config"
	"textsum/internal/httpapi"
	"textsum/internal/logging"
	"textsum/internal/metrics"
	"textsum/internal/service"
	"textsum/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath  string
		count    string
		style    string
		runTUI   bool
		serve    bool
		addr     string
		showLink bool
		outDir   string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/textsum/config.yaml if not provided)")
	flag.StringVar(&count, "n", "", "Number of sentences in the summary (default from config)")
	flag.StringVar(&style, "style", "", "Summary style: plain, bullets or numbered (default from config)")
	flag.BoolVar(&runTUI, "tui", false, "Start the interactive terminal UI")
	flag.BoolVar(&serve, "serve", false, "Start the HTTP API")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.BoolVar(&showLink, "link", false, "Print an HTML download link for each summary")
	flag.StringVar(&outDir, "out", "", "Directory to write summary files into")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()
	slog.SetDefault(logger)

	var rec metrics.Recorder = metrics.Noop{}
	if serve {
		rec = metrics.NewPrometheus()
	}
	svc, err := service.FromConfig(cfg, logger, rec)
	if err != nil {
		log.Fatalf("summarizer init failed: %v", err)
	}

	switch {
	case serve:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := httpapi.New(cfg.Server, cfg.Summarizer, svc, logger, rec)
		if err := srv.Run(ctx); err != nil {
			logger.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case runTUI:
		m := tui.New(svc, cfg.Summarizer, outDir)
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
	default:
		inputs := flag.Args()
		if len(inputs) == 0 {
			fmt.Println("Usage: textsum [flags] file1.txt [file2.md ...]   (use - for stdin)")
			flag.PrintDefaults()
			os.Exit(1)
		}
		opts := batchOptions{count: count, style: style, link: showLink, outDir: outDir}
		if err := runBatch(context.Background(), svc, cfg.Summarizer, inputs, opts, os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
}
