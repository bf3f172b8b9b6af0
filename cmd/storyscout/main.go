package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"storyscout/internal/config"
	"storyscout/internal/discovery"
	"storyscout/internal/eventbus"
	"storyscout/internal/history"
	"storyscout/internal/refs"
	"storyscout/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.storyscout.toml)")
	initialQuery := flag.String("query", "", "pre-seed the search input")
	scanDir := flag.String("scan", "", "directory to scan for story index files")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("storyscout.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	if *configPath != "" {
		cfg, err = configSvc.LoadFromPath(*configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if *initialQuery != "" {
		cfg.InitialQuery = *initialQuery
	}

	// Remaining args are ad-hoc references: id=path/to/index.json
	for _, arg := range flag.Args() {
		id, path, ok := splitRefArg(arg)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid reference %q, expected id=path\n", arg)
			os.Exit(1)
		}
		cfg.Refs[id] = path
	}

	if *scanDir != "" {
		cfg.ScanDirs = append(cfg.ScanDirs, *scanDir)
	}

	// Initialize services
	loaderSvc := refs.NewLoaderService(bus, cfg.Refs)
	discoverySvc := discovery.NewDiscoveryService(bus)
	histStore := history.NewStore(bus, cfg.HistorySize)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, histStore)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.Pager().SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventRefLoaded, forward)
	bus.Subscribe(eventbus.EventRefFailed, forward)
	bus.Subscribe(eventbus.EventScanCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventConfigSaved, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start the initial load
	go func() {
		if err := loaderSvc.LoadAll(ctx); err != nil {
			log.Printf("Initial load: %v", err)
		}
	}()
	if len(cfg.ScanDirs) > 0 {
		if err := discoverySvc.StartScan(ctx, cfg.ScanDirs); err != nil {
			log.Printf("Discovery scan: %v", err)
		}
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
	cancel()
}

// splitRefArg parses an "id=path" reference argument
func splitRefArg(arg string) (id, path string, ok bool) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '=' {
			if i == 0 || i == len(arg)-1 {
				return "", "", false
			}
			return arg[:i], arg[i+1:], true
		}
	}
	return "", "", false
}
