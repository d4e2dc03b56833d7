// Surge-Reject Go Generator
// Builds a simplified reject ruleset from upstream Quantumult X / Surge lists
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/xxxbrian/surge-reject/internal/builder"
	"github.com/xxxbrian/surge-reject/internal/cache"
	"github.com/xxxbrian/surge-reject/internal/config"
	"github.com/xxxbrian/surge-reject/internal/fetcher"
	"github.com/xxxbrian/surge-reject/internal/server"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "YAML config file (optional, compiled-in sources otherwise)")
	output := flag.String("output", "", "Output file path (overrides config)")
	timeout := flag.Duration("timeout", 0, "Per-request fetch timeout (overrides config)")
	serve := flag.Bool("serve", false, "Serve the ruleset over HTTP instead of writing a file")
	port := flag.String("port", "8080", "Port to listen on in serve mode")
	resultTTL := flag.Duration("result-ttl", 30*time.Minute, "Result cache TTL in serve mode")
	repoURL := flag.String("repo-url", "https://github.com/xxxbrian/surge-reject", "Repository URL for the root redirect")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	b := builder.New(cfg, fetcher.New(cfg.Timeout), nil)

	if !*serve {
		result, err := b.Build()
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := builder.WriteOutput(cfg.Output, result); err != nil {
			log.Fatalf("Failed to write %s: %v", cfg.Output, err)
		}
		log.Printf("Wrote %s", cfg.Output)
		return
	}

	// Serve mode
	resultCache := cache.NewResultCache(*resultTTL)
	srv := server.NewServer(b.Build, resultCache, *repoURL)

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)
	handler := server.LoggingMiddleware(mux)

	// Start cache cleanup goroutine
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resultCache.Cleanup()
		}
	}()

	addr := ":" + *port
	log.Printf("Starting Surge-Reject server on %s", addr)
	log.Printf("Fetch timeout: %v, Result cache TTL: %v", cfg.Timeout, *resultTTL)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
