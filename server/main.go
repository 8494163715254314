package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

const shutdownGrace = 5 * time.Second

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	clientDir := flag.String("client", "", "Path to client directory (default: ../client)")
	dbPath := flag.String("db", "treasure.db", "SQLite database path (empty disables accounts and stats)")
	configPath := flag.String("config", "", "Optional YAML config file")
	tui := flag.Bool("tui", false, "Play locally in the terminal instead of serving")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = random)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if *tui {
		if err := RunTerminal(cfg); err != nil {
			log.Fatalf("terminal: %v", err)
		}
		return
	}

	var db *DB
	if *dbPath != "" {
		if db, err = OpenDB(*dbPath); err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		log.Printf("using database %s", *dbPath)
	}
	analytics := NewAnalytics(db)

	hub := NewHub(cfg, db, analytics)
	go hub.Run()

	dir := resolveClientDir(*clientDir)
	server := &http.Server{Addr: *addr, Handler: SetupRoutes(hub, dir)}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Printf("listening on %s, client files from %s", *addr, dir)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownGrace)
	defer done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	hub.sessions.StopAll()
	analytics.Stop()
}

// resolveClientDir picks the static client directory: the flag, then
// ../client next to the binary, then ../client from the working directory
func resolveClientDir(flagDir string) string {
	if flagDir != "" {
		return flagDir
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "..", "client")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return "../client"
}
