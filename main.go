package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"dnscache/db"
	"dnscache/internal/cache"
	"dnscache/internal/config"
	"dnscache/internal/database"
	"dnscache/internal/resolver"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: dnscache [-config FILE] <command> [options]

Commands:
  lookup <hostname> [-ttl N]  resolve a hostname, reusing the cache while fresh
  list                        print all unexpired cached records
  cleanup                     delete expired records from the cache
  stress [-ops N]             run the concurrent write stress harness

Options:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "lookup":
		err = runLookup(args, cfg, logger)
	case "list":
		err = runList(cfg, logger)
	case "cleanup":
		err = runCleanup(cfg, logger)
	case "stress":
		err = runStress(args, cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatalf("Command %s failed: %v", command, err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// newLogger logs to stdout and, when configured, to an append-mode log file.
func newLogger(file string) (*log.Logger, func(), error) {
	w := io.Writer(os.Stdout)
	closeFn := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = func() { f.Close() }
	}
	return log.New(w, "", log.LstdFlags), closeFn, nil
}

// openCache wires the storage layer and resolver chain into a ready cache.
func openCache(cfg *config.Config, logger *log.Logger) (*cache.Cache, error) {
	store, err := database.Open(cfg.Database.Path, db.MigrationsFS(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	chain := resolver.New(logger, resolver.WithTimeout(time.Duration(cfg.Resolver.Timeout)*time.Second))
	return cache.New(store, chain, logger), nil
}

func runLookup(args []string, cfg *config.Config, logger *log.Logger) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	ttl := fs.Int64("ttl", cfg.Cache.DefaultTTL, "Lifetime in seconds for a newly cached record")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: hostname required for lookup")
		os.Exit(2)
	}
	hostname := fs.Arg(0)
	fs.Parse(fs.Args()[1:]) // flags may follow the hostname as well
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", fs.Args())
		os.Exit(2)
	}
	if *ttl <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ttl must be positive")
		os.Exit(2)
	}

	c, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	ip, err := c.LookupAndCache(context.Background(), hostname, *ttl)
	if errors.Is(err, resolver.ErrUnresolvable) {
		fmt.Printf("Failed to resolve %s\n", hostname)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", hostname, ip)
	return nil
}

func runList(cfg *config.Config, logger *log.Logger) error {
	c, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	records, err := c.ListFresh()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No active records found")
		return nil
	}

	fmt.Println("\nActive DNS Records:")
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-30s %-15s %-25s\n", "Hostname", "IP Address", "Expires At")
	fmt.Println(strings.Repeat("-", 80))
	for _, r := range records {
		fmt.Printf("%-30s %-15s %s\n", r.Hostname, r.IPAddress, r.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runCleanup(cfg *config.Config, logger *log.Logger) error {
	c, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	count, err := c.SweepExpired()
	if err != nil {
		return err
	}
	fmt.Printf("Cleanup completed (%d records removed)\n", count)
	return nil
}
