package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"

	"dnscache/db"
	"dnscache/internal/config"
	"dnscache/internal/database"
	"dnscache/internal/model"
)

// stressLevels are the worker counts exercised in one stress run, from a
// single writer up to heavy contention on the busy_timeout.
var stressLevels = []int{1, 5, 10, 20, 50, 100}

type stressMetrics struct {
	totalOps      int
	successfulOps int
	failedOps     int
	lockTimeouts  int
	elapsed       time.Duration
}

// runStress hammers the storage layer with concurrent upserts and reports
// throughput and lock contention per worker count. It writes through the
// store directly, bypassing per-operation cache logging.
func runStress(args []string, cfg *config.Config, logger *log.Logger) error {
	fs := flag.NewFlagSet("stress", flag.ExitOnError)
	ops := fs.Int("ops", 1000, "Operations per worker")
	fs.Parse(args)

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", fs.Args())
		os.Exit(2)
	}
	if *ops <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ops must be positive")
		os.Exit(2)
	}

	store, err := database.Open(cfg.Database.Path, db.MigrationsFS(), logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	fmt.Printf("Running stress test with %d operations per worker\n\n", *ops)
	fmt.Printf("%-10s %-12s %-12s %-12s %-15s %-12s\n",
		"Workers", "Total Ops", "Successful", "Failed", "Lock Timeouts", "Duration(s)")
	fmt.Println(strings.Repeat("-", 80))

	for _, workers := range stressLevels {
		m := stressRun(store, workers, *ops)
		fmt.Printf("%-10d %-12d %-12d %-12d %-15d %-12.2f\n",
			workers, m.totalOps, m.successfulOps, m.failedOps, m.lockTimeouts, m.elapsed.Seconds())
	}
	return nil
}

func stressRun(store *database.DB, workers, opsPerWorker int) stressMetrics {
	var (
		mu sync.Mutex
		m  stressMetrics
	)
	start := time.Now()

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		workerID := i
		g.Go(func() error {
			for j := 0; j < opsPerWorker; j++ {
				n := workerID*opsPerWorker + j
				hostname := fmt.Sprintf("test%d.google.com", n)
				ip := fmt.Sprintf("192.168.1.%d", n%255)

				err := store.PutRecord(hostname, ip, model.RecordTypeA, 300, time.Now())

				mu.Lock()
				m.totalOps++
				if err != nil {
					m.failedOps++
					var sqliteErr sqlite3.Error
					if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrBusy {
						m.lockTimeouts++
					}
				} else {
					m.successfulOps++
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)
			}
			return nil
		})
	}
	_ = g.Wait()

	m.elapsed = time.Since(start)
	return m
}
