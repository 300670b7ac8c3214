// Command bench times the basic note operations against a throwaway
// notebook file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to insert")
	keep := flag.Bool("keep", false, "Keep the benchmark database after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "notebook_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	dbPath := filepath.Join(benchDir, "bench.db3")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := context.Background()

	service, err := notebook.New(dbPath, notebook.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	// Run 1: inserts, one statement each.
	fmt.Printf("Inserting %d notes into %s...\n", *count, dbPath)
	startInsert := time.Now()
	ids := make([]int64, 0, *count)
	for i := 0; i < *count; i++ {
		id, err := service.InsertNote(ctx, core.Note{
			Title: fmt.Sprintf("Note %d", i),
			Text:  fmt.Sprintf("Benchmark note %d\nwritten %s", i, time.Now().Format(time.RFC3339)),
		})
		if err != nil {
			panic(err)
		}
		ids = append(ids, id)
	}
	insertDur := time.Since(startInsert)

	// Run 2: point reads.
	startGet := time.Now()
	for _, id := range ids {
		if _, err := service.GetNote(ctx, id); err != nil {
			panic(err)
		}
	}
	getDur := time.Since(startGet)

	// Run 3: full listing from a fresh handle, as a new CLI invocation would.
	if err := service.Close(); err != nil {
		panic(err)
	}
	service2, err := notebook.New(dbPath, notebook.WithLogger(logger))
	if err != nil {
		panic(err)
	}
	defer service2.Close()

	startList := time.Now()
	list, err := service2.ListNotes(ctx)
	if err != nil {
		panic(err)
	}
	listDur := time.Since(startList)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  Insert: %v (%v/op)\n", insertDur, perOp(insertDur, *count))
	fmt.Printf("  Get:    %v (%v/op)\n", getDur, perOp(getDur, *count))
	fmt.Printf("  List:   %v (Items: %d)\n", listDur, len(list))
	fmt.Printf("--------------------------------------------------\n")
}

func perOp(d time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return d / time.Duration(n)
}
