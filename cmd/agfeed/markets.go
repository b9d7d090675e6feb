package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agsist/agfeed/markets"
	"github.com/agsist/agfeed/store"
)

func handleMarkets(args []string) {
	fs := flag.NewFlagSet("markets", flag.ExitOnError)
	output := fs.String("output", "data/polymarket.json", "market snapshot path")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	logger := newLogger(*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := markets.NewCollector(markets.CollectorOptions{
		Searcher: markets.NewClient("", 0),
		Pacer:    pacer(200 * time.Millisecond),
		Logger:   logger,
	})

	snap := collector.Collect(ctx)

	if err := store.WriteJSON(*output, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing market snapshot failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d markets -> %s\n", snap.TotalMarkets, *output)
}
