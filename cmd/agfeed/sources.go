package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/agsist/agfeed/feed"
	"github.com/agsist/agfeed/news"
	"github.com/agsist/agfeed/sources"
)

func printSourcesUsage() {
	fmt.Println("agfeed sources - Manage extra feed sources")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  agfeed sources <action> [arguments]")
	fmt.Println()
	fmt.Println("Actions:")
	fmt.Println("  list       List all sources")
	fmt.Println("  add        Add a new source")
	fmt.Println("  delete     Delete a source")
	fmt.Println("  enable     Enable a source")
	fmt.Println("  disable    Disable a source")
	fmt.Println("  discover   Find the feeds a site advertises")
	fmt.Println("  help       Show this help message")
}

func handleSourcesCommand(action string, args []string) {
	switch action {
	case "help", "--help", "-h":
		printSourcesUsage()
		return
	case "discover":
		handleSourcesDiscover(args)
		return
	}

	dsn := os.Getenv("AGFEED_SOURCES_DSN")
	if dsn == "" {
		dsn = "agfeed.db"
	}

	store, err := sources.NewSourceStore(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open sources database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch action {
	case "list":
		handleSourcesList(store)
	case "add":
		handleSourcesAdd(store, args)
	case "delete":
		handleSourcesDelete(store, args)
	case "enable":
		handleSourcesSetEnabled(store, args, true)
	case "disable":
		handleSourcesSetEnabled(store, args, false)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown sources command: %s\n\n", action)
		printSourcesUsage()
		os.Exit(1)
	}
}

func handleSourcesList(store *sources.SourceStore) {
	sourceList, err := store.ListSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to list sources: %v\n", err)
		os.Exit(1)
	}

	if len(sourceList) == 0 {
		fmt.Println("No extra sources configured.")
		return
	}

	fmt.Printf("%-36s %-12s %-8s %-30s %s\n", "ID", "CATEGORY", "ENABLED", "NAME", "URL")
	fmt.Println("----------------------------------------------------------------------------------------------------")
	for _, source := range sourceList {
		name := source.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		fmt.Printf("%-36s %-12s %-8t %-30s %s\n",
			source.SourceID.String(),
			source.Category,
			source.IsEnabled(),
			name,
			source.URL,
		)
	}
}

func handleSourcesAdd(store *sources.SourceStore, args []string) {
	fs := flag.NewFlagSet("sources add", flag.ExitOnError)
	url := fs.String("url", "", "feed URL (required)")
	name := fs.String("name", "", "display name (required)")
	category := fs.String("category", string(news.CategoryIndustry), "category: community, government, university, industry, markets, weather")
	community := fs.Bool("community", false, "treat as a community feed (quality filtered)")
	icon := fs.String("icon", "", "emoji shown next to items")
	fs.Parse(args)

	if *url == "" || *name == "" {
		fmt.Fprintf(os.Stderr, "Error: -url and -name are required\n")
		fs.Usage()
		os.Exit(1)
	}

	source, err := store.CreateSource(*url, *name, news.Category(*category), *community, *icon)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to add source: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added source %s (%s)\n", source.SourceID, source.Name)
}

func handleSourcesDelete(store *sources.SourceStore, args []string) {
	id := parseSourceID(args, "delete")
	if err := store.DeleteSource(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete source: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted source %s\n", id)
}

func handleSourcesSetEnabled(store *sources.SourceStore, args []string, enabled bool) {
	verb := "enable"
	if !enabled {
		verb = "disable"
	}
	id := parseSourceID(args, verb)
	if err := store.SetEnabled(id, enabled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to %s source: %v\n", verb, err)
		os.Exit(1)
	}
	fmt.Printf("Source %s %sd\n", id, verb)
}

func handleSourcesDiscover(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: site URL is required\n")
		fmt.Fprintf(os.Stderr, "Usage: agfeed sources discover <site-url>\n")
		os.Exit(1)
	}

	d := feed.NewDiscoverer(0)
	links, err := d.Discover(context.Background(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: discovery failed: %v\n", err)
		os.Exit(1)
	}

	if len(links) == 0 {
		fmt.Println("No feeds advertised by that page.")
		return
	}

	fmt.Printf("%-24s %-40s %s\n", "TYPE", "TITLE", "URL")
	for _, link := range links {
		title := link.Title
		if title == "" {
			title = "-"
		}
		fmt.Printf("%-24s %-40s %s\n", link.Type, title, link.URL)
	}
}

func parseSourceID(args []string, action string) uuid.UUID {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: source ID is required\n")
		fmt.Fprintf(os.Stderr, "Usage: agfeed sources %s <source-id>\n", action)
		os.Exit(1)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid source ID: %v\n", err)
		os.Exit(1)
	}
	return id
}
