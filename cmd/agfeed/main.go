package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "fetch":
		handleFetch(os.Args[2:])
	case "markets":
		handleMarkets(os.Args[2:])
	case "sources":
		if len(os.Args) < 3 {
			printSourcesUsage()
			os.Exit(1)
		}
		handleSourcesCommand(os.Args[2], os.Args[3:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("agfeed - Agricultural news aggregation pipeline")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  agfeed <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  fetch      Run the full news ingestion pipeline")
	fmt.Println("  markets    Refresh the prediction-market snapshot")
	fmt.Println("  sources    Manage extra feed sources")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  AGFEED_CONFIG       Path to config file (default: agfeed.yaml)")
	fmt.Println("  AGFEED_OUTPUT       News snapshot path (default: data/news.json)")
	fmt.Println("  AGFEED_SOURCES_DSN  Path to the extra-sources database")
	fmt.Println("  ANTHROPIC_API_KEY   Credential for summary generation")
}
