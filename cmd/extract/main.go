package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/maltedev/marketplace-product-extractor/internal/config"
	"github.com/maltedev/marketplace-product-extractor/internal/document"
	"github.com/maltedev/marketplace-product-extractor/internal/extractor"
	"github.com/maltedev/marketplace-product-extractor/internal/fetcher"
)

// One-shot extraction: fetch a product page (or read saved markup) and
// print the extracted record as JSON.
func main() {
	var (
		pageURL       = flag.String("url", "", "product page URL (fetched unless -file is given)")
		htmlFile      = flag.String("file", "", "local HTML file to extract instead of fetching")
		asHTML        = flag.Bool("as-html", false, "return the description as an HTML fragment")
		selectorsFile = flag.String("selectors", "", "YAML selector file overriding the defaults")
		timeout       = flag.Duration("timeout", 30*time.Second, "fetch timeout")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *pageURL == "" {
		logger.Error("-url is required")
		flag.Usage()
		os.Exit(2)
	}

	selectors := extractor.DefaultSelectors()
	if *selectorsFile != "" {
		var err error
		selectors, err = extractor.LoadSelectors(*selectorsFile)
		if err != nil {
			logger.Error("failed to load selectors", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		doc *document.Document
		err error
	)
	if *htmlFile != "" {
		f, openErr := os.Open(*htmlFile)
		if openErr != nil {
			logger.Error("failed to open file", "error", openErr)
			os.Exit(1)
		}
		doc, err = document.Parse(f)
		f.Close()
	} else {
		cfg, _ := config.Load()
		doc, err = fetcher.New(*timeout, cfg.Fetcher.UserAgents).Fetch(ctx, *pageURL)
	}
	if err != nil {
		logger.Error("failed to load page", "error", err)
		os.Exit(1)
	}

	record := extractor.New(selectors).Extract(doc, *pageURL, extractor.Options{AsHTML: *asHTML})

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		logger.Error("failed to encode record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
