package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/abelbrown/cinecluster/internal/api"
	"github.com/abelbrown/cinecluster/internal/cluster"
	"github.com/abelbrown/cinecluster/internal/logging"
	"github.com/abelbrown/cinecluster/internal/ui"
)

// runCluster issues one /cluster request and prints the result, sorted as
// asked. It is the picker without the picker.
func runCluster() {
	fs := flag.NewFlagSet("cluster", flag.ExitOnError)
	genre := fs.String("genre", "", "Genre to cluster (empty for any)")
	rating := fs.Float64("rating", -1, "Minimum rating (default: configured rating_default)")
	sortBy := fs.String("sort", "", "Sort mode: none, title, rating")
	width := fs.Int("width", 100, "Render width in columns")
	rawJSON := fs.Bool("json", false, "Print the response as JSON")
	listGenres := fs.Bool("genres", false, "List available genres and exit")
	verbose := fs.Bool("v", false, "Log requests to stderr")
	fs.Parse(os.Args[1:])
	logging.Init(os.Stderr, *verbose)

	mode, ok := cluster.ParseSortMode(*sortBy)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown sort mode %q\n", *sortBy)
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := loadConfig(ctx)
	if *rating < 0 {
		*rating = cfg.RatingDefault
	}

	client, err := api.NewClient(cfg.BaseURL, cfg.Timeout, cfg.RequestsPerSecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *listGenres {
		genres, err := client.Genres(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		for _, g := range genres {
			fmt.Println(g)
		}
		return
	}

	logging.Debug("requesting clusters", "url", client.ClusterURL(*genre, ui.FormatRating(*rating)))
	res, err := client.Cluster(ctx, *genre, ui.FormatRating(*rating))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var st cluster.State
	st.Replace(res)
	st.SetSort(mode)

	if *rawJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st.Result()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(ui.RenderResults(&st, *width))
}
