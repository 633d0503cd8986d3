// Command analyze runs the listing extraction pipeline over local image
// files and prints the resulting listing record as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snapsell/listing-pipeline/config"
	"github.com/snapsell/listing-pipeline/internal/llm"
	"github.com/snapsell/listing-pipeline/internal/pipeline"
	"github.com/snapsell/listing-pipeline/internal/storage"
	"github.com/snapsell/listing-pipeline/internal/vision"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()

	var (
		visionURL = flag.String("vision-url", os.Getenv("VISION_API_URL"), "OCR/vision annotate service base URL")
		cachePath = flag.String("cache", "responses.db", "SQLite response cache path (empty to disable)")
		timeout   = flag.Duration("timeout", 2*time.Minute, "request timeout")
		debug     = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	imagePaths := flag.Args()
	if len(imagePaths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] image.jpg [image2.jpg ...]")
		os.Exit(2)
	}
	if *visionURL == "" {
		log.Fatal().Msg("VISION_API_URL is not set")
	}

	images := make([][]byte, 0, len(imagePaths))
	for _, p := range imagePaths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Fatal().Err(err).Str("path", p).Msg("failed to read image")
		}
		images = append(images, data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	generator, err := llm.NewGeminiGenerator(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create generator")
	}

	var gen llm.Generator = generator
	if *cachePath != "" {
		store, err := storage.NewSQLiteStore(*cachePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open response cache")
		}
		defer store.Close()
		gen = llm.NewCachedGenerator(generator, store)
	}

	annotator := vision.NewClient(vision.ClientOpts{
		BaseURL: *visionURL,
		APIKey:  os.Getenv("VISION_API_KEY"),
	})

	p := pipeline.New(annotator, gen)
	resp, err := p.Analyze(ctx, pipeline.Request{Images: images})
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal response")
	}
	fmt.Println(string(out))
}
