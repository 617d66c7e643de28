// Command khmerseg segments Khmer text into word-like tokens, either as a
// one-shot stdin/stdout filter or as a multi-threaded batch job over a file
// of lines.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/khmerseg/khmerseg/internal/cli"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	root := cli.NewRootCommand(log)
	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("segmentation failed")
		os.Exit(1)
	}
}
