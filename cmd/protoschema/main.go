// Command protoschema writes the JSON schema of the websocket protocol.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/vladimirvolkov/tennis/internal/game"
	"github.com/vladimirvolkov/tennis/internal/logging"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	log := logging.New("info", logging.FormatConsole, os.Stderr)
	if outPath == "" {
		log.Fatal().Msg("protoschema: missing -out path")
	}

	schema, err := game.ProtocolSchema()
	if err != nil {
		log.Fatal().Err(err).Msg("protoschema: build schema")
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("protoschema: marshal schema")
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("protoschema: create output dir")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("protoschema: write schema")
	}
	log.Info().Str("out", outPath).Int("messages", len(schema.Messages)).Msg("schema written")
}
