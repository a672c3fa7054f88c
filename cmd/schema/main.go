// schema writes the json schema of resumo.yml, used by go:generate in pkg/config
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/resumo-news/resumo/pkg/config"
)

type opts struct {
	Indent string `long:"indent" default:"  " description:"json indentation"`
	Args   struct {
		Output string `positional-arg-name:"output"`
	} `positional-args:"yes"`
}

func main() {
	var o opts
	if _, err := flags.Parse(&o); err != nil {
		os.Exit(1)
	}

	if o.Args.Output == "" {
		o.Args.Output = "schema.json"
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("[ERROR] can't reflect config schema: %v", err)
	}
	schema.Title = "resumo config"

	data, err := json.MarshalIndent(schema, "", o.Indent)
	if err != nil {
		log.Fatalf("[ERROR] can't marshal schema: %v", err)
	}

	if err := os.WriteFile(o.Args.Output, append(data, '\n'), 0o600); err != nil { //nolint:gosec // not sensitive
		log.Fatalf("[ERROR] can't write %s: %v", o.Args.Output, err)
	}
	fmt.Printf("schema written to %s\n", o.Args.Output)
}
