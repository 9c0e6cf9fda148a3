package main

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"spiralsim/internal/config"
	"spiralsim/internal/gate"
	"spiralsim/internal/trace"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [contract]",
	Short:     "print the JSON Schema of a public contract",
	Long:      "schema emits the JSON Schema of the run configuration, the validation report, or a trace sample, for consumers of the stored artifacts.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"config", "report", "trace"},
	RunE:      printSchema,
}

func printSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	var schema *jsonschema.Schema
	switch args[0] {
	case "config":
		schema = reflector.Reflect(&config.Config{})
	case "report":
		schema = reflector.Reflect(&gate.Report{})
	case "trace":
		schema = reflector.Reflect(&trace.Sample{})
	default:
		return fmt.Errorf("unknown contract: %s (want config, report or trace)", args[0])
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
