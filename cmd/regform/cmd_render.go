package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/internal/server"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
)

var (
	outputPath    string
	renderVariant string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the form page as HTML",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the form schema as JSON",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document describing the form endpoints",
	Args:  cobra.NoArgs,
	RunE:  runOpenAPI,
}

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, schemaCmd, openapiCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")
	}
	renderCmd.Flags().StringVar(&renderVariant, "variant", "", "theme variant (default from config)")
}

func runRender(cmd *cobra.Command, _ []string) error {
	page, err := application.Orchestrator.Generate(cmdContext(cmd), orchestrator.Request{
		ThemeVariant:  renderVariant,
		RenderOptions: render.RenderOptions{Action: server.FormPath},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, page)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	schema, err := application.Orchestrator.Schema()
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return writeOutput(cmd, append(payload, '\n'))
}

func runOpenAPI(cmd *cobra.Command, _ []string) error {
	schema, err := application.Orchestrator.Schema()
	if err != nil {
		return err
	}
	doc, err := openapi.Document(cmdContext(cmd), schema, openapi.Info{
		Title:      cfg.Form.Title,
		FormPath:   server.FormPath,
		ThanksPath: server.ThanksPath,
	})
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return writeOutput(cmd, append(payload, '\n'))
}

func writeOutput(cmd *cobra.Command, data []byte) error {
	if outputPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", outputPath)
	return err
}
