package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/widgets"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check OpenAPI documents for unsupported form hints",
	Long: `Loads each OpenAPI document (JSON or YAML) and reports request body
properties whose x-regform hints use unknown keys, wrong value types or
widgets no renderer provides.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{"skipApp": "true"},
	RunE:        runLint,
}

func runLint(cmd *cobra.Command, paths []string) error {
	ctx := cmdContext(cmd)
	known := []string{widgets.WidgetText, widgets.WidgetPassword, widgets.WidgetTextArea}

	found := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("lint %s: read file: %w", path, err)
		}
		doc, err := openapi.Load(ctx, raw)
		if err != nil {
			return fmt.Errorf("lint %s: %w", path, err)
		}
		for _, violation := range openapi.Lint(doc, known...) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, violation)
			found++
		}
	}
	if found > 0 {
		return fmt.Errorf("lint: %d violation(s)", found)
	}
	return nil
}
