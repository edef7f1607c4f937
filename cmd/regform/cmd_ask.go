package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

// promptDriver replaces the interactive terminal driver in tests.
var promptDriver tui.PromptDriver

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Fill in the registration form in the terminal",
	Long: `Prompts for every field of the form. Rejected answers are shown next to
their prompts and the form is asked again until it is valid.`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ctx := cmdContext(cmd)

	prompts, err := tui.New(
		tui.WithOutput(out),
		tui.WithWidgets(application.Widgets),
		tui.WithPromptDriver(promptDriver),
	)
	if err != nil {
		return err
	}

	schema, err := application.Orchestrator.Schema()
	if err != nil {
		return err
	}

	var opts render.RenderOptions
	for {
		submission, err := prompts.Collect(ctx, schema, opts)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(out, "Registration cancelled.")
			return nil
		}
		if err != nil {
			return err
		}

		outcome, err := application.Registration.SubmitSchema(ctx, schema, submission)
		if err != nil {
			return err
		}
		if outcome.Result.Valid() {
			fmt.Fprintf(out, "Thanks! %d answers recorded.\n", len(outcome.Answers))
			return nil
		}
		opts = render.OptionsFromResult(schema, outcome.Result, submission)
	}
}
