package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

// apiFailure marks a command whose API call completed with a non-2xx result.
// The result itself has already been printed.
type apiFailure struct {
	status int
}

func (e *apiFailure) Error() string {
	return fmt.Sprintf("api request failed with status %d", e.status)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printResult[S, E any](w io.Writer, res httpclient.Result[S, E]) error {
	if err := printJSON(w, res); err != nil {
		return err
	}
	if !res.Success() {
		return &apiFailure{status: res.StatusCode()}
	}
	return nil
}

// runCall invokes one SDK operation with the command's context and prints its result.
func runCall[S, E any](cmd *cobra.Command, call func(context.Context) (httpclient.Result[S, E], error)) error {
	res, err := call(cmd.Context())
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}
