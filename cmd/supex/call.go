package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCallCommand() *cobra.Command {
	callCmd := &cobra.Command{
		Use:   "call METHOD",
		Short: "Send a command to the runtime and print its result as JSON",
		Long: `Send a command to the runtime and print its result as JSON.

The method name and parameters are passed to the runtime verbatim;
anything the runtime understands is a valid method.

Example:
  supex call get_model_info
  supex call create_face --params '{"points":[[0,0,0],[1,0,0],[1,1,0]]}'`,
		Args: cobra.ExactArgs(1),
		RunE: callAction,
	}

	callCmd.Flags().String("params", "", "command parameters as a JSON object")
	callCmd.Flags().String("id", "", "explicit JSON-RPC request id")

	return callCmd
}

func callAction(cmd *cobra.Command, args []string) error {
	rawParams, err := cmd.Flags().GetString("params")
	if err != nil {
		return err
	}

	var params map[string]any
	if rawParams != "" {
		if err := json.Unmarshal([]byte(rawParams), &params); err != nil {
			return fmt.Errorf("--params must be a JSON object: %w", err)
		}
	}

	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	var requestID any
	if id != "" {
		requestID = id
	}

	c, err := runtimeConnection()
	if err != nil {
		return err
	}

	result, err := c.SendCommand(cmd.Context(), args[0], params, requestID)
	if err != nil {
		return err
	}

	return printJSON(cmd, result)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}
