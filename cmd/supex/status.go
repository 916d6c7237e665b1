package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the runtime is connected and responding",
		Args:  cobra.NoArgs,
		RunE:  statusAction,
	}
}

func statusAction(cmd *cobra.Command, _ []string) error {
	c, err := runtimeConnection()
	if err != nil {
		return err
	}

	result, err := c.SendCommand(cmd.Context(), "ping", nil, nil)
	if err != nil {
		return err
	}

	version, _ := result["version"].(string)
	if version == "" {
		version = "unknown"
	}

	color.Green("Connected")
	fmt.Fprintf(cmd.OutOrStdout(), "Runtime version: %s\n", version)

	return nil
}
