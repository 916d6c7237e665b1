package main

import (
	"github.com/spf13/cobra"
)

func newResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resources exposed by the runtime",
		Args:  cobra.NoArgs,
		RunE:  resourcesAction,
	}
}

func resourcesAction(cmd *cobra.Command, _ []string) error {
	c, err := runtimeConnection()
	if err != nil {
		return err
	}

	result, err := c.SendCommand(cmd.Context(), "resources/list", nil, nil)
	if err != nil {
		return err
	}

	return printJSON(cmd, result)
}
