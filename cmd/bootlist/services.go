package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) servicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"svc"},
		Short:   "List, enable or disable systemd unit files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List service unit files and their enabled state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.app.GetSystemServices(cmd.Context())
			if err != nil {
				return err
			}
			if f := c.format(); f != formatTable {
				return writeStructured(cmd.OutOrStdout(), f, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), servicesTable(list))
			return nil
		},
	})

	for _, action := range []struct {
		use    string
		enable bool
	}{{"enable", true}, {"disable", false}} {
		cmd.AddCommand(&cobra.Command{
			Use:   action.use + " <unit>",
			Short: capitalize(action.use) + " a service unit (may prompt for authorization)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.app.ToggleService(cmd.Context(), args[0], action.enable); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%sd %s\n", capitalize(action.use), args[0])
				return nil
			},
		})
	}
	return cmd
}
