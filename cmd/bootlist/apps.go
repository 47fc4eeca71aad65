package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List startup entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := c.app.GetApps(cmd.Context())
			if f := c.format(); f != formatTable {
				return writeStructured(cmd.OutOrStdout(), f, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No startup entries found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), entriesTable(entries, wide))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&wide, "wide", "w", false, "Also show the locator and full command line")
	return cmd
}

func (c *cli) toggleCmd(use string, enable bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <path>",
		Short: fmt.Sprintf("%s a startup entry by its path or registry locator", capitalize(use)),
		Example: fmt.Sprintf(`  bootlist %[1]s ~/.config/autostart/syncthing.desktop
  bootlist %[1]s "REGISTRY::HKCU::Discord"`, use),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.ToggleApp(args[0], enable); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%sd %s\n", capitalize(use), args[0])
			return nil
		},
	}
}

func (c *cli) createCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "create <command>",
		Short: "Create a new enabled startup entry",
		Long: `Create a new enabled startup entry that runs <command> at login.
When --name is omitted it is derived from the command's file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.CreateApp(name, args[0], description); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created startup entry for %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name of the entry")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Optional description")
	return cmd
}

var errNotConfirmed = errors.New("refusing to delete without confirmation (use --yes)")

func (c *cli) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <path>",
		Aliases: []string{"rm"},
		Short:   "Delete a startup entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			if !yes {
				ok, err := confirmDelete(target, stdinIsTerminal())
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := c.app.DeleteApp(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirmDelete asks interactively; without a terminal it refuses.
func confirmDelete(target string, interactive bool) (bool, error) {
	if !interactive {
		return false, errNotConfirmed
	}
	var ok bool
	err := huh.NewConfirm().
		Title("Delete startup entry?").
		Description(target).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
