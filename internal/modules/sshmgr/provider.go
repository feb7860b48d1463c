// SPDX-License-Identifier: MPL-2.0

// Package sshmgr provides the ssh_manager module: a saved SSH target book
// plus commands to list, add, remove, and connect to targets.
package sshmgr

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"text/tabwriter"

	"maxcli/internal/registry"

	"github.com/spf13/cobra"
)

// runSSH is swapped out in tests.
var runSSH = func(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// NewProvider builds the ssh_manager command provider.
func NewProvider(d registry.ModuleDescriptor) registry.Provider {
	return registry.ProviderFunc(func(b registry.TreeBuilder) {
		b.Add(newSSHCmd(d))
	})
}

func newSSHCmd(d registry.ModuleDescriptor) *cobra.Command {
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: d.Description,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `max ssh` lists targets, matching the most common use.
			return runList(cmd)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved SSH targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}

	var (
		port int
		key  string
	)
	addCmd := &cobra.Command{
		Use:   "add <name> <user> <host>",
		Short: "Save a new SSH target",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := OpenTargetBook()
			if err != nil {
				return err
			}
			target := Target{User: args[1], Host: args[2], Port: port, Key: key}
			if err := book.Add(args[0], target); err != nil {
				return err
			}
			if err := book.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added SSH target %q (%s@%s:%d)\n",
				args[0], target.User, target.Host, target.Port)
			return nil
		},
	}
	addCmd.Flags().IntVarP(&port, "port", "p", 22, "SSH port")
	addCmd.Flags().StringVarP(&key, "key", "k", "", "path to private key")

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a saved SSH target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := OpenTargetBook()
			if err != nil {
				return err
			}
			if err := book.Remove(args[0]); err != nil {
				return err
			}
			if err := book.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed SSH target %q\n", args[0])
			return nil
		},
	}

	connectCmd := &cobra.Command{
		Use:   "connect <name>",
		Short: "Open an SSH session to a saved target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := OpenTargetBook()
			if err != nil {
				return err
			}
			target, err := book.Get(args[0])
			if err != nil {
				return err
			}

			sshArgs := []string{"-p", strconv.Itoa(target.Port)}
			if target.Key != "" {
				sshArgs = append(sshArgs, "-i", target.Key)
			}
			sshArgs = append(sshArgs, fmt.Sprintf("%s@%s", target.User, target.Host))

			ssh := exec.CommandContext(cmd.Context(), "ssh", sshArgs...)
			return runSSH(ssh)
		},
	}

	sshCmd.AddCommand(listCmd, addCmd, removeCmd, connectCmd)
	return sshCmd
}

func runList(cmd *cobra.Command) error {
	book, err := OpenTargetBook()
	if err != nil {
		return err
	}
	if book.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No SSH targets configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUSER\tHOST\tPORT\tKEY")
	for _, name := range book.Names() {
		t, _ := book.Get(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", name, t.User, t.Host, t.Port, t.Key)
	}
	return w.Flush()
}
