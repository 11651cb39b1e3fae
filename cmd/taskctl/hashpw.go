package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashpwCmd = &cobra.Command{
	Use:   "hashpw <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE:  runHashpw,
}

func init() {
	hashpwCmd.Flags().Int("cost", 12, "bcrypt cost")
	rootCmd.AddCommand(hashpwCmd)
}

func runHashpw(cmd *cobra.Command, args []string) error {
	cost, _ := cmd.Flags().GetInt("cost")
	h, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(h))
	return nil
}
