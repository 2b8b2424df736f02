package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "passdesk",
	Short: "Passdesk organization credential distribution service",
	Long:  "Passdesk is the backend for the internal credential-distribution app: admins manage shared organization mailbox and hosting credentials and grant them to user accounts; users fetch the credentials granted to them.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (defaults and PASSDESK_* env apply when unset)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
