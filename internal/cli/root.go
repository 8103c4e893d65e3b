package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imgaudit",
	Short: "A website image audit crawler written in Go",
	Long:  `imgaudit - crawls a site breadth-first and reports image accessibility and payload statistics per page and per domain`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(exportCmd)
}
