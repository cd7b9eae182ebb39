package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/snapreview/internal/core"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the clients offer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := core.DefaultCatalog()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEXTENSIONS\tDEFAULT")
		for _, lang := range catalog.All() {
			def := ""
			if lang.ID == catalog.Default().ID {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", lang.ID, lang.Name, strings.Join(lang.Extensions, " "), def)
		}
		return w.Flush()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the review gateway is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}
		text, err := c.Health(cmd.Context())
		if err != nil {
			errorColor.Fprintf(cmd.ErrOrStderr(), "%s is not healthy\n", cfg.Client.BackendURL)
			return err
		}
		successColor.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cfg.Client.BackendURL, text)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(healthCmd)
}
