package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapledash/character-api/internal/core/ports"
)

var lookupFlags struct {
	date    string
	section string
	module  string
	ocid    string
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <characterName>",
	Short: "Fetch one character and print the composite JSON",
	Long: `Run a single composite lookup against the upstream API and print the
result to stdout. The response cache is bypassed.

Examples:
  mapledash lookup Alice
  mapledash lookup Alice --section skills --module hexamatrix
  mapledash lookup Alice --date 2025-01-01 --section equipment`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupFlags.date, "date", "", "snapshot date (YYYY-MM-DD)")
	lookupCmd.Flags().StringVar(&lookupFlags.section, "section", "", "restrict to one section")
	lookupCmd.Flags().StringVar(&lookupFlags.module, "module", "", "skill module (requires --section skills)")
	lookupCmd.Flags().StringVar(&lookupFlags.ocid, "ocid", "", "known opaque id, skips name resolution")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	c, err := wire(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer c.close()

	resp, err := c.service.GetCompositeResponse(cmd.Context(), ports.CompositeQuery{
		CharacterName: args[0],
		Date:          lookupFlags.date,
		Section:       lookupFlags.section,
		OpaqueID:      lookupFlags.ocid,
		Module:        lookupFlags.module,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
