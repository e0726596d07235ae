package cli

import (
	"fmt"
	"os"

	"github.com/curtisos/curtisos/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(load loader) *cobra.Command {
	var tables, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tables as JSON or CSV",
		Example: `  curtisos export --out backup.json
  curtisos export --tables leads --format csv --out leads.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Services.Export.Export(cmd.Context(), service.ExportRequest{
				Tables: service.ParseTables(tables),
				Format: format,
			})
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(res.Body)
				return err
			}
			if err := os.WriteFile(out, res.Body, 0o600); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(res.Body), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&tables, "tables", "", "Comma-separated tables (default all; csv needs exactly one)")
	cmd.Flags().StringVar(&format, "format", service.ExportJSON, "Output format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
