package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consulta-cnpj/internal/bootstrap"
)

var (
	lookupJSON bool
	lookupPDF  string
	lookupSave bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [cnpj]",
	Short: "Consultar un CNPJ",
	Long: `Consulta el CNPJ (con o sin máscara) e imprime el reporte en texto.
Con --json imprime el reporte en JSON; con --pdf escribe además el PDF en el archivo indicado.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := bootstrap.Build(ctx, cfg, log, bootstrap.Options{SkipHistory: !lookupSave})
		if err != nil {
			return err
		}
		defer deps.Close()

		if lookupPDF != "" {
			b, _, err := deps.PDF.DownloadReportPDF(ctx, args[0])
			if err != nil {
				return describe(err)
			}
			if err := os.WriteFile(lookupPDF, b, 0o644); err != nil {
				return fmt.Errorf("escribir PDF: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "PDF guardado en %s\n", lookupPDF)
			return nil
		}

		report, err := deps.Lookup.Execute(ctx, args[0])
		if err != nil {
			return describe(err)
		}
		if lookupJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		writeReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Salida en JSON")
	lookupCmd.Flags().StringVar(&lookupPDF, "pdf", "", "Escribir el reporte PDF en este archivo")
	lookupCmd.Flags().BoolVar(&lookupSave, "save", false, "Guardar la consulta en el histórico (requiere DATABASE_URL)")
}
