package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consulta-cnpj/internal/application/dto"
	"github.com/jhoicas/consulta-cnpj/internal/bootstrap"
	"github.com/jhoicas/consulta-cnpj/pkg/cnpj"
)

var (
	historyLimit  int
	historyOffset int
)

var historyCmd = &cobra.Command{
	Use:   "history [cnpj]",
	Short: "Listar el histórico de consultas",
	Long:  `Lista las últimas consultas guardadas. Con un CNPJ filtra por su raíz (matriz y filiales).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		deps, err := bootstrap.Build(ctx, cfg, log, bootstrap.Options{SkipRegistrations: true})
		if err != nil {
			return err
		}
		defer deps.Close()
		if deps.History == nil {
			return errors.New("histórico no disponible: configure DATABASE_URL o DB_HOST")
		}

		page := dto.PageRequest{Limit: historyLimit, Offset: historyOffset}
		page.Normalize()

		var out *dto.LookupLogListResponse
		if len(args) == 1 {
			out, err = deps.History.ListByCompany(ctx, args[0], page.Limit, page.Offset)
		} else {
			out, err = deps.History.List(ctx, page.Limit, page.Offset)
		}
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FECHA\tCNPJ\tRESULTADO\tRÉGIMEN\tSITUAÇÃO")
		for _, it := range out.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				it.CreatedAt.Local().Format("2006-01-02 15:04"),
				cnpj.FormatMasked(it.CNPJ), it.Outcome, it.Regime, it.Status)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", dto.DefaultPageLimit, "Cantidad máxima de filas")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Filas a saltar (paginación)")
}
