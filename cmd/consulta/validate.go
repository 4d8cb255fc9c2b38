package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consulta-cnpj/pkg/cnpj"
)

var validateCmd = &cobra.Command{
	Use:   "validate [cnpj]",
	Short: "Validar un CNPJ sin consultar el registro",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cnpj.Validate(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "CNPJ:    %s\n", cnpj.FormatMasked(id))
		fmt.Fprintf(out, "Raiz:    %s\n", cnpj.Root(id))
		if cnpj.IsHeadquarters(id) {
			fmt.Fprintln(out, "Tipo:    Matriz")
			return nil
		}
		fmt.Fprintf(out, "Tipo:    Filial %s\n", cnpj.BranchSequence(id))
		fmt.Fprintf(out, "Matriz:  %s\n", cnpj.FormatMasked(cnpj.DeriveHeadquarters(id)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
