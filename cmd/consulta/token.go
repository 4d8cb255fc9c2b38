package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consulta-cnpj/pkg/jwt"
)

var (
	tokenSubject string
	tokenRole    string
	tokenExp     int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emitir un token JWT para GET /api/lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenSubject == "" {
			return errors.New("--subject es requerido")
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenSubject, tokenRole, cfg.JWT.Issuer, tokenExp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Identificador del consumidor")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "auditor", "Rol: admin | auditor")
	tokenCmd.Flags().IntVar(&tokenExp, "exp", 60*24, "Expiración en minutos")
}
