package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/consulta-cnpj/pkg/config"
	"github.com/jhoicas/consulta-cnpj/pkg/logger"
)

var (
	verbose bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "consulta",
	Short: "Consulta de CNPJ con resolución de régimen tributario",
	Long: `consulta valida un CNPJ, lo consulta en el registro público y resuelve
el régimen tributario. En filiales el régimen se toma de la matriz.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		cfg = c
		log = logger.New(logger.Config{Env: "development", Level: level, Out: os.Stderr})
		return nil
	},
}

// Execute ejecuta el comando raíz. Lo invoca main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detallado en stderr")
}
