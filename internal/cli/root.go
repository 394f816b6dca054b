package cli

import (
	"fmt"
	"os"

	"Demonstra/config"
	"Demonstra/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	cfg        *config.Config
}

// NewRootCommand monta a CLI administrativa com todos os subcomandos.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dre",
		Short: "Administração da DRE pela linha de comando",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if opts.configFile != "" {
				if err := os.Setenv("CONFIG_FILE", opts.configFile); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("carregar configuração: %w", err)
			}
			logger.Init(cfg)
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "arquivo config.yaml")

	rootCmd.AddCommand(
		newMigrateCommand(opts),
		newReportCommand(opts),
		newExportCommand(opts),
		newTreeCommand(opts),
		newImportCommand(opts),
		newCopyStructureCommand(opts),
		newCreateUserCommand(opts),
	)

	return rootCmd
}
