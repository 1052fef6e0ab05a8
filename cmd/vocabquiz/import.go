package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vocabquiz/internal/config"
	"vocabquiz/internal/repository/postgres"
	"vocabquiz/internal/service"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk import words from an .xlsx or .csv file into an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		email = strings.ToLower(strings.TrimSpace(email))
		path, _ := cmd.Flags().GetString("file")

		logger := newLogger()
		defer logger.Sync()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := connectDatabase(cfg.DSN(), 1, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()

		user, err := postgres.NewUserRepo(db).GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no account registered with %s", email)
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()

		wordService := service.NewWordService(postgres.NewWordRepo(db), logger)
		count, err := wordService.ImportWords(ctx, user.ID, filepath.Base(path), file)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}

		cmd.Printf("Imported %d words for %s\n", count, user.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("email", "", "account email")
	importCmd.Flags().StringP("file", "f", "", "spreadsheet path (.xlsx, .xlsm or .csv)")
	_ = importCmd.MarkFlagRequired("email")
	_ = importCmd.MarkFlagRequired("file")
}
