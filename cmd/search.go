package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored screenings by skill or education",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("skill", "", "return screenings whose resume mentions this skill")
	searchCmd.Flags().String("education", "", "return screenings whose education lines contain this substring")
}

func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	filter := store.Filter{
		Skill:     strings.TrimSpace(cmd.Flag("skill").Value.String()),
		Education: strings.TrimSpace(cmd.Flag("education").Value.String()),
	}
	if filter.Skill == "" && filter.Education == "" {
		logger.Fatal("at least one of --skill or --education is required")
	}

	dsn := ""
	if config != nil && config.Store != nil {
		dsn = strings.TrimSpace(config.Store.DSN)
	}
	if dsn == "" {
		dsn = strings.TrimSpace(viper.GetString("store.dsn"))
	}
	if dsn == "" {
		logger.Fatal("store DSN is not configured (set store.dsn or DATABASE_URL)")
	}

	st, err := store.Open(ctx, dsn)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	records, err := st.Search(ctx, filter)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Fatal("searching screenings", zap.Error(err))
	}

	logger.Info("search finished", zap.Int("count", len(records)))

	pretty, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		logger.Fatal("encoding search results", zap.Error(err))
	}

	fmt.Println(string(pretty))
}
