// Command badgestore is the admin CLI for the badge database: schema setup,
// awarding badges, and listing definitions.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openmerit/badgestore/internal/config"
	"github.com/openmerit/badgestore/internal/notify"
	"github.com/openmerit/badgestore/internal/repository"
	"github.com/openmerit/badgestore/pkg/logger"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "badgestore",
		Short:         "Administer the badge database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	root.AddCommand(initDBCmd(), awardCmd(), badgesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore loads configuration and opens the store with the configured
// sink and logger.
func openStore() (*repository.Store, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	opts := []repository.Option{repository.WithLogger(log)}
	if cfg.Notifier.WebhookURL != "" {
		opts = append(opts, repository.WithSink(
			notify.NewWebhook(cfg.Notifier.WebhookURL, cfg.Notifier.Enabled, log),
		))
	}

	store, err := repository.Open(cfg.Database.URI, opts...)
	if err != nil {
		return nil, nil, err
	}
	return store, log, nil
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, log, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(); err != nil {
				return err
			}
			log.Info().Msg("Schema is up to date")
			return nil
		},
	}
}

func awardCmd() *cobra.Command {
	var issuedFor string
	cmd := &cobra.Command{
		Use:   "award <badge-id> <email>",
		Short: "Award a badge to a person",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			badgeID, email := args[0], args[1]
			id, created, err := store.AddAssertion(badgeID, email, time.Time{}, issuedFor)
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("badge %q or person %q is not registered", badgeID, email)
			}
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().StringVar(&issuedFor, "issued-for", "", "evidence reference for the award")
	return cmd
}

func badgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Badge definition commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all badge definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			badges, err := store.ListBadges()
			if err != nil {
				return err
			}
			for _, b := range badges {
				fmt.Printf("%s\t%s\t[%s]\n", b.ID, b.Name, b.Tags)
			}
			return nil
		},
	})
	return cmd
}
