package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"github.com/plumber-cd/ez-pipeline/internal/export"
	"github.com/plumber-cd/ez-pipeline/internal/store"
)

func newDefaultsCmd(flags *rootFlags) *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the options a reset produces",
		Long: `Apply the profile defaults to an in-memory copy of the form and print
every option with its value and whether it is enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flags)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			profile, _, err := loadProfile(flags.dir)
			if err != nil {
				return err
			}
			snapshot, rules, err := applyHeadless(profile, logger)
			if err != nil {
				return err
			}

			if markdown {
				md, err := export.RenderMarkdown(snapshot, rules)
				if err != nil {
					return fmt.Errorf("render markdown: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			table, err := renderTable(snapshot)
			if err != nil {
				return fmt.Errorf("render table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print Markdown instead of a table")
	return cmd
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the factory profile to --dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := store.ProfilePath(flags.dir)
			exists, err := store.Exists(flags.dir)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := store.Save(flags.dir, domain.FactoryProfile()); err != nil {
				return fmt.Errorf("save profile: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing profile")
	return cmd
}

// applyHeadless runs a reset against in-memory controls.
func applyHeadless(profile domain.Profile, logger *zap.Logger) (domain.Snapshot, []string, error) {
	bindings := domain.NewMemoryBindings(profile.Choices)
	controller, err := domain.NewController(profile.Defaults, bindings, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	result, err := controller.Reset()
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := controller.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	return snapshot, result.Rules, nil
}

func renderTable(snapshot domain.Snapshot) (string, error) {
	data := pterm.TableData{{"Field", "Option", "Value", "State"}}
	for _, entry := range snapshot {
		state := "enabled"
		if !entry.Enabled {
			state = "disabled"
		}
		label := entry.Label
		if entry.Greyed {
			label += " (greyed)"
		}
		data = append(data, []string{string(entry.Field), label, entry.Value, state})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
