package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gradebook-go/internal/logger"
	"github.com/ukaji3/gradebook-go/pkg/gradebook"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/output"
)

func newConvertCmd() *cobra.Command {
	var (
		outputPath  string
		sqlitePath  string
		pretty      bool
		idColumn    string
		classColumn string
		textColumns []string
	)

	cmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert a grade workbook to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			if flags.Changed("output") {
				cfg.Output = outputPath
			}
			if flags.Changed("sqlite") {
				cfg.SQLite = sqlitePath
			}
			if flags.Changed("pretty") {
				cfg.Pretty = pretty
			}
			if flags.Changed("id-column") {
				cfg.IdentifierColumn = idColumn
			}
			if flags.Changed("class-column") {
				cfg.ClassColumn = classColumn
			}
			if flags.Changed("text-column") {
				cfg.TextColumns = textColumns
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.Named("convert")
			opts := cfg.Options()
			opts.Logger = log

			payload, report, err := gradebook.Convert(cfg.Input, opts)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}

			if err := output.WriteJSON(cfg.Output, payload, cfg.Pretty); err != nil {
				return gradebook.NewConvertError("", "write", err)
			}
			if cfg.SQLite != "" {
				if err := output.WriteSQLite(cfg.SQLite, payload, cfg.ClassColumn); err != nil {
					return gradebook.NewConvertError("", "write", err)
				}
				log.Info().Str("file", cfg.SQLite).Msg("sqlite export written")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s with %d records.\n", cfg.Output, report.Records)
			if len(report.Collisions) > 0 {
				fmt.Fprintf(out, "Warning: Duplicate '%s' found (%d). Sample: %s\n",
					cfg.IdentifierColumn, len(report.Collisions), strings.Join(report.CollisionSample(), ", "))
				log.Warn().Int("collisions", len(report.Collisions)).
					Strs("sample", report.CollisionSample()).Msg("duplicate identifiers overwritten")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON path (default: data/grades.json)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also export records to this SQLite database")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	cmd.Flags().StringVar(&idColumn, "id-column", gradebook.DefaultIdentifierColumn, "Identifier column name")
	cmd.Flags().StringVar(&classColumn, "class-column", gradebook.DefaultClassColumn, "Class-name column name")
	cmd.Flags().StringSliceVar(&textColumns, "text-column", []string{gradebook.DefaultStudentIDColumn}, "Columns kept as text (repeatable)")
	return cmd
}
