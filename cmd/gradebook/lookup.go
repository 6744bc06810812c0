package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/lookup"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/output"
)

func newLookupCmd() *cobra.Command {
	var (
		inputPath string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "lookup [identifier]",
		Short: "Show the record of one student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return errors.New("vui lòng nhập mã định danh")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input") {
				cfg.Output = inputPath
			}

			payload, err := output.ReadJSON(cfg.Output)
			if err != nil {
				return fmt.Errorf("không tải được dữ liệu: %w", err)
			}
			rec, ok := payload.Records.Get(id)
			if !ok {
				return fmt.Errorf("không tìm thấy mã định danh này: %s", id)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(rec)
			}
			fmt.Fprintf(out, "Cập nhật lần cuối: %s\n\n", payload.LastUpdated)
			return lookup.Render(out, lookup.Present(rec, cfg.Lookup))
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Grades JSON path (default: data/grades.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw record as JSON")
	return cmd
}
