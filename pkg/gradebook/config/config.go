// Package config loads gradebook settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/gradebook-go/pkg/gradebook"
)

// Config holds the full gradebook configuration.
type Config struct {
	Input            string       `yaml:"input" validate:"required"`
	Output           string       `yaml:"output" validate:"required"`
	SQLite           string       `yaml:"sqlite"`
	Pretty           bool         `yaml:"pretty"`
	IdentifierColumn string       `yaml:"identifier_column" validate:"required"`
	ClassColumn      string       `yaml:"class_column" validate:"required,nefield=IdentifierColumn"`
	TextColumns      []string     `yaml:"text_columns" validate:"dive,required"`
	Listen           string       `yaml:"listen" validate:"required,hostname_port|startswith=:"`
	Lookup           LookupConfig `yaml:"lookup"`
}

// LookupConfig controls how a record is presented by the lookup command and server.
type LookupConfig struct {
	// HeaderColumns are shown above the grade table, in this order.
	HeaderColumns []string `yaml:"header_columns"`
	// InfoColumns are left out of the grade table.
	InfoColumns []string `yaml:"info_columns"`
	// Priority orders grade columns; matched on the upper-cased name without spaces.
	Priority []string `yaml:"priority"`
	// Labels maps a column name, or its normalized key as in Priority, to a display label.
	Labels map[string]string `yaml:"labels"`
}

// DefaultConfig returns the settings of the school grade book.
func DefaultConfig() *Config {
	return &Config{
		Input:            "data/so-diem.xlsx",
		Output:           "data/grades.json",
		Pretty:           true,
		IdentifierColumn: gradebook.DefaultIdentifierColumn,
		ClassColumn:      gradebook.DefaultClassColumn,
		TextColumns:      []string{gradebook.DefaultStudentIDColumn},
		Listen:           ":8080",
		Lookup: LookupConfig{
			HeaderColumns: []string{"Họ và tên", "Tên lớp", "MSHS", "Mã định danh", "Email", "Ngày sinh"},
			InfoColumns:   []string{"STT", "Tên lớp", "Mã định danh", "MSHS", "Họ và tên", "Email", "Ngày sinh"},
			Priority:      []string{"TX1", "TX2", "TX3", "GKTN", "GKTH", "CKTN", "CKTH"},
			Labels: map[string]string{
				"Tên lớp": "Lớp",
				"TX1":     "Thường xuyên 1",
				"TX2":     "Thường xuyên 2",
				"TX3":     "Thường xuyên 3",
				"GKTN":    "Giữa Kỳ Trắc Nghiệm",
				"GKTH":    "Giữa Kỳ Thực Hành",
				"CKTN":    "Cuối Kỳ Trắc Nghiệm",
				"CKTH":    "Cuối Kỳ Thực Hành",
			},
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", yamlName(fe.StructNamespace()), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Options returns the conversion options described by the config.
func (c *Config) Options() gradebook.Options {
	opts := gradebook.DefaultOptions()
	opts.IdentifierColumn = c.IdentifierColumn
	opts.ClassColumn = c.ClassColumn
	opts.TextColumns = append([]string(nil), c.TextColumns...)
	return opts
}

// yamlName maps "Config.Lookup.Priority" to "lookup.priority" style keys.
func yamlName(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
