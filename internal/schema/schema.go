// Package schema maps operator export tables onto the canonical record shape.
package schema

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// DateFormat selects how a schema's date column is interpreted.
type DateFormat string

const (
	// MonthFirst parses free-form dates preferring M/D/Y for ambiguous values.
	MonthFirst DateFormat = "month_first"
	// DayFirst parses free-form dates preferring D/M/Y for ambiguous values.
	DayFirst DateFormat = "day_first"
	// EventHistory takes the first YYMMDD event of a pipe-separated history.
	EventHistory DateFormat = "event_history"
)

// DateRule names the source column carrying the status date and how to read it.
type DateRule struct {
	Column string     `yaml:"column" mapstructure:"column"`
	Format DateFormat `yaml:"format" mapstructure:"format"`
}

// Schema maps a source's raw columns to the canonical attributes.
// It is static configuration; the zero value is not usable.
type Schema struct {
	Name       string   `yaml:"name" mapstructure:"name"`
	LineID     string   `yaml:"line_id" mapstructure:"line_id"`
	EntityID   string   `yaml:"entity_id" mapstructure:"entity_id"`
	EntityName string   `yaml:"entity_name" mapstructure:"entity_name"`
	Status     string   `yaml:"status" mapstructure:"status"`
	Date       DateRule `yaml:"date" mapstructure:"date"`
}

// Active is the export of active lines.
var Active = Schema{
	Name:       "active",
	LineID:     "MSISDN",
	EntityID:   "CNPJ",
	EntityName: "RAZAO SOCIAL",
	Status:     "STATUS_SERVICO",
	Date:       DateRule{Column: "PARCEIRO", Format: MonthFirst},
}

// CancelSuspend is the export of canceled and suspended lines. Its status date
// is the activation date recovered from the service history.
var CancelSuspend = Schema{
	Name:       "cancel_suspend",
	LineID:     "NUM_TERM",
	EntityID:   "CPF/CNPJ",
	EntityName: "RAZAO_SOCIAL",
	Status:     "STATUS_SERVICO",
	Date:       DateRule{Column: "HISTORICO_SERVICO", Format: EventHistory},
}

// Canonical reads back files written in the canonical output layout.
var Canonical = Schema{
	Name:       "canonical",
	LineID:     "line_id",
	EntityID:   "entity_id",
	EntityName: "entity_name",
	Status:     "status",
	Date:       DateRule{Column: "status_date", Format: MonthFirst},
}

// Required lists the source columns the schema reads, in canonical order.
func (s Schema) Required() []string {
	return []string{s.LineID, s.EntityID, s.EntityName, s.Date.Column, s.Status}
}

// Validate checks that the schema itself is complete.
func (s Schema) Validate() error {
	if s.Name == "" {
		return eris.New("schema: name is required")
	}
	for _, col := range s.Required() {
		if strings.TrimSpace(col) == "" {
			return eris.Errorf("schema: %s: every canonical attribute needs a source column", s.Name)
		}
	}
	switch s.Date.Format {
	case MonthFirst, DayFirst, EventHistory:
	default:
		return eris.Errorf("schema: %s: unknown date format %q", s.Name, s.Date.Format)
	}
	return nil
}

// ErrSchemaMismatch is matched by every MismatchError.
var ErrSchemaMismatch = eris.New("schema mismatch")

// MismatchError reports required columns absent from a source table.
type MismatchError struct {
	Schema  string
	Source  string
	Missing []string
}

func (e *MismatchError) Error() string {
	src := e.Source
	if src == "" {
		src = "input"
	}
	return fmt.Sprintf("schema: %s (%s) is missing columns: %s", src, e.Schema, strings.Join(e.Missing, ", "))
}

// Is lets errors.Is match ErrSchemaMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
