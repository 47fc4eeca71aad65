package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/Guliveer/bootlist/internal/models"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	disabledStyle = cellStyle.Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// renderTable draws rows with dimmed styling for rows marked inactive.
func renderTable(headers []string, rows [][]string, inactive func(row int) bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case inactive != nil && inactive(row):
				return disabledStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func entriesTable(entries []models.Entry, wide bool) string {
	headers := []string{"NAME", "ENABLED", "RUNNING", "LOCATION", "PUBLISHER", "SIZE", "COMMAND"}
	if wide {
		headers = append(headers, "PATH", "FULL COMMAND")
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			e.Name,
			yesNo(e.Enabled),
			yesNo(e.Running),
			e.Location,
			e.Publisher,
			e.Size,
			e.Command,
		}
		if wide {
			row = append(row, e.Path.String(), e.FullCommand)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, func(row int) bool {
		return !entries[row].Enabled
	})
}

func servicesTable(list []models.Service) string {
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{s.Name, s.State})
	}
	return renderTable([]string{"UNIT", "STATE"}, rows, func(row int) bool {
		return list[row].State != models.ServiceEnabled
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// kvTable renders key/value pairs for diagnostics.
func kvTable(pairs [][2]string) string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	return renderTable([]string{"KEY", "VALUE"}, rows, nil)
}

func boolString(b bool) string { return strconv.FormatBool(b) }
