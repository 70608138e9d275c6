package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/operation"
)

// maxColumns limits how many fields a list table shows.
const maxColumns = 6

// Output writes invocation results in one of the configured formats.
// Values go to Out, error results to Err.
type Output struct {
	Format string
	Out    io.Writer
	Err    io.Writer

	docs int
}

// NewOutput returns an Output for format, which must be one of the
// config.Output* values.
func NewOutput(format string, out, errOut io.Writer) (*Output, error) {
	switch format {
	case "":
		format = config.OutputTable
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Output{Format: format, Out: out, Err: errOut}, nil
}

// Emit implements operation.Sink.
func (o *Output) Emit(_ context.Context, res operation.InvocationResult) error {
	if res.Err != nil {
		o.writeError(res)
		return nil
	}

	v, err := normalize(res.Value)
	if err != nil {
		return fmt.Errorf("failed to encode %s result: %w", res.Operation.Command(), err)
	}

	switch o.Format {
	case config.OutputJSON:
		enc := json.NewEncoder(o.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case config.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		if o.docs > 0 {
			if _, err := io.WriteString(o.Out, "---\n"); err != nil {
				return err
			}
		}
		o.docs++
		_, err = o.Out.Write(data)
		return err

	default:
		return o.writeTable(v)
	}
}

func (o *Output) writeError(res operation.InvocationResult) {
	name := ""
	if res.Operation != nil {
		name = res.Operation.Command() + ": "
	}
	page := ""
	if res.Page > 0 {
		page = fmt.Sprintf(" (page %d)", res.Page)
	}
	fmt.Fprintf(o.Err, "%s %s%v%s\n", ErrorStyle.Render("Error:"), name, res.Err, page)
}

func (o *Output) writeTable(v any) error {
	switch val := v.(type) {
	case nil:
		return nil

	case []any:
		if len(val) == 0 {
			_, err := fmt.Fprintln(o.Out, MutedStyle.Render("No results."))
			return err
		}
		t := listTable(val)
		if err := t.Render(o.Out); err != nil {
			return err
		}
		PrintCount(o.Out, len(val), "item")
		return nil

	case map[string]any:
		if len(val) == 0 {
			return nil
		}
		return detailTable(val).Render(o.Out)

	default:
		_, err := fmt.Fprintln(o.Out, formatCell(val))
		return err
	}
}

// normalize turns an SDK value into plain maps, slices and scalars with the
// SDK field names as keys. Response metadata is dropped.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if m, ok := out.(map[string]any); ok {
		delete(m, "ResultMetadata")
	}
	return out, nil
}

// listTable renders a list of records, one row each. Records that are not
// objects are shown in a single Value column.
func listTable(items []any) *Table {
	var records []map[string]any
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			records = nil
			break
		}
		records = append(records, m)
	}

	if records == nil {
		t := &Table{Headers: []string{"Value"}}
		for _, it := range items {
			t.Rows = append(t.Rows, []string{formatCell(it)})
		}
		return t
	}

	cols := columns(records)
	t := &Table{Headers: cols}
	for _, r := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = formatCell(r[c])
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// columns picks the scalar fields present in records, identifiers first.
func columns(records []map[string]any) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for k, v := range r {
			if seen[k] {
				continue
			}
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.SliceStable(cols, func(i, j int) bool {
		ri, rj := columnRank(cols[i]), columnRank(cols[j])
		if ri != rj {
			return ri < rj
		}
		return cols[i] < cols[j]
	})
	if len(cols) > maxColumns {
		cols = cols[:maxColumns]
	}
	return cols
}

func columnRank(name string) int {
	switch {
	case strings.HasSuffix(name, "Id"), strings.HasSuffix(name, "ID"):
		return 0
	case strings.HasSuffix(name, "Name"):
		return 1
	case strings.HasSuffix(name, "Status"), strings.HasSuffix(name, "State"):
		return 2
	default:
		return 3
	}
}

// detailTable renders one record as field/value pairs.
func detailTable(m map[string]any) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"Field", "Value"}}
	for _, k := range keys {
		t.Rows = append(t.Rows, []string{k, formatCell(m[k])})
	}
	return t
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
