package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/errfix/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// rowMetadata is a loosely typed table row. Aliases let tables written as
// from/event/to read the same as start/action/end.
type rowMetadata struct {
	Start  string `mapstructure:"start"`
	From   string `mapstructure:"from"`
	Action string `mapstructure:"action"`
	Event  string `mapstructure:"event"`
	End    string `mapstructure:"end"`
	To     string `mapstructure:"to"`
}

func (r rowMetadata) transition() domain.Transition {
	return domain.NewTransition(
		strings.TrimSpace(coalesce(r.Start, r.From)),
		strings.TrimSpace(coalesce(r.Action, r.Event)),
		strings.TrimSpace(coalesce(r.End, r.To)),
	)
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// document is either a bare list of rows or a map holding them under "transitions".
type document struct {
	Transitions []map[string]any `yaml:"transitions" json:"transitions"`
}

// ReadYAML reads rows from a YAML list, or from the "transitions" key of a YAML map.
func ReadYAML(r io.Reader) ([]domain.Transition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read state table: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse state table yaml: %w", err)
	}

	var rows []map[string]any
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		err = node.Content[0].Decode(&rows)
	} else if len(node.Content) > 0 {
		var doc document
		err = node.Content[0].Decode(&doc)
		rows = doc.Transitions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode state table yaml: %w", err)
	}
	return decodeRows(rows)
}

// ReadJSON reads rows from a JSON array, or from the "transitions" key of a JSON object.
func ReadJSON(r io.Reader) ([]domain.Transition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read state table: %w", err)
	}

	var rows []map[string]any
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &rows)
	} else if trimmed != "" {
		var doc document
		err = json.Unmarshal(data, &doc)
		rows = doc.Transitions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse state table json: %w", err)
	}
	return decodeRows(rows)
}

func decodeRows(rows []map[string]any) ([]domain.Transition, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("state table is empty: %w", domain.ErrEmptyInput)
	}

	out := make([]domain.Transition, 0, len(rows))
	var errs []error
	for i, raw := range rows {
		var row rowMetadata
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &row,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		t := row.transition()
		if t.Start == "" || t.Action == "" || t.End == "" {
			errs = append(errs, fmt.Errorf("row %d: start, action and end are required", i+1))
			continue
		}
		out = append(out, t)
	}
	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	return out, nil
}
