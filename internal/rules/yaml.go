package rules

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed table.schema.json
var tableSchemaJSON string

const tableSchemaURL = "https://vesszo.local/schemas/rule-table.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func tableSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(tableSchemaJSON), &doc); err != nil {
			schemaErr = fmt.Errorf("failed to parse rule table schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(tableSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("failed to add rule table schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(tableSchemaURL)
	})
	return schema, schemaErr
}

type yamlRule struct {
	Word       string   `yaml:"word"`
	Confidence float64  `yaml:"confidence"`
	Followers  []string `yaml:"followers,omitempty"`
	Message    string   `yaml:"message,omitempty"`
}

type yamlTable struct {
	Kind          string     `yaml:"kind"`
	Name          string     `yaml:"name,omitempty"`
	CaseSensitive *bool      `yaml:"case_sensitive,omitempty"`
	Template      string     `yaml:"template,omitempty"`
	Rules         []yamlRule `yaml:"rules"`
}

// ParseYAML decodes a YAML rule document after checking it against the
// embedded JSON schema. A document that declares a kind must match kind.
func ParseYAML(name string, data []byte, kind Kind, opts Options) (*Table, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := validateSchema(name, raw); err != nil {
		return nil, err
	}

	var doc yamlTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if doc.Kind != "" {
		declared, err := ParseKind(doc.Kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if declared != kind {
			return nil, fmt.Errorf("%s: table declares kind %s, loaded as %s", name, declared, kind)
		}
	}

	out := make([]Rule, 0, len(doc.Rules))
	for _, r := range doc.Rules {
		out = append(out, Rule{
			Word:       strings.TrimSpace(r.Word),
			Followers:  r.Followers,
			Confidence: r.Confidence,
			Message:    r.Message,
		})
	}

	caseSensitive := kind.DefaultCaseSensitive()
	switch {
	case opts.CaseSensitive != nil:
		caseSensitive = *opts.CaseSensitive
	case doc.CaseSensitive != nil:
		caseSensitive = *doc.CaseSensitive
	}
	tableName := name
	if doc.Name != "" {
		tableName = doc.Name
	}
	t := NewTable(kind, tableName, caseSensitive, out)
	t.Template = doc.Template
	if opts.Template != "" {
		t.Template = opts.Template
	}
	return t, nil
}

// MarshalYAML writes t as a YAML rule document that ParseYAML accepts.
func MarshalYAML(t *Table) ([]byte, error) {
	caseSensitive := t.CaseSensitive
	doc := yamlTable{
		Kind:          t.Kind.String(),
		Name:          t.Name,
		CaseSensitive: &caseSensitive,
		Template:      t.Template,
		Rules:         make([]yamlRule, 0, len(t.Rules)),
	}
	for _, r := range t.Rules {
		doc.Rules = append(doc.Rules, yamlRule{
			Word:       r.Word,
			Confidence: r.Confidence,
			Followers:  r.Followers,
			Message:    r.Message,
		})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	return out, nil
}

// DeclaredKind returns the kind a YAML document names, if any.
func DeclaredKind(data []byte) (Kind, bool) {
	var doc struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil || doc.Kind == "" {
		return 0, false
	}
	k, err := ParseKind(doc.Kind)
	return k, err == nil
}

func validateSchema(name string, raw any) error {
	sch, err := tableSchema()
	if err != nil {
		return err
	}
	// нормализуем через JSON: схема понимает только json-типы
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: failed to convert YAML to JSON: %w", name, err)
	}
	var inst any
	if err := json.Unmarshal(buf, &inst); err != nil {
		return fmt.Errorf("%s: failed to unmarshal JSON for validation: %w", name, err)
	}
	if err := sch.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s: /%s: %w", name, strings.Join(verr.InstanceLocation, "/"), err)
		}
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	return nil
}
