package methodtype

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"shipzone-backend/internal/domain"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Definition is a declarative method type. Built-in types and types loaded from
// a catalog file share this representation.
type Definition struct {
	MethodID          string
	MethodTitle       string
	MethodDescription string
	Fields            []domain.FormField
}

func (d *Definition) ID() string                     { return d.MethodID }
func (d *Definition) Title() string                  { return d.MethodTitle }
func (d *Definition) Description() string            { return d.MethodDescription }
func (d *Definition) FormFields() []domain.FormField { return d.Fields }

func (d *Definition) InstanceOptionKey(instanceID int64) string {
	return fmt.Sprintf("shipping_%s_%d_settings", d.MethodID, instanceID)
}

func (d *Definition) validate() error {
	if d.MethodID == "" {
		return fmt.Errorf("method type id is required")
	}
	if strings.ContainsAny(d.MethodID, " /") {
		return fmt.Errorf("method type id %q must not contain spaces or slashes", d.MethodID)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Key == "" {
			return fmt.Errorf("%s: field key is required", d.MethodID)
		}
		if seen[f.Key] {
			return fmt.Errorf("%s: duplicate field %q", d.MethodID, f.Key)
		}
		seen[f.Key] = true
		switch f.Type {
		case domain.FieldText, domain.FieldTextarea, domain.FieldPrice, domain.FieldDecimal, domain.FieldNumber, domain.FieldCheckbox:
		case domain.FieldSelect:
			if len(f.Options) == 0 {
				return fmt.Errorf("%s: select field %q has no options", d.MethodID, f.Key)
			}
		default:
			return fmt.Errorf("%s: field %q has unknown type %q", d.MethodID, f.Key, f.Type)
		}
	}
	return nil
}

// Registry is an ordered, concurrency-safe set of method types.
type Registry struct {
	mu    sync.RWMutex
	order []string
	types map[string]domain.MethodType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]domain.MethodType)}
}

// NewDefaultRegistry returns a registry holding the built-in types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range Builtin() {
		// Built-ins are static and valid.
		_ = r.Register(d)
	}
	return r
}

// Register adds or replaces a type. Replacing keeps the original position.
func (r *Registry) Register(d *Definition) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[d.MethodID]; !exists {
		r.order = append(r.order, d.MethodID)
	}
	r.types[d.MethodID] = d
	return nil
}

func (r *Registry) Get(id string) (domain.MethodType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mt, ok := r.types[id]
	return mt, ok
}

func (r *Registry) List() []domain.MethodType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MethodType, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.types[id])
	}
	return out
}

// catalogType is the file format of a method type. Fields are keyed by "key"
// in both YAML and JSON catalogs.
type catalogType struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Fields      []catalogField `json:"fields" yaml:"fields"`
}

type catalogField struct {
	Key         string               `json:"key" yaml:"key"`
	Title       string               `json:"title" yaml:"title"`
	Type        domain.FieldType     `json:"type" yaml:"type"`
	Description string               `json:"description" yaml:"description"`
	Default     string               `json:"default" yaml:"default"`
	Placeholder string               `json:"placeholder" yaml:"placeholder"`
	Options     []domain.FieldOption `json:"options" yaml:"options"`
}

func (c catalogType) definition() *Definition {
	d := &Definition{
		MethodID:          c.ID,
		MethodTitle:       c.Title,
		MethodDescription: c.Description,
		Fields:            make([]domain.FormField, len(c.Fields)),
	}
	for i, f := range c.Fields {
		d.Fields[i] = domain.FormField{
			Key:         f.Key,
			Title:       f.Title,
			Type:        f.Type,
			Description: f.Description,
			Default:     f.Default,
			Placeholder: f.Placeholder,
			Options:     f.Options,
		}
	}
	return d
}

// LoadFile reads a catalog of definitions from a YAML or JSON file. The file
// holds either a list of definitions or an object with a "types" list.
func LoadFile(path string) ([]*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog struct {
		Types []catalogType `json:"types" yaml:"types"`
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(b, &catalog.Types); err != nil {
			if err2 := json.Unmarshal(b, &catalog); err2 != nil {
				return nil, fmt.Errorf("json parse: %w", err)
			}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &catalog.Types); err != nil {
			if err2 := yaml.Unmarshal(b, &catalog); err2 != nil {
				return nil, fmt.Errorf("yaml parse: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q", ext)
	}

	defs := make([]*Definition, len(catalog.Types))
	for i, c := range catalog.Types {
		defs[i] = c.definition()
	}
	return defs, nil
}

// LoadInto registers every definition in the file at path.
func (r *Registry) LoadInto(path string) (int, error) {
	defs, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, d := range defs {
		_ = r.Register(d)
	}
	return len(defs), nil
}
