package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FieldType is the declared input type of a settings form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldPrice    FieldType = "price"
	FieldDecimal  FieldType = "decimal"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
	FieldSelect   FieldType = "select"
)

// ValueKind tags the variant held by a SettingValue.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindSelect
)

// Kind maps a field type onto the value variant it stores.
func (t FieldType) Kind() ValueKind {
	switch t {
	case FieldCheckbox:
		return KindBool
	case FieldSelect:
		return KindSelect
	default:
		return KindString
	}
}

type FieldOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type FormField struct {
	Key         string        `json:"id"`
	Title       string        `json:"title"`
	Type        FieldType     `json:"type"`
	Description string        `json:"description,omitempty"`
	Default     string        `json:"default,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}

// DefaultValue returns Default converted to the field's value variant.
func (f FormField) DefaultValue() SettingValue {
	switch f.Type.Kind() {
	case KindBool:
		return BoolValue(f.Default == "yes")
	case KindSelect:
		return SelectValue(f.Default)
	default:
		return StringValue(f.Default)
	}
}

func (f FormField) hasOption(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// SettingValue is a tagged union over the value kinds a form field can hold.
type SettingValue struct {
	kind ValueKind
	str  string
	b    bool
}

func StringValue(s string) SettingValue { return SettingValue{kind: KindString, str: s} }
func SelectValue(s string) SettingValue { return SettingValue{kind: KindSelect, str: s} }
func BoolValue(b bool) SettingValue     { return SettingValue{kind: KindBool, b: b} }

func (v SettingValue) Kind() ValueKind { return v.kind }

// String renders the value; booleans use the "yes"/"no" convention.
func (v SettingValue) String() string {
	if v.kind == KindBool {
		if v.b {
			return "yes"
		}
		return "no"
	}
	return v.str
}

func (v SettingValue) Bool() bool {
	if v.kind == KindBool {
		return v.b
	}
	return v.str == "yes"
}

func (v SettingValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindBool {
		return json.Marshal(v.b)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON decodes stored values. Strings decode as KindString; use
// NormalizeSettings to restore select tags against a form definition.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = BoolValue(t)
	case string:
		*v = StringValue(t)
	case float64:
		*v = StringValue(strconv.FormatFloat(t, 'f', -1, 64))
	case nil:
		*v = StringValue("")
	default:
		return fmt.Errorf("unsupported setting value %s", string(data))
	}
	return nil
}

// Settings maps form field keys to configured values.
type Settings map[string]SettingValue

func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// NormalizeSettings re-tags stored values with the variant their declared field expects.
func NormalizeSettings(fields []FormField, s Settings) Settings {
	for _, f := range fields {
		v, ok := s[f.Key]
		if !ok {
			continue
		}
		switch f.Type.Kind() {
		case KindBool:
			s[f.Key] = BoolValue(v.Bool())
		case KindSelect:
			s[f.Key] = SelectValue(v.String())
		default:
			s[f.Key] = StringValue(v.String())
		}
	}
	return s
}

// ParseSettingValue validates a raw request value against a form field.
func ParseSettingValue(f FormField, raw any) (SettingValue, error) {
	switch f.Type.Kind() {
	case KindBool:
		b, err := parseCheckbox(raw)
		if err != nil {
			return SettingValue{}, fmt.Errorf("%w: settings[%s]: %v", ErrInvalidParam, f.Key, err)
		}
		return BoolValue(b), nil
	case KindSelect:
		s, err := scalarString(raw)
		if err != nil {
			return SettingValue{}, fmt.Errorf("%w: settings[%s]: %v", ErrInvalidParam, f.Key, err)
		}
		if !f.hasOption(s) {
			return SettingValue{}, fmt.Errorf("%w: settings[%s]: %q is not one of the allowed options", ErrInvalidParam, f.Key, s)
		}
		return SelectValue(s), nil
	default:
		s, err := scalarString(raw)
		if err != nil {
			return SettingValue{}, fmt.Errorf("%w: settings[%s]: %v", ErrInvalidParam, f.Key, err)
		}
		if f.Type == FieldPrice || f.Type == FieldDecimal || f.Type == FieldNumber {
			s = strings.TrimSpace(s)
			if s != "" {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					return SettingValue{}, fmt.Errorf("%w: settings[%s]: %q is not a number", ErrInvalidParam, f.Key, s)
				}
			}
		}
		return StringValue(s), nil
	}
}

func parseCheckbox(raw any) (bool, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case float64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "1", "on":
			return true, nil
		case "no", "false", "0", "off", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected a boolean, got %v", raw)
}

func scalarString(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return "", fmt.Errorf("expected a finite number")
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case json.Number:
		return t.String(), nil
	default:
		return "", fmt.Errorf("expected a string, got %T", raw)
	}
}
