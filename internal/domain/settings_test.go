package domain

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettingValue(t *testing.T) {
	taxStatus := FormField{
		Key:  "tax_status",
		Type: FieldSelect,
		Options: []FieldOption{
			{Value: "taxable", Label: "Taxable"},
			{Value: "none", Label: "None"},
		},
	}
	cost := FormField{Key: "cost", Type: FieldPrice}
	title := FormField{Key: "title", Type: FieldText}
	ignore := FormField{Key: "ignore_discounts", Type: FieldCheckbox}

	tc := []struct {
		name  string
		field FormField
		raw   any
		want  SettingValue
	}{
		{name: "text string", field: title, raw: "Flat rate", want: StringValue("Flat rate")},
		{name: "text number", field: title, raw: float64(12), want: StringValue("12")},
		{name: "price numeric string", field: cost, raw: " 4.50 ", want: StringValue("4.50")},
		{name: "price empty", field: cost, raw: "", want: StringValue("")},
		{name: "select option", field: taxStatus, raw: "none", want: SelectValue("none")},
		{name: "checkbox bool", field: ignore, raw: true, want: BoolValue(true)},
		{name: "checkbox yes", field: ignore, raw: "yes", want: BoolValue(true)},
		{name: "checkbox no", field: ignore, raw: "no", want: BoolValue(false)},
		{name: "checkbox zero", field: ignore, raw: float64(0), want: BoolValue(false)},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSettingValue(tt.field, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects", func(t *testing.T) {
		bad := []struct {
			name  string
			field FormField
			raw   any
		}{
			{name: "unknown option", field: taxStatus, raw: "sometimes"},
			{name: "price not numeric", field: cost, raw: "ten"},
			{name: "text object", field: title, raw: map[string]any{"a": 1}},
			{name: "checkbox junk", field: ignore, raw: "maybe"},
			{name: "checkbox number", field: ignore, raw: float64(3)},
		}
		for _, tt := range bad {
			_, err := ParseSettingValue(tt.field, tt.raw)
			require.Error(t, err, tt.name)
			assert.True(t, errors.Is(err, ErrInvalidParam), tt.name)
		}
	})
}

func TestSettingValueJSON(t *testing.T) {
	t.Run("Marshal Keeps Variant", func(t *testing.T) {
		out, err := json.Marshal(Settings{"enabled": BoolValue(true)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"enabled":true}`, string(out))
	})

	t.Run("Normalize Restores Select And Bool", func(t *testing.T) {
		var s Settings
		require.NoError(t, json.Unmarshal([]byte(`{"tax_status":"none","flag":"yes","title":"x"}`), &s))

		fields := []FormField{
			{Key: "tax_status", Type: FieldSelect},
			{Key: "flag", Type: FieldCheckbox},
			{Key: "title", Type: FieldText},
		}
		NormalizeSettings(fields, s)

		assert.Equal(t, SelectValue("none"), s["tax_status"])
		assert.Equal(t, BoolValue(true), s["flag"])
		assert.Equal(t, StringValue("x"), s["title"])
	})
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, BoolValue(true), FormField{Type: FieldCheckbox, Default: "yes"}.DefaultValue())
	assert.Equal(t, BoolValue(false), FormField{Type: FieldCheckbox}.DefaultValue())
	assert.Equal(t, SelectValue("taxable"), FormField{Type: FieldSelect, Default: "taxable"}.DefaultValue())
	assert.Equal(t, "no", BoolValue(false).String())
}
