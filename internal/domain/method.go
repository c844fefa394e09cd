package domain

// MethodType is a class of shipping method (flat rate, free shipping, ...). It
// declares the settings form every instance of the type is validated against.
type MethodType interface {
	ID() string
	Title() string
	Description() string
	FormFields() []FormField
	InstanceOptionKey(instanceID int64) string
}

// MethodTypeRegistry looks up the method types known to this process.
type MethodTypeRegistry interface {
	Get(id string) (MethodType, bool)
	List() []MethodType
}

// MethodInstance is one configured shipping method attached to a zone.
type MethodInstance struct {
	InstanceID int64    `json:"instance_id"`
	ZoneID     int64    `json:"zone_id"`
	MethodID   string   `json:"method_id"`
	Order      int      `json:"order"`
	Enabled    bool     `json:"enabled"`
	Settings   Settings `json:"settings"`
}

// Title is the customer facing title stored in the instance settings.
func (m *MethodInstance) Title() string {
	if v, ok := m.Settings["title"]; ok {
		return v.String()
	}
	return ""
}

// Clone returns a copy that does not share the settings map.
func (m MethodInstance) Clone() MethodInstance {
	m.Settings = m.Settings.Clone()
	return m
}

// ZoneMethod pairs an instance with its resolved type.
type ZoneMethod struct {
	Instance MethodInstance
	Type     MethodType
}

// MethodUpdate carries the writable fields of a request. A nil field was not sent.
// Settings holds raw decoded JSON values, validated against the type's form fields.
type MethodUpdate struct {
	Settings map[string]any
	Order    *int64
	Enabled  *bool
}

func (u MethodUpdate) IsEmpty() bool {
	return u.Settings == nil && u.Order == nil && u.Enabled == nil
}

// DefaultSettings builds the settings a fresh instance of mt starts with.
func DefaultSettings(mt MethodType) Settings {
	fields := mt.FormFields()
	settings := make(Settings, len(fields))
	for _, f := range fields {
		settings[f.Key] = f.DefaultValue()
	}
	return settings
}
