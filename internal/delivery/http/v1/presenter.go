package v1

import (
	"fmt"
	"net/http"
	"strings"

	"shipzone-backend/internal/domain"
)

const apiPrefix = "/api/v1/shipping"

// Response contexts. edit limits an item to its writable fields.
const (
	contextView = "view"
	contextEdit = "edit"
)

type link struct {
	Href string `json:"href"`
}

type methodLinks struct {
	Self       []link `json:"self"`
	Collection []link `json:"collection"`
	Describes  []link `json:"describes"`
}

type settingDescriptor struct {
	ID          string               `json:"id"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Type        domain.FieldType     `json:"type"`
	Value       *domain.SettingValue `json:"value"`
	Default     string               `json:"default"`
	Tip         string               `json:"tip"`
	Placeholder string               `json:"placeholder"`
	Options     map[string]string    `json:"options,omitempty"`
}

type methodView struct {
	InstanceID        int64               `json:"instance_id"`
	Title             string              `json:"title"`
	Order             int                 `json:"order"`
	Enabled           bool                `json:"enabled"`
	MethodID          string              `json:"method_id"`
	MethodTitle       string              `json:"method_title"`
	MethodDescription string              `json:"method_description"`
	Settings          []settingDescriptor `json:"settings"`
	Links             methodLinks         `json:"_links"`
}

type methodEdit struct {
	Order    int                 `json:"order"`
	Enabled  bool                `json:"enabled"`
	Settings []settingDescriptor `json:"settings"`
	Links    methodLinks         `json:"_links"`
}

type presenter struct {
	baseURL string
}

func newPresenter(publicURL string) presenter {
	return presenter{baseURL: strings.TrimSuffix(publicURL, "/")}
}

func (p presenter) zoneURL(zoneID int64) string {
	return fmt.Sprintf("%s%s/zones/%d", p.baseURL, apiPrefix, zoneID)
}

func (p presenter) methodLinks(inst domain.MethodInstance) methodLinks {
	collection := p.zoneURL(inst.ZoneID) + "/methods"
	return methodLinks{
		Self:       []link{{Href: fmt.Sprintf("%s/%d", collection, inst.InstanceID)}},
		Collection: []link{{Href: collection}},
		Describes:  []link{{Href: p.zoneURL(inst.ZoneID)}},
	}
}

// method shapes a zone method for the given response context.
func (p presenter) method(zm domain.ZoneMethod, ctx string) any {
	inst := zm.Instance
	settings := settingDescriptors(zm.Type, inst.Settings)
	links := p.methodLinks(inst)

	if ctx == contextEdit {
		return methodEdit{
			Order:    inst.Order,
			Enabled:  inst.Enabled,
			Settings: settings,
			Links:    links,
		}
	}
	return methodView{
		InstanceID:        inst.InstanceID,
		Title:             inst.Title(),
		Order:             inst.Order,
		Enabled:           inst.Enabled,
		MethodID:          inst.MethodID,
		MethodTitle:       zm.Type.Title(),
		MethodDescription: zm.Type.Description(),
		Settings:          settings,
		Links:             links,
	}
}

func (p presenter) methods(list []domain.ZoneMethod, ctx string) []any {
	out := make([]any, 0, len(list))
	for _, zm := range list {
		out = append(out, p.method(zm, ctx))
	}
	return out
}

// settingDescriptors lists the form fields in declaration order. Value is null
// for keys that were never stored.
func settingDescriptors(mt domain.MethodType, stored domain.Settings) []settingDescriptor {
	fields := mt.FormFields()
	out := make([]settingDescriptor, 0, len(fields))
	for _, f := range fields {
		d := settingDescriptor{
			ID:          f.Key,
			Label:       f.Title,
			Description: f.Description,
			Type:        f.Type,
			Default:     f.Default,
			Tip:         f.Description,
			Placeholder: f.Placeholder,
		}
		if v, ok := stored[f.Key]; ok {
			d.Value = &v
		}
		if len(f.Options) > 0 {
			d.Options = make(map[string]string, len(f.Options))
			for _, o := range f.Options {
				d.Options[o.Value] = o.Label
			}
		}
		out = append(out, d)
	}
	return out
}

type zoneLinks struct {
	Self       []link `json:"self"`
	Collection []link `json:"collection"`
	Methods    []link `json:"methods"`
}

type zoneView struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Order int       `json:"order"`
	Links zoneLinks `json:"_links"`
}

func (p presenter) zone(z domain.ShippingZone) zoneView {
	self := p.zoneURL(z.ID)
	return zoneView{
		ID:    z.ID,
		Name:  z.Name,
		Order: z.Order,
		Links: zoneLinks{
			Self:       []link{{Href: self}},
			Collection: []link{{Href: p.baseURL + apiPrefix + "/zones"}},
			Methods:    []link{{Href: self + "/methods"}},
		},
	}
}

type methodTypeView struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Fields      []domain.FormField `json:"fields"`
	Links       struct {
		Self       []link `json:"self"`
		Collection []link `json:"collection"`
	} `json:"_links"`
}

func (p presenter) methodType(mt domain.MethodType) methodTypeView {
	v := methodTypeView{
		ID:          mt.ID(),
		Title:       mt.Title(),
		Description: mt.Description(),
		Fields:      mt.FormFields(),
	}
	collection := p.baseURL + apiPrefix + "/methods"
	v.Links.Self = []link{{Href: collection + "/" + mt.ID()}}
	v.Links.Collection = []link{{Href: collection}}
	return v
}

// requestContext reads ?context=, defaulting to view.
func requestContext(r *http.Request) (string, bool) {
	switch c := r.URL.Query().Get("context"); c {
	case "", contextView:
		return contextView, true
	case contextEdit:
		return contextEdit, true
	default:
		return "", false
	}
}
