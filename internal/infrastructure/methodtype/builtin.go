package methodtype

import "shipzone-backend/internal/domain"

const (
	FlatRate     = "flat_rate"
	FreeShipping = "free_shipping"
	LocalPickup  = "local_pickup"
)

var taxStatusOptions = []domain.FieldOption{
	{Value: "taxable", Label: "Taxable"},
	{Value: "none", Label: "None"},
}

func titleField(def string) domain.FormField {
	return domain.FormField{
		Key:         "title",
		Title:       "Method title",
		Type:        domain.FieldText,
		Description: "This controls the title which the user sees during checkout.",
		Default:     def,
	}
}

// Builtin returns fresh copies of the method types every deployment ships with.
func Builtin() []*Definition {
	return []*Definition{
		{
			MethodID:          FlatRate,
			MethodTitle:       "Flat rate",
			MethodDescription: "Lets you charge a fixed rate for shipping.",
			Fields: []domain.FormField{
				titleField("Flat rate"),
				{Key: "tax_status", Title: "Tax status", Type: domain.FieldSelect, Default: "taxable", Options: taxStatusOptions},
				{
					Key:         "cost",
					Title:       "Cost",
					Type:        domain.FieldText,
					Description: "Enter a cost (excl. tax) or sum, e.g. 10.00 * [qty].",
					Default:     "0",
				},
			},
		},
		{
			MethodID:          FreeShipping,
			MethodTitle:       "Free shipping",
			MethodDescription: "Free shipping is a special method which can be triggered with coupons and minimum spends.",
			Fields: []domain.FormField{
				titleField("Free shipping"),
				{
					Key:     "requires",
					Title:   "Free shipping requires...",
					Type:    domain.FieldSelect,
					Default: "",
					Options: []domain.FieldOption{
						{Value: "", Label: "N/A"},
						{Value: "coupon", Label: "A valid free shipping coupon"},
						{Value: "min_amount", Label: "A minimum order amount"},
						{Value: "either", Label: "A minimum order amount OR a coupon"},
						{Value: "both", Label: "A minimum order amount AND a coupon"},
					},
				},
				{
					Key:         "min_amount",
					Title:       "Minimum order amount",
					Type:        domain.FieldPrice,
					Description: "Users will need to spend this amount to get free shipping (if enabled above).",
					Default:     "0",
					Placeholder: "0",
				},
				{
					Key:         "ignore_discounts",
					Title:       "Coupons discounts",
					Type:        domain.FieldCheckbox,
					Description: "Apply minimum order rule before coupon discount",
					Default:     "no",
				},
			},
		},
		{
			MethodID:          LocalPickup,
			MethodTitle:       "Local pickup",
			MethodDescription: "Allow customers to pick up orders themselves. By default, when using local pickup store base taxes will apply regardless of customer address.",
			Fields: []domain.FormField{
				titleField("Local pickup"),
				{Key: "tax_status", Title: "Tax status", Type: domain.FieldSelect, Default: "taxable", Options: taxStatusOptions},
				{Key: "cost", Title: "Cost", Type: domain.FieldText, Placeholder: "0"},
			},
		},
	}
}
