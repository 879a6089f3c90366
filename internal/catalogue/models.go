// Package catalogue defines the typed product data model for the storefront.
package catalogue

import "strings"

// PriceOnRequest is the sentinel price for variants without a list price.
const PriceOnRequest = "ask"

// TypeRef is a reference to a named catalogue type (body, size or chassis type).
type TypeRef struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
}

// Label returns the display name, falling back to the short name.
func (t TypeRef) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ShortName
}

// Size describes one available body size of a catalogue record.
type Size struct {
	SizeType   TypeRef `json:"sizeType"`
	SizeCustom string  `json:"sizeCustom,omitempty"`
}

// Label returns the human-readable size description.
func (s Size) Label() string {
	label := s.SizeType.Label()
	if s.SizeCustom != "" {
		if label != "" {
			return label + " - " + s.SizeCustom
		}
		return s.SizeCustom
	}
	if label == "" {
		return "Not specified"
	}
	return label
}

// Chassis describes a chassis configuration: a chassis type plus an
// ordered list of detail strings.
type Chassis struct {
	ChassisType    TypeRef  `json:"chassisType"`
	ChassisDetails []string `json:"chassisDetails,omitempty"`
}

// Label returns the human-readable chassis description.
func (c Chassis) Label() string {
	label := c.ChassisType.Label()
	if label == "" {
		label = "Unknown"
	}
	if len(c.ChassisDetails) > 0 {
		label += " (" + strings.Join(c.ChassisDetails, ", ") + ")"
	}
	return label
}

// Clone returns a deep copy of the chassis.
func (c Chassis) Clone() Chassis {
	out := c
	if c.ChassisDetails != nil {
		out.ChassisDetails = append([]string(nil), c.ChassisDetails...)
	}
	return out
}

// CatalogueRecord is one sellable product template. Records are immutable
// once fetched; missing optional fields default to empty values.
type CatalogueRecord struct {
	ID       string    `json:"id"`
	BodyType TypeRef   `json:"bodyType"`
	Article  string    `json:"article,omitempty"`
	LeadTime string    `json:"leadTime,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	Sizes    []Size    `json:"sizes,omitempty"`
	Chassis  []Chassis `json:"chassis,omitempty"`
}

// Clone returns a deep copy of the record, safe to retain as a snapshot.
func (r CatalogueRecord) Clone() CatalogueRecord {
	out := r
	if r.Sizes != nil {
		out.Sizes = append([]Size(nil), r.Sizes...)
	}
	if r.Chassis != nil {
		out.Chassis = make([]Chassis, len(r.Chassis))
		for i, c := range r.Chassis {
			out.Chassis[i] = c.Clone()
		}
	}
	return out
}

// VariantCombination is one concrete, independently priced configuration
// of a catalogue record.
type VariantCombination struct {
	CombinationID     string            `json:"combinationId"`
	SizeData          *Size             `json:"sizeData,omitempty"`
	ChassisData       *Chassis          `json:"chassisData,omitempty"`
	VariantSelections map[string]string `json:"variantSelections,omitempty"`
	Price             string            `json:"price,omitempty"`
	BaseModel         bool              `json:"baseModel,omitempty"`
}

// DisplayPrice renders the price, mapping the on-request sentinel to its label.
func (v VariantCombination) DisplayPrice() string {
	if v.Price == PriceOnRequest {
		return "Ask for Price"
	}
	return v.Price
}

// Selections returns the variant selections, never nil.
func (v VariantCombination) Selections() map[string]string {
	if v.VariantSelections == nil {
		return map[string]string{}
	}
	return v.VariantSelections
}

// Clone returns a deep copy of the variant combination.
func (v VariantCombination) Clone() VariantCombination {
	out := v
	if v.SizeData != nil {
		size := *v.SizeData
		out.SizeData = &size
	}
	if v.ChassisData != nil {
		ch := v.ChassisData.Clone()
		out.ChassisData = &ch
	}
	if v.VariantSelections != nil {
		out.VariantSelections = make(map[string]string, len(v.VariantSelections))
		for k, val := range v.VariantSelections {
			out.VariantSelections[k] = val
		}
	}
	return out
}
