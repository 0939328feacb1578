package domain

import "encoding/json"

// AttributeFields is the fixed set of custom attributes that may be edited
// through the gateway. Anything else in an update request is discarded.
var AttributeFields = []string{
	"D_Classification", "D_ThreadGender", "D_SizeA", "D_SizeB",
	"D_SizeC", "D_SizeD", "D_Orientation", "D_Configuration",
	"D_Grade", "D_ManufacturerName", "D_Application", "D_WebCategory",
}

var attributeFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AttributeFields))
	for _, f := range AttributeFields {
		set[f] = struct{}{}
	}
	return set
}()

// IsAttributeField reports whether name belongs to the editable attribute set.
func IsAttributeField(name string) bool {
	_, ok := attributeFieldSet[name]
	return ok
}

// Product is an upstream product record. The upstream schema is loose, so only
// the sub-fields the gateway reasons about are lifted out; everything else
// stays in Fields untouched.
type Product struct {
	ID                int
	Code              string
	Description       string
	Category          Category
	ECommerceSettings map[string]any
	Fields            map[string]any
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ID"]; ok {
		p.ID = toInt(v)
		delete(raw, "ID")
	}
	if v, ok := raw["Code"]; ok {
		p.Code, _ = v.(string)
		delete(raw, "Code")
	}
	if v, ok := raw["Description"]; ok {
		p.Description, _ = v.(string)
		delete(raw, "Description")
	}
	if v, ok := raw["Category"]; ok {
		if m, isMap := v.(map[string]any); isMap {
			p.Category.ID = toInt(m["ID"])
			p.Category.Description, _ = m["Description"].(string)
		}
		delete(raw, "Category")
	}
	if v, ok := raw["ECommerceSettings"]; ok {
		if m, isMap := v.(map[string]any); isMap {
			p.ECommerceSettings = m
		}
		delete(raw, "ECommerceSettings")
	}
	p.Fields = raw
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+5)
	for k, v := range p.Fields {
		out[k] = v
	}
	out["ID"] = p.ID
	out["Code"] = p.Code
	out["Description"] = p.Description
	out["Category"] = map[string]any{
		"ID":          p.Category.ID,
		"Description": p.Category.Description,
	}
	if p.ECommerceSettings != nil {
		out["ECommerceSettings"] = p.ECommerceSettings
	}
	return json.Marshal(out)
}

// Attribute returns the raw value of a custom attribute field, or nil when
// the upstream record does not carry it.
func (p *Product) Attribute(name string) any {
	if p.Fields == nil {
		return nil
	}
	return p.Fields[name]
}

// StatusRaw returns the e-commerce status exactly as the upstream sent it.
// The shape varies across upstream versions; feed it to Normalize.
func (p *Product) StatusRaw() any {
	if p.ECommerceSettings == nil {
		return nil
	}
	return p.ECommerceSettings["ECommerceStatus"]
}

// ExtendedDescription returns the e-commerce extended description, if set.
func (p *Product) ExtendedDescription() string {
	if p.ECommerceSettings == nil {
		return ""
	}
	s, _ := p.ECommerceSettings["ExtendedDescription"].(string)
	return s
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	default:
		return 0
	}
}
