package domain

import "encoding/json"

// Category is a single upstream product category. Unknown upstream fields are
// kept in Extra so the cached document round-trips losslessly.
type Category struct {
	ID          int
	Description string
	Extra       map[string]json.RawMessage
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["ID"]; ok {
		if err := json.Unmarshal(v, &c.ID); err != nil {
			return err
		}
		delete(raw, "ID")
	}
	if v, ok := raw["Description"]; ok {
		if err := json.Unmarshal(v, &c.Description); err != nil {
			return err
		}
		delete(raw, "Description")
	}
	c.Extra = raw
	return nil
}

func (c Category) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	id, err := json.Marshal(c.ID)
	if err != nil {
		return nil, err
	}
	desc, err := json.Marshal(c.Description)
	if err != nil {
		return nil, err
	}
	out["ID"] = id
	out["Description"] = desc
	return json.Marshal(out)
}

// CategoryList is the upstream /ProductCategories envelope.
type CategoryList struct {
	TotalCount int        `json:"TotalCount"`
	Data       []Category `json:"Data"`
}

// EmptyCategoryList is the degraded-but-renderable result returned when both
// the cache and the upstream are unavailable.
func EmptyCategoryList() *CategoryList {
	return &CategoryList{TotalCount: 0, Data: []Category{}}
}

// Find returns the category with the given ID, if present.
func (l *CategoryList) Find(id int) (*Category, bool) {
	for i := range l.Data {
		if l.Data[i].ID == id {
			return &l.Data[i], true
		}
	}
	return nil, false
}
