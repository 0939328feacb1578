package domain

import (
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Status is the canonical e-commerce availability of a product. The upstream
// has sent this field as an integer, a boolean, a string, and a nested object
// across its versions; everything funnels through Normalize into one of these
// two values.
type Status int

const (
	Available Status = iota
	NotAvailable
)

func (s Status) String() string {
	if s == Available {
		return "Available"
	}
	return "NotAvailable"
}

// Code is the integer projection used on the read path: 0 is available,
// 1 is not, matching the upstream's own integer convention.
func (s Status) Code() int {
	if s == Available {
		return 0
	}
	return 1
}

func (s Status) IsAvailable() bool {
	return s == Available
}

// Enum is the upstream enum string, the only shape the write endpoint has
// been observed to accept.
func (s Status) Enum() string {
	if s == Available {
		return "Enabled"
	}
	return "Disabled"
}

// Label is the human-readable pair shown by the UI.
func (s Status) Label() string {
	if s == Available {
		return "Available"
	}
	return "Not Available"
}

var availableStrings = map[string]struct{}{
	"available": {}, "enabled": {}, "true": {}, "0": {}, "active": {},
}

var notAvailableStrings = map[string]struct{}{
	"not available": {}, "disabled": {}, "false": {}, "1": {}, "inactive": {},
}

// statusObjectKeys is the search order for nested status objects. First key
// present wins and its value is normalized recursively.
var statusObjectKeys = []string{
	"Value", "value", "isAvailable", "Status", "status",
	"Name", "name", "ECommerceStatus", "WebStatus", "web_status",
}

// Normalize resolves any historically-observed status shape to a canonical
// Status. The precedence is fixed: nil, bool, number (truncated, 0 means
// available), string (trimmed, case-insensitive), nested object. It never
// fails; an unrecognized shape logs a warning and resolves to NotAvailable,
// because an unknown status must never make a product visible. Unrecognized
// strings also resolve to NotAvailable here; preserving them for writes is
// WriteEnum's job.
func Normalize(raw any) Status {
	switch v := raw.(type) {
	case nil:
		return NotAvailable
	case bool:
		if v {
			return Available
		}
		return NotAvailable
	case int:
		return normalizeNumber(float64(v))
	case int32:
		return normalizeNumber(float64(v))
	case int64:
		return normalizeNumber(float64(v))
	case float32:
		return normalizeNumber(float64(v))
	case float64:
		return normalizeNumber(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			log.Warnf("unparseable numeric e-commerce status %q, treating as not available", v.String())
			return NotAvailable
		}
		return normalizeNumber(f)
	case string:
		key := strings.ToLower(strings.TrimSpace(v))
		if _, ok := availableStrings[key]; ok {
			return Available
		}
		if _, ok := notAvailableStrings[key]; ok {
			return NotAvailable
		}
		log.Warnf("unrecognized e-commerce status string %q, treating as not available", v)
		return NotAvailable
	case map[string]any:
		for _, key := range statusObjectKeys {
			if inner, ok := v[key]; ok {
				return Normalize(inner)
			}
		}
		log.Warnf("e-commerce status object has no recognized key (keys: %v), treating as not available", mapKeys(v))
		return NotAvailable
	default:
		log.Warnf("unrecognized e-commerce status shape %T, treating as not available", raw)
		return NotAvailable
	}
}

func normalizeNumber(f float64) Status {
	if int(f) == 0 {
		return Available
	}
	return NotAvailable
}

// WriteEnum projects a raw status value into the enum string the upstream
// write endpoint accepts. Strings outside the known sets are upstream enum
// members this system does not know about; they pass through unchanged so a
// write never destroys them.
func WriteEnum(raw any) string {
	if s, ok := raw.(string); ok {
		t := strings.TrimSpace(s)
		key := strings.ToLower(t)
		_, avail := availableStrings[key]
		_, notAvail := notAvailableStrings[key]
		if !avail && !notAvail && t != "" {
			return t
		}
	}
	return Normalize(raw).Enum()
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
