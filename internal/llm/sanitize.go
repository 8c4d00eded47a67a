package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Renames known synonyms (address -> delivery_address, order -> items)
// - Drops null/empty optionals
// - Coerces numeric quantities to strings (pounds convention)
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to the schema
	renamed("address", "delivery_address")
	renamed("date", "delivery_date")
	renamed("order", "items")
	renamed("order_items", "items")

	// 2) drop null / "" optionals
	for _, k := range []string{"delivery_date", "delivery_address", "notes"} {
		switch t := m[k].(type) {
		case nil:
			if _, ok := m[k]; ok {
				delete(m, k)
				dropped = append(dropped, k+"(null)")
			}
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	// 3) normalize items: keep objects, coerce numeric quantities to strings
	if items, ok := m["items"].([]any); ok {
		cleaned := make([]any, 0, len(items))
		for _, it := range items {
			obj, ok := it.(map[string]any)
			if !ok {
				dropped = append(dropped, "items(entry)")
				continue
			}
			switch q := obj["quantity"].(type) {
			case float64:
				if q == float64(int64(q)) {
					obj["quantity"] = fmt.Sprintf("%d lbs", int64(q))
				} else {
					obj["quantity"] = fmt.Sprintf("%g lbs", q)
				}
			case nil:
				delete(obj, "quantity")
			case string:
				obj["quantity"] = strings.TrimSpace(q)
			}
			if p, ok := obj["product"].(string); ok {
				obj["product"] = strings.TrimSpace(p)
			}
			for k := range maps.Clone(obj) {
				if k != "product" && k != "quantity" {
					delete(obj, k)
					dropped = append(dropped, "items."+k+"(unknown)")
				}
			}
			cleaned = append(cleaned, obj)
		}
		m["items"] = cleaned
	}

	// 4) remove unknown top-level keys
	allowed := map[string]struct{}{
		"items": {}, "delivery_date": {}, "delivery_address": {}, "notes": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
