package model

import "encoding/json"

// flattenDocument marshals v and lifts the free-form attributes into the
// top-level JSON object. Typed fields always win over attribute keys.
func flattenDocument(v interface{}, attributes map[string]interface{}) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(attributes) == 0 {
		return base, nil
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, err
	}
	for key, value := range attributes {
		if _, exists := doc[key]; !exists {
			doc[key] = value
		}
	}
	return json.Marshal(doc)
}

// CloneAttributes returns a shallow copy of a free-form attribute map.
func CloneAttributes(attributes map[string]interface{}) map[string]interface{} {
	if attributes == nil {
		return nil
	}
	out := make(map[string]interface{}, len(attributes))
	for key, value := range attributes {
		out[key] = value
	}
	return out
}
