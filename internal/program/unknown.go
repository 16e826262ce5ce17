package program

import "encoding/json"

// unknownFields keeps the JSON members this service does not model, so that
// rewriting a whole saved collection does not drop what other clients stored.
type unknownFields map[string]json.RawMessage

func decodeKeepingUnknown(data []byte, v any, known ...string) (unknownFields, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}

	var all unknownFields
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func encodeWithUnknown(v any, unknown unknownFields) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(unknown) == 0 {
		return data, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, raw := range unknown {
		if _, ok := all[k]; !ok {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}
