package chunk

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON rehydrates the attribute bag with the concrete types the
// accessors expect. A plain map[string]any decode would leave every slice as
// []any and every number as float64, so a Chunk loaded from chunks.json
// would report empty Params()/Relationships()/Level() and the structural
// post-filters would silently reject everything on a persisted index.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Attributes, len(raw))
	for key, msg := range raw {
		v, err := decodeAttribute(key, msg)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out[key] = v
	}
	*a = out
	return nil
}

func decodeAttribute(key string, msg json.RawMessage) (any, error) {
	switch key {
	case "params":
		var v []Param
		err := json.Unmarshal(msg, &v)
		return v, err
	case "imports":
		var v []Import
		err := json.Unmarshal(msg, &v)
		return v, err
	case "relationships":
		var v []Relationship
		err := json.Unmarshal(msg, &v)
		return v, err
	case "usage":
		v := &Usage{}
		err := json.Unmarshal(msg, v)
		return v, err
	case "context":
		v := &Context{}
		err := json.Unmarshal(msg, v)
		return v, err
	case "base_images":
		var v []BaseImage
		err := json.Unmarshal(msg, &v)
		return v, err
	case "instructions":
		var v []Instruction
		err := json.Unmarshal(msg, &v)
		return v, err
	case "env_vars":
		var v map[string]string
		err := json.Unmarshal(msg, &v)
		return v, err
	case "level", "position":
		var v int
		err := json.Unmarshal(msg, &v)
		return v, err
	case "patterns", "key_operations", "methods", "bases", "class_attributes",
		"exposed_ports", "volumes", "comments", "props", "jsx_elements":
		var v []string
		err := json.Unmarshal(msg, &v)
		return v, err
	default:
		var v any
		err := json.Unmarshal(msg, &v)
		return v, err
	}
}
