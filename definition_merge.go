package formstate

// MergeDefinitions composes definitions ordered from strongest to weakest.
// Scalars come from the strongest layer that sets them; field and rule maps
// are unioned with stronger entries replacing weaker ones.
func MergeDefinitions(layers ...Definition) Definition {
	var merged Definition
	for i := len(layers) - 1; i >= 0; i-- {
		merged = overlayDefinition(layers[i], merged)
	}
	return merged
}

func overlayDefinition(strong, weak Definition) Definition {
	out := weak
	if strong.Name != "" {
		out.Name = strong.Name
	}
	if strong.Strict != nil {
		strict := *strong.Strict
		out.Strict = &strict
	}
	if strong.Engine != "" {
		out.Engine = strong.Engine
	}
	out.Fields = overlayMap(strong.Fields, weak.Fields)
	out.Rules = overlayMap(strong.Rules, weak.Rules)
	return out
}

func overlayMap[V any](strong, weak map[string]V) map[string]V {
	if strong == nil && weak == nil {
		return nil
	}
	out := make(map[string]V, len(strong)+len(weak))
	for key, value := range weak {
		out[key] = value
	}
	for key, value := range strong {
		out[key] = value
	}
	return out
}
