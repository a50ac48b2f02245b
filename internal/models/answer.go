package models

// AnswerMap maps question ids (and "<id>_text" companion keys) to recorded
// values: free text for text questions, a single option id for selects, a
// list of option ids for multi selects. Values round-trip through JSON, so
// list values may come back as []any.
type AnswerMap map[string]any

// NormalizeSelection flattens a recorded answer value to a list of option
// ids. Single values are wrapped, empty and unknown shapes collapse to nil.
func NormalizeSelection(v any) []string {
	switch value := v.(type) {
	case string:
		if value == "" {
			return nil
		}
		return []string{value}
	case []string:
		var out []string
		for _, s := range value {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range value {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
