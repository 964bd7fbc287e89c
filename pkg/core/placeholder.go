package core

// PlaceholderSource attributes a placeholder to the prompt that contains it.
type PlaceholderSource string

// Placeholder source constants.
const (
	SourceSystem PlaceholderSource = "system"
	SourceUser   PlaceholderSource = "user"
)

// Placeholder is one {{name}} token detected in prompt text.
type Placeholder struct {
	// Raw is the full token including braces, e.g. "{{Region}}"
	Raw string `json:"raw"`
	// FieldName is the trimmed inner text, e.g. "Region"
	FieldName string `json:"fieldName"`
	// Position is the start offset within the combined prompt text
	Position int `json:"position"`
	// Source is "system" when the token's offset falls inside the system
	// prompt, else "user". This is an offset heuristic: a token appearing
	// verbatim in both prompts is attributed by its own occurrence only.
	Source PlaceholderSource `json:"source"`
}
