package clickhousenode

// Option one selectable value of an options property
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DisplayOptions conditions controlling when a property is shown; the
// property is visible when every referenced parameter holds one of the listed
// values
type DisplayOptions struct {
	Show map[string][]string `json:"show,omitempty"`
}

// Property one entry of the node's declarative parameter schema
type Property struct {
	DisplayName    string          `json:"displayName"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Default        string          `json:"default,omitempty"`
	Description    string          `json:"description,omitempty"`
	Required       bool            `json:"required,omitempty"`
	Options        []Option        `json:"options,omitempty"`
	DisplayOptions *DisplayOptions `json:"displayOptions,omitempty"`
}
