package menu

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SeparatorType is the descriptor type value marking a separator entry.
const SeparatorType = "separator"

// Descriptor is one entry of a host supplied menu template.
//
// A nil Submenu means the host did not supply one (or supplied something that
// was not a sequence). A non-nil empty Submenu means the host supplied an empty
// sequence on purpose.
type Descriptor struct {
	Label         string       `json:"label,omitempty" yaml:"label,omitempty"`
	Type          string       `json:"type,omitempty" yaml:"type,omitempty"`
	Enabled       *bool        `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Visible       *bool        `json:"visible,omitempty" yaml:"visible,omitempty"`
	Command       string       `json:"command,omitempty" yaml:"command,omitempty"`
	CommandDetail any          `json:"commandDetail,omitempty" yaml:"commandDetail,omitempty"`
	Keystroke     string       `json:"keystroke,omitempty" yaml:"keystroke,omitempty"`
	Submenu       []Descriptor `json:"submenu,omitempty" yaml:"submenu,omitempty"`
}

// IsSeparator reports whether the descriptor describes a separator.
func (d Descriptor) IsSeparator() bool {
	return d.Type == SeparatorType
}

// IsEnabled applies the default of true when the field is omitted.
func (d Descriptor) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// IsVisible applies the default of true when the field is omitted.
func (d Descriptor) IsVisible() bool {
	return d.Visible == nil || *d.Visible
}

// Template is a decoded template file. Menu holds the raw bar template value
// so that shape validation happens in the reconciler, not in the decoder.
type Template struct {
	Menu    any
	Context any
}

// Decode parses a YAML or JSON template. A top-level sequence is treated as the
// bar template; a mapping may carry "menu" and "context" keys.
func Decode(data []byte) (Template, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Template{}, fmt.Errorf("decode template: %w", err)
	}
	switch v := raw.(type) {
	case nil:
		return Template{}, errors.New("decode template: empty document")
	case map[string]any:
		return Template{Menu: v["menu"], Context: v["context"]}, nil
	default:
		return Template{Menu: v}, nil
	}
}

// Descriptors converts a generic decoded value into descriptors. Entries that
// are not mappings are skipped and reported; the remaining siblings are kept.
// The boolean result is false when v itself is not a sequence.
func Descriptors(v any) ([]Descriptor, []error, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, nil, false
	}
	out := make([]Descriptor, 0, len(list))
	var errs []error
	for i, entry := range list {
		d, sub, err := descriptorFrom(entry)
		errs = append(errs, sub...)
		if err != nil {
			errs = append(errs, &MalformedTemplateError{Index: i, Reason: err.Error()})
			continue
		}
		out = append(out, d)
	}
	return out, errs, true
}

func descriptorFrom(v any) (Descriptor, []error, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return Descriptor{}, nil, fmt.Errorf("entry is %T, not a mapping", v)
	}
	var d Descriptor
	d.Label, _ = fields["label"].(string)
	d.Type, _ = fields["type"].(string)
	d.Command, _ = fields["command"].(string)
	d.Keystroke, _ = fields["keystroke"].(string)
	d.CommandDetail = fields["commandDetail"]
	if b, ok := fields["enabled"].(bool); ok {
		d.Enabled = &b
	}
	if b, ok := fields["visible"].(bool); ok {
		d.Visible = &b
	}
	var errs []error
	if sub, ok := fields["submenu"]; ok {
		children, childErrs, isList := Descriptors(sub)
		if isList {
			d.Submenu = children
			errs = childErrs
		}
	}
	return d, errs, nil
}

// Bool returns a pointer to b, for building descriptors in code.
func Bool(b bool) *bool {
	return &b
}
