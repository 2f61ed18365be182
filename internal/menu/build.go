package menu

// Builder constructs nodes from descriptors. Report receives every
// MalformedTemplateError for entries that were skipped; it may be nil.
type Builder struct {
	Report func(error)
	// CleanLabels derives item display names with CleanContextLabel, as done
	// for context menus whose templates come from command registrations. Text
	// keeps the raw label so matching and serialization see host data.
	CleanLabels bool
}

func (b Builder) report(err error) {
	if b.Report != nil && err != nil {
		b.Report(err)
	}
}

// Label builds a top-level bar label. Labels require text and a submenu.
func (b Builder) Label(d Descriptor) (*Node, error) {
	if d.Label == "" {
		return nil, &MalformedTemplateError{Index: -1, Reason: "label is missing its text"}
	}
	if d.Submenu == nil {
		return nil, &MalformedTemplateError{Index: -1, Label: d.Label, Reason: "label is missing its submenu"}
	}
	n := newNode(KindLabel)
	n.submenu = true
	b.applyText(n, d.Label)
	b.populate(n, d.Submenu)
	return n, nil
}

// Item builds a submenu entry. Non-separator items require text.
func (b Builder) Item(d Descriptor) (*Node, error) {
	if d.IsSeparator() {
		return newNode(KindSeparator), nil
	}
	if d.Label == "" {
		return nil, &MalformedTemplateError{Index: -1, Reason: "item is missing its label"}
	}
	n := newNode(KindItem)
	b.applyText(n, d.Label)
	if b.CleanLabels {
		n.name, n.trigger = Mnemonic(CleanContextLabel(d.Label))
	}
	n.enabled = d.IsEnabled()
	n.visible = d.IsVisible()
	n.command = d.Command
	n.detail = d.CommandDetail
	n.keystroke = d.Keystroke
	if len(d.Submenu) > 0 {
		n.submenu = true
		b.populate(n, d.Submenu)
	}
	return n, nil
}

// Child builds the node kind appropriate for parent: labels under a bar,
// items everywhere else.
func (b Builder) Child(parent *Node, d Descriptor) (*Node, error) {
	if parent.kind == KindBar {
		return b.Label(d)
	}
	return b.Item(d)
}

// Populate appends children built from descs to parent, skipping and
// reporting malformed entries.
func (b Builder) Populate(parent *Node, descs []Descriptor) {
	b.populate(parent, descs)
}

func (b Builder) populate(parent *Node, descs []Descriptor) {
	for i, d := range descs {
		child, err := b.Child(parent, d)
		if err != nil {
			if mt, ok := err.(*MalformedTemplateError); ok {
				mt.Index = i
			}
			b.report(err)
			continue
		}
		parent.Append(child)
	}
}

func (b Builder) applyText(n *Node, label string) {
	n.text = label
	n.name, n.trigger = Mnemonic(label)
}

// NewLabel builds a label, dropping reports for malformed children.
func NewLabel(d Descriptor) (*Node, error) {
	return Builder{}.Label(d)
}

// NewItem builds an item, dropping reports for malformed children.
func NewItem(d Descriptor) (*Node, error) {
	return Builder{}.Item(d)
}

// Build populates root from descs and returns every malformed-entry error it
// skipped, in encounter order.
func Build(root *Node, descs []Descriptor) []error {
	var errs []error
	Builder{
		Report:      func(err error) { errs = append(errs, err) },
		CleanLabels: root.kind == KindContext,
	}.Populate(root, descs)
	return errs
}
