// Package reconcile keeps a live menu tree in sync with a freshly supplied
// template while preserving node identity, and with it open, selected and
// focused state.
package reconcile

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/menubar/internal/diff"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/metrics"
)

// ErrNotSequence is reported when the template root is not a list. The pass is
// abandoned and the tree is left untouched.
var ErrNotSequence = errors.New("reconcile: template root is not a sequence")

// PrePass rewrites the root-level descriptors before any diffing happens.
type PrePass func(root *menu.Node, descs []menu.Descriptor) []menu.Descriptor

// Result summarises one pass.
type Result struct {
	// Edits counts applied non-keep operations across every level.
	Edits int
	// Ops counts applied operations by kind name, keeps included.
	Ops       map[string]int
	Malformed []error
	Err       error
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPrePass appends a root-level normalisation step.
func WithPrePass(p PrePass) Option {
	return func(r *Reconciler) { r.prePasses = append(r.prePasses, p) }
}

// WithMetrics records pass outcomes on rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(r *Reconciler) { r.metrics = rec }
}

// WithReport receives every diagnostic of a pass: malformed descriptors and
// ErrNotSequence. It is the only place diagnostics leave the reconciler, so
// the caller decides how they are logged.
func WithReport(fn func(error)) Option {
	return func(r *Reconciler) { r.report = fn }
}

// Reconciler applies templates to menu trees.
type Reconciler struct {
	prePasses []PrePass
	metrics   *metrics.Recorder
	report    func(error)
}

// New builds a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reconciles root against template, the raw decoded host value. A
// template that is not a sequence aborts the pass with ErrNotSequence and
// zero edits.
func (r *Reconciler) Run(root *menu.Node, template any) Result {
	rootName := root.Kind().String()
	descs, errs, ok := menu.Descriptors(template)
	if !ok {
		events.Reconcile.Abort(rootName, ErrNotSequence)
		r.metrics.Pass(rootName, true)
		r.emit(ErrNotSequence)
		return Result{Err: ErrNotSequence}
	}

	p := &pass{
		Reconciler: r,
		root:       rootName,
		result:     Result{Ops: make(map[string]int)},
		fresh:      make(map[*menu.Node]bool),
	}
	for _, err := range errs {
		p.malformed(err)
	}
	for _, pre := range r.prePasses {
		descs = pre(root, descs)
	}
	p.builder = menu.Builder{
		Report:      p.malformed,
		CleanLabels: root.Kind() == menu.KindContext,
	}
	p.level(root, descs)

	events.Reconcile.Pass(rootName, p.result.Edits, p.result.Ops)
	r.metrics.Pass(rootName, false)
	for op, n := range p.result.Ops {
		if op != diff.Keep.String() {
			r.metrics.Edits(op, n)
		}
	}
	return p.result
}

// Level reconciles the children of parent against descs and recurses into
// submenus. It returns the number of applied non-keep operations.
func (r *Reconciler) Level(parent *menu.Node, descs []menu.Descriptor) int {
	p := &pass{
		Reconciler: r,
		root:       parent.Root().Kind().String(),
		result:     Result{Ops: make(map[string]int)},
		fresh:      make(map[*menu.Node]bool),
	}
	p.builder = menu.Builder{
		Report:      p.malformed,
		CleanLabels: parent.Root().Kind() == menu.KindContext,
	}
	p.level(parent, descs)
	return p.result.Edits
}

func (r *Reconciler) emit(err error) {
	if r.report != nil {
		r.report(err)
	}
}

type pass struct {
	*Reconciler
	root    string
	builder menu.Builder
	result  Result
	// fresh holds nodes built during this pass; their subtrees already
	// mirror their descriptors.
	fresh map[*menu.Node]bool
}

func (p *pass) malformed(err error) {
	p.result.Malformed = append(p.result.Malformed, err)
	events.Reconcile.Malformed(err)
	p.metrics.Malformed(p.root)
	p.emit(err)
}

func (p *pass) count(kind diff.Kind) {
	p.result.Ops[kind.String()]++
	if kind != diff.Keep {
		p.result.Edits++
	}
}

func (p *pass) level(parent *menu.Node, descs []menu.Descriptor) {
	old := append([]*menu.Node(nil), parent.Children()...)
	script := diff.Compute(old, descs, Equal)

	pos := 0
	for _, op := range script {
		switch op.Kind {
		case diff.Keep:
			p.count(diff.Keep)
			pos++
		case diff.Delete:
			parent.Remove(pos).Destroy()
			p.count(diff.Delete)
		case diff.Insert:
			if p.insert(parent, descs[op.New], op.New, pos) {
				p.count(diff.Insert)
				pos++
			}
		case diff.Replace:
			parent.Remove(pos).Destroy()
			if p.insert(parent, descs[op.New], op.New, pos) {
				p.count(diff.Replace)
				pos++
			} else {
				p.count(diff.Delete)
			}
		}
	}

	for _, child := range parent.Children() {
		if child.IsSeparator() || p.fresh[child] {
			continue
		}
		desc, ok := findByText(descs, child.Text())
		if !ok {
			continue
		}
		if desc.Submenu == nil {
			if child.HasSubmenu() {
				events.Reconcile.Skip(child.Text(), "submenu is not a sequence")
			}
			continue
		}
		if len(desc.Submenu) == 0 && len(child.Children()) > 0 {
			events.Reconcile.Skip(child.Text(), "empty submenu awaiting repopulation")
			continue
		}
		p.level(child, desc.Submenu)
	}
}

// insert builds a node for d at pos. Malformed descriptors are reported and
// skipped; the caller does not count them as edits.
func (p *pass) insert(parent *menu.Node, d menu.Descriptor, index, pos int) bool {
	child, err := p.builder.Child(parent, d)
	if err != nil {
		var mt *menu.MalformedTemplateError
		if errors.As(err, &mt) {
			mt.Index = index
		}
		p.malformed(err)
		return false
	}
	parent.Insert(child, pos)
	p.fresh[child] = true
	return true
}

func findByText(descs []menu.Descriptor, text string) (menu.Descriptor, bool) {
	for _, d := range descs {
		if !d.IsSeparator() && d.Label == text {
			return d, true
		}
	}
	return menu.Descriptor{}, false
}

// Equal is the domain equivalence between a live node and a descriptor:
// separators match only separators, labels match by text, items carrying a
// command match by command and deep-equal detail, anything else by text.
func Equal(n *menu.Node, d menu.Descriptor) bool {
	if n.IsSeparator() || d.IsSeparator() {
		return n.IsSeparator() && d.IsSeparator()
	}
	if n.Kind() == menu.KindLabel {
		return n.Text() == d.Label
	}
	if n.Command() != "" || d.Command != "" {
		return n.Command() == d.Command && detailEqual(n.Detail(), d.CommandDetail)
	}
	return n.Text() == d.Label
}

// detailEqual compares opaque payloads. cmp.Equal panics on structs with
// unexported fields, so those fall back to reflect.DeepEqual.
func detailEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()
	return cmp.Equal(a, b)
}

// SortLabel sorts the submenu of the top-level entry labelled text,
// case-insensitively by label. Other entries are returned as is.
func SortLabel(text string) PrePass {
	return func(root *menu.Node, descs []menu.Descriptor) []menu.Descriptor {
		if text == "" {
			return descs
		}
		out, copied := descs, false
		for i, d := range descs {
			if d.Label != text || len(d.Submenu) < 2 {
				continue
			}
			if !copied {
				out, copied = append([]menu.Descriptor(nil), descs...), true
			}
			sorted := append([]menu.Descriptor(nil), d.Submenu...)
			sort.SliceStable(sorted, func(a, b int) bool {
				return strings.ToLower(sorted[a].Label) < strings.ToLower(sorted[b].Label)
			})
			out[i].Submenu = sorted
		}
		return out
	}
}
