// Package diff computes edit scripts between an ordered sequence of live
// values and an ordered sequence of descriptors, under a caller-supplied
// equivalence predicate.
package diff

// Kind is the operation type of a single script step.
type Kind int

const (
	// Keep consumes one element from each side without mutation.
	Keep Kind = iota
	// Delete consumes one old element and removes it.
	Delete
	// Insert consumes one new element and inserts a value built from it.
	Insert
	// Replace consumes one element from each side, swapping old for new in
	// place.
	Replace
)

func (k Kind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Op is one step of a script. Old and New index into the inputs of Compute;
// an index is -1 when the operation does not consume from that side.
type Op struct {
	Kind Kind
	Old  int
	New  int
}

// Script is an ordered, left-to-right list of operations. It can be applied
// with two cursors: one over the live sequence, one over the descriptors.
type Script []Op

// Edits returns the number of non-Keep operations.
func (s Script) Edits() int {
	n := 0
	for _, op := range s {
		if op.Kind != Keep {
			n++
		}
	}
	return n
}

// Count returns the number of operations of kind k.
func (s Script) Count(k Kind) int {
	n := 0
	for _, op := range s {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Compute returns a minimal script (unit cost per non-Keep operation) that
// turns old into new. Among scripts of equal cost the one keeping the most
// elements wins, so matched values survive whenever they can; remaining ties
// resolve to Keep, then Replace, then Delete, then Insert.
func Compute[O, N any](old []O, new []N, eq func(O, N) bool) Script {
	rows, cols := len(old)+1, len(new)+1
	table := make([][]cost, rows)
	for i := range table {
		table[i] = make([]cost, cols)
		table[i][0] = cost{edits: i}
	}
	for j := 0; j < cols; j++ {
		table[0][j] = cost{edits: j}
	}

	// match caches eq so the backtrace does not call the predicate twice.
	match := make([][]bool, len(old))
	for i := range old {
		match[i] = make([]bool, len(new))
		for j := range new {
			match[i][j] = eq(old[i], new[j])
		}
	}

	diag := func(i, j int) cost {
		c := table[i-1][j-1]
		if match[i-1][j-1] {
			c.keeps++
		} else {
			c.edits++
		}
		return c
	}
	up := func(i, j int) cost { return table[i-1][j].plusEdit() }
	left := func(i, j int) cost { return table[i][j-1].plusEdit() }

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			best := diag(i, j)
			if c := up(i, j); c.better(best) {
				best = c
			}
			if c := left(i, j); c.better(best) {
				best = c
			}
			table[i][j] = best
		}
	}

	script := make(Script, 0, max(len(old), len(new)))
	i, j := len(old), len(new)
	for i > 0 || j > 0 {
		target := table[i][j]
		switch {
		case i > 0 && j > 0 && diag(i, j) == target:
			kind := Replace
			if match[i-1][j-1] {
				kind = Keep
			}
			script = append(script, Op{Kind: kind, Old: i - 1, New: j - 1})
			i, j = i-1, j-1
		case i > 0 && up(i, j) == target:
			script = append(script, Op{Kind: Delete, Old: i - 1, New: -1})
			i--
		default:
			script = append(script, Op{Kind: Insert, Old: -1, New: j - 1})
			j--
		}
	}
	for l, r := 0, len(script)-1; l < r; l, r = l+1, r-1 {
		script[l], script[r] = script[r], script[l]
	}
	return script
}

type cost struct {
	edits int
	keeps int
}

func (c cost) plusEdit() cost {
	c.edits++
	return c
}

func (c cost) better(o cost) bool {
	if c.edits != o.edits {
		return c.edits < o.edits
	}
	return c.keeps > o.keeps
}

// Apply runs script over a copy of old, building inserted values with create.
// The reconciler performs the same walk against live children; Apply is the
// plain-slice version used to check scripts.
func Apply[O, N any](old []O, new []N, script Script, create func(N) O) []O {
	out := make([]O, 0, len(new))
	for _, op := range script {
		switch op.Kind {
		case Keep:
			out = append(out, old[op.Old])
		case Insert, Replace:
			out = append(out, create(new[op.New]))
		case Delete:
		}
	}
	return out
}
