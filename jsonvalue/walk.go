package jsonvalue

import (
	"slices"

	"github.com/erraggy/swagrec/internal/pathutil"
)

// Location identifies a node reached during Walk. Locations form a chain back
// to the root and are only rendered to strings on demand.
type Location struct {
	parent  *Location
	key     string
	index   int
	isIndex bool
}

// Parent returns the enclosing location, or nil at the root.
func (l *Location) Parent() *Location {
	if l == nil {
		return nil
	}
	return l.parent
}

// Key returns the object key of this step and whether the step is a key.
func (l *Location) Key() (string, bool) {
	if l == nil || l.parent == nil || l.isIndex {
		return "", false
	}
	return l.key, true
}

// Depth returns the number of steps from the root.
func (l *Location) Depth() int {
	n := 0
	for cur := l; cur != nil && cur.parent != nil; cur = cur.parent {
		n++
	}
	return n
}

func (l *Location) steps() []*Location {
	var out []*Location
	for cur := l; cur != nil && cur.parent != nil; cur = cur.parent {
		out = append(out, cur)
	}
	slices.Reverse(out)
	return out
}

// String renders the location in dotted form, e.g. "paths./pets.get.responses".
func (l *Location) String() string {
	pb := l.builder()
	defer pathutil.Put(pb)
	return pb.String()
}

// Pointer renders the location as a JSON Pointer fragment, e.g.
// "#/paths/~1pets/get".
func (l *Location) Pointer() string {
	pb := l.builder()
	defer pathutil.Put(pb)
	return pb.Pointer()
}

func (l *Location) builder() *pathutil.PathBuilder {
	pb := pathutil.Get()
	for _, step := range l.steps() {
		if step.isIndex {
			pb.PushIndex(step.index)
		} else {
			pb.Push(step.key)
		}
	}
	return pb
}

// WalkFunc is called for every value visited by Walk. Returning false skips
// the children of v.
type WalkFunc func(loc *Location, v Value) bool

// Walk visits root and all of its descendants in document order (pre-order).
//
// Traversal uses an explicit stack, so arbitrarily deep trees do not grow the
// goroutine stack.
func Walk(root Value, fn WalkFunc) {
	type frame struct {
		loc *Location
		v   Value
	}
	stack := []frame{{loc: &Location{}, v: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.loc, top.v) {
			continue
		}
		switch top.v.kind {
		case KindArray:
			for i := len(top.v.arr) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					loc: &Location{parent: top.loc, index: i, isIndex: true},
					v:   top.v.arr[i],
				})
			}
		case KindObject:
			members := top.v.obj.members
			for i := len(members) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					loc: &Location{parent: top.loc, key: members[i].Key},
					v:   members[i].Value,
				})
			}
		}
	}
}
