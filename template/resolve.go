package template

import (
	"strconv"
	"strings"

	"github.com/teranos/arcana/errors"
)

// RefKey marks a reference object: {"$ref": "fonts.main"} is replaced by
// the subtree at that dotted path. Sibling keys of "$ref" are discarded.
const RefKey = "$ref"

// Resolve returns a copy of doc with every reference object replaced by
// its target, itself resolved. Paths are dotted keys from the document
// root; numeric segments index lists ("points.0.x").
//
// A path that does not exist fails with errors.ErrNotFound and a reference
// chain that leads back to itself fails with errors.ErrCyclicReference.
// Resolving a resolved document returns an equal document.
func Resolve(doc Document) (Document, error) {
	r := &resolver{
		root:   map[string]any(doc),
		done:   map[string]any{},
		active: map[string]bool{},
	}
	out, err := r.value(map[string]any(doc))
	if err != nil {
		return nil, err
	}
	return Document(out.(map[string]any)), nil
}

type resolver struct {
	root   map[string]any
	done   map[string]any
	active map[string]bool
	chain  []string
}

func (r *resolver) value(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := t[RefKey]; ok {
			path, ok := ref.(string)
			if !ok {
				return nil, errors.NewInvalidArgumentError("%s must be a string, got %T", RefKey, ref)
			}
			return r.follow(path)
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			resolved, err := r.value(val)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			resolved, err := r.value(val)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	}
	return v, nil
}

// follow resolves the target of one reference, memoised by path.
func (r *resolver) follow(path string) (any, error) {
	if v, ok := r.done[path]; ok {
		return v, nil
	}
	if r.active[path] {
		return nil, errors.Mark(
			errors.Newf("cyclic $ref: %s -> %s", strings.Join(r.chain, " -> "), path),
			errors.ErrCyclicReference,
		)
	}
	r.active[path] = true
	r.chain = append(r.chain, path)
	defer func() {
		delete(r.active, path)
		r.chain = r.chain[:len(r.chain)-1]
	}()

	target, err := r.lookup(path)
	if err != nil {
		return nil, err
	}
	resolved, err := r.value(target)
	if err != nil {
		return nil, err
	}
	r.done[path] = resolved
	return resolved, nil
}

// lookup walks path from the root. Reference objects met on the way are
// followed so that a path may run through another reference.
func (r *resolver) lookup(path string) (any, error) {
	if path == "" {
		return nil, errors.NewInvalidArgumentError("empty %s path", RefKey)
	}
	var cur any = r.root
	walked := make([]string, 0, strings.Count(path, ".")+1)
	for _, seg := range strings.Split(path, ".") {
		if m, ok := cur.(map[string]any); ok {
			if ref, isRef := m[RefKey].(string); isRef {
				next, err := r.follow(ref)
				if err != nil {
					return nil, err
				}
				cur = next
			}
		}
		walked = append(walked, seg)

		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, errors.NewNotFoundError("$ref %q: no key %q at %s", path, seg, strings.Join(walked, "."))
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, errors.NewNotFoundError("$ref %q: no index %q at %s (list of %d)", path, seg, strings.Join(walked, "."), len(node))
			}
			cur = node[i]
		default:
			return nil, errors.NewNotFoundError("$ref %q: %s is a scalar", path, strings.Join(walked[:len(walked)-1], "."))
		}
	}
	return cur, nil
}

// Lookup returns the value at a dotted path in an already resolved document.
func (d Document) Lookup(path string) (any, error) {
	r := &resolver{root: map[string]any(d), done: map[string]any{}, active: map[string]bool{}}
	return r.lookup(path)
}
