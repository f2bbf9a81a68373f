// Package cmdtree matches multi-key command sequences against a prefix
// trie, magit style: each keypress narrows the candidate set, a full
// sequence resolves to its action, and a dead-end clears the pending keys.
package cmdtree

import (
	"fmt"
	"sort"
	"strings"
)

type MatchKind int

const (
	NoMatch MatchKind = iota
	PartialMatch
	CompleteMatch
)

// Binding maps one key sequence to an action. Help and Group feed the
// pending-keys panel.
type Binding[T any] struct {
	Seq    []string
	Help   string
	Group  string
	Action T
}

func (b Binding[T]) keys() string {
	return strings.Join(b.Seq, " ")
}

type node[T any] struct {
	children map[string]*node[T]
	binding  *Binding[T]
}

// Trie holds the full binding set. Sequences may not prefix one another;
// New rejects such sets up front rather than letting one binding shadow
// the other at runtime.
type Trie[T any] struct {
	root *node[T]
}

func New[T any](bindings []Binding[T]) (*Trie[T], error) {
	t := &Trie[T]{root: &node[T]{children: map[string]*node[T]{}}}
	for i := range bindings {
		b := bindings[i]
		if len(b.Seq) == 0 {
			return nil, fmt.Errorf("binding %q has an empty key sequence", b.Help)
		}

		n := t.root
		for _, key := range b.Seq {
			if n.binding != nil {
				return nil, fmt.Errorf("binding %q is shadowed by shorter binding %q", b.keys(), n.binding.keys())
			}
			child, ok := n.children[key]
			if !ok {
				child = &node[T]{children: map[string]*node[T]{}}
				n.children[key] = child
			}
			n = child
		}
		if n.binding != nil || len(n.children) > 0 {
			return nil, fmt.Errorf("conflicting binding for %q", b.keys())
		}
		n.binding = &b
	}
	return t, nil
}

// Match is the outcome of feeding a key sequence. Action is set for a
// CompleteMatch; Pending lists the bindings still reachable after a
// PartialMatch, ordered for display.
type Match[T any] struct {
	Kind    MatchKind
	Action  T
	Pending []Binding[T]
}

// Feed resolves the pending key buffer. The caller owns the buffer: it
// appends each keypress and clears it on NoMatch or CompleteMatch.
func (t *Trie[T]) Feed(seq []string) Match[T] {
	n := t.root
	for _, key := range seq {
		child, ok := n.children[key]
		if !ok {
			return Match[T]{Kind: NoMatch}
		}
		n = child
	}

	if n.binding != nil {
		return Match[T]{Kind: CompleteMatch, Action: n.binding.Action}
	}
	return Match[T]{Kind: PartialMatch, Pending: collect(n)}
}

// Bindings returns every binding in the trie, ordered for display.
func (t *Trie[T]) Bindings() []Binding[T] {
	return collect(t.root)
}

// collect gathers the bindings below a node, grouped then sorted by key
// sequence within each group.
func collect[T any](n *node[T]) []Binding[T] {
	var out []Binding[T]
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n.binding != nil {
			out = append(out, *n.binding)
			return
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(n)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].keys() < out[j].keys()
	})
	return out
}
