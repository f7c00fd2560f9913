// Package pathtree derives an ephemeral directory trie from the flat set of
// slash-delimited bookmark paths belonging to one owner. The trie is rebuilt
// per request and never persisted.
package pathtree

import "strings"

// Tree is a nested mapping of path segment to subtree. A segment that
// terminates a path maps to an empty Tree. Sibling order is undefined.
type Tree map[string]Tree

// New returns an empty tree.
func New() Tree {
	return Tree{}
}

// Build constructs a tree from the given path strings. Empty paths are
// skipped; empty segments produced by leading, trailing, or doubled slashes
// are silently dropped, so "a//b" and "/a/b/" insert the same nodes as "a/b".
func Build(paths []string) Tree {
	tree := New()
	for _, p := range paths {
		tree.Insert(p)
	}
	return tree
}

// Insert adds one path to the tree. Insertion is idempotent: inserting the
// same path twice changes nothing, and inserting a prefix of an existing
// path leaves the deeper nodes intact.
func (t Tree) Insert(path string) {
	if path == "" {
		return
	}
	node := t
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		child, ok := node[segment]
		if !ok {
			child = Tree{}
			node[segment] = child
		}
		node = child
	}
}

// Contains reports whether every segment of path already exists in the tree.
func (t Tree) Contains(path string) bool {
	node := t
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		child, ok := node[segment]
		if !ok {
			return false
		}
		node = child
	}
	return true
}

// IsEmpty reports whether the tree has no nodes.
func (t Tree) IsEmpty() bool {
	return len(t) == 0
}
