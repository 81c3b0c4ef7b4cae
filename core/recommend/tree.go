// Package recommend maps questionnaire answers to a recommended neighborhood.
//
// The decision table is static data: a tree of question nodes whose options lead either to
// further questions or to leaves carrying a neighborhood id. It is built once at init and
// shared read-only by every request.
package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Option is one labeled answer of a question node.
type Option struct {
	Value string
	Label string
	Next  *Node
}

// Node is either a question node (Question + Options) or a leaf (Neighborhood).
type Node struct {
	Question     string
	Options      []Option
	Neighborhood string
}

// IsQuestion reports whether n asks a question.
func (n *Node) IsQuestion() bool {
	return n.Question != ""
}

// IsLeaf reports whether n carries a recommendation.
func (n *Node) IsLeaf() bool {
	return n.Neighborhood != ""
}

// Branch returns the child reached by answering `value`. Option values are stored lowercase.
func (n *Node) Branch(value string) (*Node, bool) {
	for _, opt := range n.Options {
		if opt.Value == value {
			return opt.Next, opt.Next != nil
		}
	}
	return nil, false
}

// Validate checks that every node of the subtree is exactly one of question or leaf
// and that option values are lowercase and unique.
func (n *Node) Validate() error {
	return n.validate("root")
}

func (n *Node) validate(path string) error {
	switch {
	case n.IsQuestion() && n.IsLeaf():
		return fmt.Errorf("%s: node is both a question and a leaf", path)
	case n.IsLeaf() && len(n.Options) > 0:
		return fmt.Errorf("%s: leaf has options", path)
	case n.IsQuestion() && len(n.Options) == 0:
		return fmt.Errorf("%s: question has no options", path)
	}

	seen := make(map[string]bool, len(n.Options))
	for _, opt := range n.Options {
		p := path + "/" + opt.Value
		if opt.Value != strings.ToLower(opt.Value) {
			return fmt.Errorf("%s: option value must be lowercase", p)
		}
		if seen[opt.Value] {
			return fmt.Errorf("%s: duplicate option", p)
		}
		seen[opt.Value] = true
		if opt.Next == nil {
			return fmt.Errorf("%s: option has no child", p)
		}
		if err := opt.Next.validate(p); err != nil {
			return err
		}
	}
	return nil
}

// LeafPath is the answer sequence leading from the root to a leaf.
type LeafPath struct {
	Answers      []string
	Neighborhood string
}

// Leaves enumerates every leaf reachable from n, depth first in option order.
func (n *Node) Leaves() []LeafPath {
	var paths []LeafPath
	var walk func(node *Node, prefix []string)
	walk = func(node *Node, prefix []string) {
		if node.IsLeaf() {
			paths = append(paths, LeafPath{Answers: prefix, Neighborhood: node.Neighborhood})
			return
		}
		for _, opt := range node.Options {
			answers := make([]string, len(prefix), len(prefix)+1)
			copy(answers, prefix)
			walk(opt.Next, append(answers, opt.Value))
		}
	}
	walk(n, nil)
	return paths
}

var (
	defaultTree          = buildTree()
	defaultNeighborhoods = leafNeighborhoods(defaultTree)
)

func init() {
	if err := defaultTree.Validate(); err != nil {
		panic("recommend: invalid decision tree: " + err.Error())
	}
}

// Tree returns the shared decision tree. Callers must not modify it.
func Tree() *Node {
	return defaultTree
}

// Neighborhoods returns the sorted distinct neighborhood ids of the decision tree.
func Neighborhoods() []string {
	out := make([]string, len(defaultNeighborhoods))
	copy(out, defaultNeighborhoods)
	return out
}

// IsKnownNeighborhood reports whether id is a leaf of the decision tree.
func IsKnownNeighborhood(id string) bool {
	i := sort.SearchStrings(defaultNeighborhoods, id)
	return i < len(defaultNeighborhoods) && defaultNeighborhoods[i] == id
}

func leafNeighborhoods(root *Node) []string {
	set := make(map[string]struct{})
	for _, leaf := range root.Leaves() {
		set[leaf.Neighborhood] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
