package service

import (
	"menu-tree-be/internal/entity"

	"github.com/google/uuid"
)

// buildForest links a flat, already ordered row set into root nodes.
// A node whose parent is not in the set becomes a root. The input rows are not modified.
func buildForest(rows []*entity.Menu) []*entity.Menu {
	lookup := make(map[uuid.UUID]*entity.Menu, len(rows))
	nodes := make([]*entity.Menu, 0, len(rows))
	for _, row := range rows {
		node := row.Clone()
		node.Children = make([]*entity.Menu, 0)
		lookup[node.Id] = node
		nodes = append(nodes, node)
	}

	roots := make([]*entity.Menu, 0)
	for _, node := range nodes {
		if node.ParentId != nil {
			if parent, ok := lookup[*node.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				node.Parent = parent
				continue
			}
		}
		roots = append(roots, node)
	}

	// Rows caught in a stored cycle are unreachable from any root. Detach the
	// first one of each cycle so every row still appears exactly once.
	reached := make(map[uuid.UUID]bool, len(nodes))
	for _, root := range roots {
		markReached(root, reached)
	}
	for _, node := range nodes {
		if reached[node.Id] {
			continue
		}
		detach(node)
		roots = append(roots, node)
		markReached(node, reached)
	}

	for _, node := range nodes {
		node.Parent = nil
	}
	return roots
}

func markReached(node *entity.Menu, reached map[uuid.UUID]bool) {
	stack := []*entity.Menu{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[n.Id] {
			continue
		}
		reached[n.Id] = true
		stack = append(stack, n.Children...)
	}
}

func detach(node *entity.Menu) {
	parent := node.Parent
	if parent == nil {
		return
	}
	kept := parent.Children[:0]
	for _, child := range parent.Children {
		if child != node {
			kept = append(kept, child)
		}
	}
	parent.Children = kept
	node.Parent = nil
}
