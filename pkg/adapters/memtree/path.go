package memtree

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Paths are slash-segmented and relative: "" or "." addresses the node
// itself, ".." its parent, and any other segment a child object by key.
// Examples: "./child", "../sibling", "./a/b".

// Resolve implements ports.Node.
func (n *node) Resolve(path string) (ports.Node, error) {
	target, err := n.walk(path)
	if err != nil {
		return nil, err
	}
	return target, nil
}

// TryResolve implements ports.Node.
func (n *node) TryResolve(path string) ports.Node {
	target, err := n.walk(path)
	if err != nil {
		return nil
	}
	return target
}

func (n *node) walk(path string) (*node, error) {
	cur := n
	trimmed := strings.TrimSpace(path)
	if trimmed != "" {
		for _, segment := range strings.Split(trimmed, "/") {
			switch segment {
			case "", ".":
				continue
			case "..":
				if cur.parent == nil {
					return nil, &domain.InvalidPathError{Path: path, Err: fmt.Errorf("no parent above the root")}
				}
				cur = cur.parent
			default:
				child, ok := cur.value.children[segment]
				if !ok {
					return nil, &domain.InvalidPathError{Path: path, Err: fmt.Errorf("no child %q at %q", segment, cur.lastKnownPath())}
				}
				cur = child.node
			}
		}
	}
	if !cur.alive {
		return nil, &domain.InvalidPathError{Path: path, Err: cur.AssertAlive()}
	}
	return cur, nil
}

// RelativePathTo implements ports.Node. Both nodes must belong to the same
// tree; the result is "" for the node itself, "./..." for descendants and a
// ".."-prefixed path otherwise.
func (n *node) RelativePathTo(other ports.Node) (string, error) {
	target, ok := other.(*node)
	if !ok {
		return "", fmt.Errorf("node belongs to a different tree implementation (%T)", other)
	}
	if target.tree != n.tree {
		return "", fmt.Errorf("nodes belong to different trees")
	}

	fromChain := n.ancestry()
	toChain := target.ancestry()

	common := 0
	for common < len(fromChain) && common < len(toChain) && fromChain[common] == toChain[common] {
		common++
	}

	ups := len(fromChain) - common
	var segments []string
	for i := 0; i < ups; i++ {
		segments = append(segments, "..")
	}
	for _, ancestor := range toChain[common:] {
		segments = append(segments, ancestor.key)
	}

	if len(segments) == 0 {
		return "", nil
	}
	if segments[0] != ".." {
		return "./" + strings.Join(segments, "/"), nil
	}
	return strings.Join(segments, "/"), nil
}

// ancestry returns the chain from the root down to the node, inclusive.
func (n *node) ancestry() []*node {
	var chain []*node
	for cur := n; cur != nil; cur = cur.parent {
		chain = append([]*node{cur}, chain...)
	}
	return chain
}
