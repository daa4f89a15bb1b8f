package planning

import (
	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// AnnotatedNode pairs a stored requirement node with its recomputed
// hierarchy annotations.
type AnnotatedNode struct {
	Node        *entities.RequirementNode
	Level       int
	HasChildren bool
}

// BuildHierarchy annotates a run's flat node set with each node's depth
// level and child presence, preserving input order. An orphaned parent
// reference or a loop in the stored parent chain is a
// *entities.DataIntegrityError, never silently treated as top level.
func BuildHierarchy(runID entities.RunID, nodes []*entities.RequirementNode) ([]AnnotatedNode, error) {
	index := make(map[entities.NodeID]*entities.RequirementNode, len(nodes))
	hasChildren := make(map[entities.NodeID]bool)
	for _, n := range nodes {
		index[n.ID] = n
		if n.ParentID != nil {
			hasChildren[*n.ParentID] = true
		}
	}

	levels := make(map[entities.NodeID]int, len(nodes))

	var levelOf func(n *entities.RequirementNode, onPath map[entities.NodeID]bool) (int, error)
	levelOf = func(n *entities.RequirementNode, onPath map[entities.NodeID]bool) (int, error) {
		if level, ok := levels[n.ID]; ok {
			return level, nil
		}
		if n.ParentID == nil {
			levels[n.ID] = 0
			return 0, nil
		}
		if onPath[n.ID] {
			return 0, &entities.DataIntegrityError{
				RunID:  runID,
				NodeID: n.ID,
				Reason: "parent chain forms a loop",
			}
		}
		parent, ok := index[*n.ParentID]
		if !ok {
			return 0, &entities.DataIntegrityError{
				RunID:  runID,
				NodeID: n.ID,
				Reason: "parent reference points outside the run's node set",
			}
		}

		onPath[n.ID] = true
		parentLevel, err := levelOf(parent, onPath)
		if err != nil {
			return 0, err
		}
		delete(onPath, n.ID)

		levels[n.ID] = parentLevel + 1
		return parentLevel + 1, nil
	}

	annotated := make([]AnnotatedNode, 0, len(nodes))
	for _, n := range nodes {
		level, err := levelOf(n, make(map[entities.NodeID]bool))
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, AnnotatedNode{
			Node:        n,
			Level:       level,
			HasChildren: hasChildren[n.ID],
		})
	}

	return annotated, nil
}
