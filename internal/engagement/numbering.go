package engagement

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/model"
)

// CommentNode is a numbered comment ready for rendering. Top-level nodes carry
// their descendants (any depth) in Replies, flattened by creation time, which
// is exactly the order the labels are assigned in.
type CommentNode struct {
	*model.Comment
	DisplayNumber string `json:"display_number"`
	// ReplyToNumber is set only when the immediate parent is itself a reply,
	// so the UI can render "replying to B1-2". Direct replies to the top-level
	// comment leave it empty; the nesting already says it.
	ReplyToNumber string         `json:"reply_to_number,omitempty"`
	Replies       []*CommentNode `json:"replies,omitempty"`
}

// NumberComments assigns stable display labels to a post's comment forest.
// Top-level comments get B1..Bn in creation order; all descendants of each,
// regardless of depth, get B{n}-1..B{n}-k sorted by creation time. Labels are
// recomputed on every read and never persisted, so new comments append labels
// without shifting existing ones (creation time is a strictly increasing key
// within a thread).
func NumberComments(comments []*model.Comment) []*CommentNode {
	// Flat collection plus a parent index; traversal iterates the index
	// instead of chasing live parent references.
	childIndex := make(map[uuid.UUID][]*model.Comment)
	var topLevel []*model.Comment

	for _, c := range comments {
		if c.ParentID == nil {
			topLevel = append(topLevel, c)
		} else {
			childIndex[*c.ParentID] = append(childIndex[*c.ParentID], c)
		}
	}

	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt.Before(topLevel[j].CreatedAt)
	})

	roots := make([]*CommentNode, 0, len(topLevel))
	for i, root := range topLevel {
		base := fmt.Sprintf("B%d", i+1)
		node := &CommentNode{Comment: root, DisplayNumber: base}

		descendants := collectDescendants(root.ID, childIndex)
		sort.SliceStable(descendants, func(a, b int) bool {
			return descendants[a].CreatedAt.Before(descendants[b].CreatedAt)
		})

		numbered := make(map[uuid.UUID]string, len(descendants)+1)
		numbered[root.ID] = base

		for k, d := range descendants {
			label := fmt.Sprintf("%s-%d", base, k+1)
			numbered[d.ID] = label

			reply := &CommentNode{Comment: d, DisplayNumber: label}
			// Parents always precede children in creation order, so the
			// parent's label is already assigned here.
			if *d.ParentID != root.ID {
				reply.ReplyToNumber = numbered[*d.ParentID]
			}
			node.Replies = append(node.Replies, reply)
		}

		roots = append(roots, node)
	}

	return roots
}

// collectDescendants gathers every comment below rootID at any depth via BFS
// over the parent index.
func collectDescendants(rootID uuid.UUID, childIndex map[uuid.UUID][]*model.Comment) []*model.Comment {
	var out []*model.Comment
	queue := []uuid.UUID{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range childIndex[id] {
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}
