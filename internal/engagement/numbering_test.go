package engagement

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/model"
)

type commentBuilder struct {
	t0       time.Time
	seq      int
	comments []*model.Comment
}

func (b *commentBuilder) add(parent *model.Comment) *model.Comment {
	b.seq++
	c := &model.Comment{
		ID:        uuid.New(),
		PostID:    uuid.Nil,
		CreatedAt: b.t0.Add(time.Duration(b.seq) * time.Minute),
	}
	if parent != nil {
		id := parent.ID
		c.ParentID = &id
	}
	b.comments = append(b.comments, c)
	return c
}

func TestNumberCommentsEmpty(t *testing.T) {
	if got := NumberComments(nil); len(got) != 0 {
		t.Fatalf("expected empty forest, got %d nodes", len(got))
	}
}

func TestNumberCommentsTopLevelOrder(t *testing.T) {
	b := &commentBuilder{t0: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	first := b.add(nil)
	second := b.add(nil)
	third := b.add(nil)

	// Feed them out of order; numbering must follow creation time.
	nodes := NumberComments([]*model.Comment{third, first, second})
	if len(nodes) != 3 {
		t.Fatalf("got %d roots, want 3", len(nodes))
	}
	for i, want := range []uuid.UUID{first.ID, second.ID, third.ID} {
		if nodes[i].ID != want {
			t.Fatalf("root %d out of creation order", i)
		}
		if nodes[i].DisplayNumber != fmt.Sprintf("B%d", i+1) {
			t.Fatalf("root %d label = %s", i, nodes[i].DisplayNumber)
		}
	}
}

func TestNumberCommentsFlattensByCreationTime(t *testing.T) {
	b := &commentBuilder{t0: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	root := b.add(nil)      // B1
	direct := b.add(root)   // B1-1, direct reply
	nested := b.add(direct) // B1-2, reply to B1-1
	later := b.add(root)    // B1-3, direct reply posted after the nested one
	deep := b.add(nested)   // B1-4, depth 3

	nodes := NumberComments(b.comments)
	if len(nodes) != 1 {
		t.Fatalf("got %d roots, want 1", len(nodes))
	}
	replies := nodes[0].Replies
	if len(replies) != 4 {
		t.Fatalf("got %d replies, want 4", len(replies))
	}

	wantOrder := []uuid.UUID{direct.ID, nested.ID, later.ID, deep.ID}
	for i, r := range replies {
		if r.ID != wantOrder[i] {
			t.Fatalf("reply %d out of creation order", i)
		}
		want := fmt.Sprintf("B1-%d", i+1)
		if r.DisplayNumber != want {
			t.Fatalf("reply %d label = %s, want %s", i, r.DisplayNumber, want)
		}
	}

	// Direct replies carry no reply-to marker; nested ones point at their
	// parent's label.
	if replies[0].ReplyToNumber != "" || replies[2].ReplyToNumber != "" {
		t.Fatalf("direct replies must not carry reply-to labels")
	}
	if replies[1].ReplyToNumber != "B1-1" {
		t.Fatalf("nested reply reply-to = %q, want B1-1", replies[1].ReplyToNumber)
	}
	if replies[3].ReplyToNumber != "B1-2" {
		t.Fatalf("deep reply reply-to = %q, want B1-2", replies[3].ReplyToNumber)
	}
}

func TestNumberCommentsLabelsUniqueAndGapless(t *testing.T) {
	b := &commentBuilder{t0: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	var parents []*model.Comment
	for i := 0; i < 3; i++ {
		parents = append(parents, b.add(nil))
	}
	// A messy forest: replies at alternating depths under each root.
	for i := 0; i < 15; i++ {
		parent := parents[i%len(parents)]
		parents = append(parents, b.add(parent))
	}

	nodes := NumberComments(b.comments)
	seen := make(map[string]bool)
	total := 0
	for _, root := range nodes {
		if seen[root.DisplayNumber] {
			t.Fatalf("duplicate label %s", root.DisplayNumber)
		}
		seen[root.DisplayNumber] = true
		total++
		for k, r := range root.Replies {
			want := fmt.Sprintf("%s-%d", root.DisplayNumber, k+1)
			if r.DisplayNumber != want {
				t.Fatalf("gap in labels: got %s, want %s", r.DisplayNumber, want)
			}
			if seen[r.DisplayNumber] {
				t.Fatalf("duplicate label %s", r.DisplayNumber)
			}
			seen[r.DisplayNumber] = true
			total++
		}
	}
	if total != len(b.comments) {
		t.Fatalf("numbered %d comments, want %d", total, len(b.comments))
	}
}

func TestNumberCommentsAppendStable(t *testing.T) {
	b := &commentBuilder{t0: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	root := b.add(nil)
	b.add(root)
	reply := b.add(root)

	before := NumberComments(b.comments)
	labels := make(map[uuid.UUID]string)
	for _, r := range before[0].Replies {
		labels[r.ID] = r.DisplayNumber
	}

	// New comments only append labels; existing ones keep theirs.
	b.add(reply)
	b.add(nil)
	after := NumberComments(b.comments)
	for _, r := range after[0].Replies {
		if want, ok := labels[r.ID]; ok && r.DisplayNumber != want {
			t.Fatalf("label shifted from %s to %s", want, r.DisplayNumber)
		}
	}
}
