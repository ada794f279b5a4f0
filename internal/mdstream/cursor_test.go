package mdstream

import "testing"

func TestCursorNext(t *testing.T) {
	events := []Event{
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindText, Text: "hello"},
		{Kind: KindEnd, Tag: TagParagraph},
	}
	cur := NewCursor(events)

	for i := range events {
		ev, ok := cur.Next()
		if !ok {
			t.Fatalf("stream ended early at %d", i)
		}
		if ev != events[i] {
			t.Errorf("event %d: got %v, want %v", i, ev, events[i])
		}
	}
	if _, ok := cur.Next(); ok {
		t.Error("expected the stream to be exhausted")
	}
	if _, ok := cur.Next(); ok {
		t.Error("an exhausted stream must stay exhausted")
	}
}

func TestCursorPushBack(t *testing.T) {
	cur := NewCursor([]Event{
		{Kind: KindText, Text: "a"},
		{Kind: KindText, Text: "b"},
	})

	first, _ := cur.Next()
	cur.PushBack(first)

	again, ok := cur.Next()
	if !ok || again != first {
		t.Errorf("expected the pushed-back event, got %v (ok=%v)", again, ok)
	}
	second, ok := cur.Next()
	if !ok || second.Text != "b" {
		t.Errorf("expected the following event, got %v (ok=%v)", second, ok)
	}
}

func TestCursorPushBackAtEnd(t *testing.T) {
	cur := NewCursor([]Event{{Kind: KindRule}})
	ev, _ := cur.Next()
	if _, ok := cur.Next(); ok {
		t.Fatal("expected exhaustion")
	}

	cur.PushBack(ev)
	back, ok := cur.Next()
	if !ok || back.Kind != KindRule {
		t.Errorf("expected the pushed-back event after exhaustion, got %v (ok=%v)", back, ok)
	}
}

func TestCursorDoublePushBackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on double pushback")
		}
	}()

	cur := NewCursor([]Event{{Kind: KindRule}})
	ev, _ := cur.Next()
	cur.PushBack(ev)
	cur.PushBack(ev)
}
