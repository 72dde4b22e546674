package thread

import "testing"

func TestCreate_PrependsSystemMessage(t *testing.T) {
	s := NewStore("you are helpful")
	id := s.Create("demo")
	if id != "demo" {
		t.Fatalf("unexpected id: %s", id)
	}
	msgs := s.Messages(id)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[0].Content != "you are helpful" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
}

func TestCreate_GeneratesSequentialIDs(t *testing.T) {
	s := NewStore("sys")
	if id := s.Create(""); id != "thread_1" {
		t.Fatalf("unexpected first id: %s", id)
	}
	if id := s.Create(""); id != "thread_2" {
		t.Fatalf("unexpected second id: %s", id)
	}
}

func TestCreate_ExistingIDIsNoOp(t *testing.T) {
	s := NewStore("sys")
	s.Create("demo")
	s.Append("demo", RoleUser, "hello")
	s.Create("demo")
	if n := s.Len("demo"); n != 2 {
		t.Fatalf("re-create changed thread, len=%d", n)
	}
}

func TestAppend_CreatesMissingThread(t *testing.T) {
	s := NewStore("sys")
	s.Append("lazy", RoleUser, "hi")
	msgs := s.Messages("lazy")
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem {
		t.Fatalf("expected system message first, got %s", msgs[0].Role)
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "hi" {
		t.Fatalf("unexpected appended message: %+v", msgs[1])
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	s := NewStore("sys")
	s.Append("demo", RoleUser, "one")
	s.Append("demo", RoleAssistant, "two")
	s.Append("demo", RoleUser, "three")
	msgs := s.Messages("demo")
	want := []string{"", "one", "two", "three"}
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i := 1; i < len(want); i++ {
		if msgs[i].Content != want[i] {
			t.Fatalf("message %d: got %q want %q", i, msgs[i].Content, want[i])
		}
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := NewStore("sys")
	s.Append("demo", RoleUser, "original")
	msgs := s.Messages("demo")
	msgs[1].Content = "mutated"
	if got := s.Messages("demo")[1].Content; got != "original" {
		t.Fatalf("store mutated through returned slice: %s", got)
	}
}

func TestMessages_UnknownIDIsNil(t *testing.T) {
	s := NewStore("sys")
	if msgs := s.Messages("nope"); msgs != nil {
		t.Fatalf("expected nil, got %+v", msgs)
	}
}

func TestSetLastContent(t *testing.T) {
	s := NewStore("sys")
	s.Append("demo", RoleUser, "plain")
	s.SetLastContent("demo", "enhanced")
	msgs := s.Messages("demo")
	if msgs[len(msgs)-1].Content != "enhanced" {
		t.Fatalf("unexpected last content: %s", msgs[len(msgs)-1].Content)
	}
	// Unknown id must not panic.
	s.SetLastContent("nope", "x")
}
