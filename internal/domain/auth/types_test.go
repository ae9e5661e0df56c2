package auth

import "testing"

func TestState_IsAuthenticatedDerivedFromUser(t *testing.T) {
	var s State
	if s.IsAuthenticated() || s.Status() != StatusAnonymous {
		t.Fatalf("expected anonymous zero state")
	}
	s.User = &User{Username: "alice"}
	if !s.IsAuthenticated() || s.Status() != StatusAuthenticated {
		t.Fatalf("expected authenticated state")
	}
	if s.Username() != "alice" {
		t.Fatalf("unexpected username %q", s.Username())
	}
}

func TestUser_Valid(t *testing.T) {
	if (User{Username: "  "}).Valid() {
		t.Fatalf("blank username must be invalid")
	}
	if !(User{Username: "bob"}).Valid() {
		t.Fatalf("expected valid user")
	}
}
