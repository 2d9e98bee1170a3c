package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/mapledash/character-api/internal/core/domain"
)

func TestIdentityResolver_Resolve(t *testing.T) {
	up := newStubUpstream().on("/id", `{"ocid":"abc"}`)

	id, err := NewIdentityResolver(up, language.English, discardLogger).Resolve(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc" {
		t.Fatalf("expected abc, got %q", id)
	}
	if got := up.params["/id"].Get("character_name"); got != "Alice" {
		t.Fatalf("expected character_name=Alice, got %q", got)
	}
}

func TestIdentityResolver_NotFoundIsLocalized(t *testing.T) {
	up := newStubUpstream().on("/id", `{"ocid":""}`)

	_, err := NewIdentityResolver(up, language.English, discardLogger).Resolve(context.Background(), "Ghost")

	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if !strings.Contains(nf.Message, "Ghost") || !strings.Contains(nf.Message, "was not found") {
		t.Fatalf("unexpected message %q", nf.Message)
	}
}
