package backend

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestNetworkErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("refresh: %w", &NetworkError{Op: "fetch tasks", Err: io.ErrUnexpectedEOF})
	if !IsNetwork(err) {
		t.Fatal("expected wrapped network error to be detected")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("expected cause to be reachable")
	}
	if IsNetwork(ErrNotFound) {
		t.Fatal("not found is not a network error")
	}
	want := "backend: fetch tasks: network error: unexpected EOF"
	var netErr *NetworkError
	if !errors.As(err, &netErr) || netErr.Error() != want {
		t.Fatalf("unexpected message %v", err)
	}
}
