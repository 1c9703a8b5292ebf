package prompt

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

func TestIsCanceled(t *testing.T) {
	if !IsCanceled(errCanceled) {
		t.Fatal("IsCanceled(errCanceled) = false, want true")
	}

	if !IsCanceled(errors.Join(errors.New("other"), errCanceled)) {
		t.Fatal("IsCanceled(wrapped errCanceled) = false, want true")
	}

	if IsCanceled(errors.New("not canceled")) {
		t.Fatal("IsCanceled(unrelated error) = true, want false")
	}
}

func TestReadLine_EOFIsCanceled(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := readLine(reader)
	if !IsCanceled(err) {
		t.Fatalf("readLine() on EOF = %v, want canceled", err)
	}
}

func TestReadLine_ReturnsLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("hello\nworld\n"))

	line, err := readLine(reader)
	if err != nil {
		t.Fatalf("readLine() error = %v", err)
	}

	if line != "hello\n" {
		t.Errorf("readLine() = %q, want %q", line, "hello\n")
	}
}
