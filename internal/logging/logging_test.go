package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cuaderno.log")
	logger, closer, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Printf("hello %s", "world")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), Prefix) || !strings.Contains(string(data), "hello world") {
		t.Fatalf("unexpected log content: %q", data)
	}
}

func TestNewEmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Printf("dropped")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestGooseFatalfDoesNotExit(t *testing.T) {
	var buf bytes.Buffer
	g := Goose{L: log.New(&buf, "", 0)}
	g.Fatalf("migration %d failed", 3)
	g.Printf("applied %d", 1)
	if got := buf.String(); got != "fatal: migration 3 failed\napplied 1\n" {
		t.Fatalf("unexpected output: %q", got)
	}
	Goose{}.Printf("no logger")
}
