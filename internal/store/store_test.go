package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cuaderno.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return s
}

func TestLoadNotebookEmpty(t *testing.T) {
	s := openTestStore(t)
	nb, ok, err := s.LoadNotebook(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected no stored notebook")
	}
	if nb.Days == nil || len(nb.Days) != 0 {
		t.Fatalf("expected empty day list, got %#v", nb.Days)
	}
}

func TestSaveAndLoadNotebook(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	nb := model.Notebook{
		Config: &model.NotebookConfig{CompanyName: "Acme"},
		Days: []model.Day{
			{Date: "2025-01-06", Attended: true, Hours: 5, Activities: []string{"a"}},
		},
	}
	if err := s.SaveNotebook(ctx, nb); err != nil {
		t.Fatalf("save: %v", err)
	}
	nb.Days[0].Activities = []string{"a", "b"}
	if err := s.SaveNotebook(ctx, nb); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, ok, err := s.LoadNotebook(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, nb) {
		t.Fatalf("expected %+v, got %+v", nb, got)
	}
}

func TestCorruptNotebookIsKept(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Put(ctx, NotebookKey, `{"dias": "nope"}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, ok, err := s.LoadNotebook(ctx)
	if !errors.Is(err, ErrCorrupt) || ok {
		t.Fatalf("expected ErrCorrupt, got ok=%v err=%v", ok, err)
	}
	raw, found, err := s.Get(ctx, corruptKey)
	if err != nil || !found || raw != `{"dias": "nope"}` {
		t.Fatalf("expected raw value under %s, got %q (found=%v, err=%v)", corruptKey, raw, found, err)
	}
}

func TestThemeDefaultsToDark(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	theme, err := s.LoadTheme(ctx)
	if err != nil {
		t.Fatalf("load theme: %v", err)
	}
	if theme != model.ThemeDark {
		t.Fatalf("expected dark, got %s", theme)
	}
	if err := s.SaveTheme(ctx, model.ThemeLight); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if theme, _ := s.LoadTheme(ctx); theme != model.ThemeLight {
		t.Fatalf("expected light, got %s", theme)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuaderno.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveTheme(context.Background(), model.ThemeLight); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	s, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if theme, _ := s.LoadTheme(context.Background()); theme != model.ThemeLight {
		t.Fatalf("expected light after reopen, got %s", theme)
	}
}
