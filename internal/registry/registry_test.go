package registry

import (
	"errors"
	"reflect"
	"testing"
)

type staticSource []string

func (s staticSource) ListIDs() ([]string, error) {
	return s, nil
}

type failingSource struct{ err error }

func (s failingSource) ListIDs() ([]string, error) {
	return nil, s.err
}

func static(ids ...string) Factory {
	return func() (Source, error) { return staticSource(ids), nil }
}

func TestRegisterAndList(t *testing.T) {
	Register("test-list-b", "Pack B", static("one"))
	Register("test-list-a", "", static("one", "two"))

	if !Exists("test-list-a") || !Exists("test-list-b") {
		t.Fatal("registered packs should exist")
	}
	if Exists("test-list-c") {
		t.Error("unregistered pack should not exist")
	}

	var ids []string
	for _, p := range List() {
		if p.ID == "test-list-a" || p.ID == "test-list-b" {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "test-list-a" {
		t.Errorf("expected sorted pack list, got %v", ids)
	}

	if Title("test-list-b") != "Pack B" {
		t.Errorf("unexpected title %q", Title("test-list-b"))
	}
	if Title("test-list-a") != "test-list-a" {
		t.Errorf("empty title should fall back to ID, got %q", Title("test-list-a"))
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := static()
	Register("test-dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", "Dup", f)
}

func TestLoadUnknownAndFailing(t *testing.T) {
	if _, err := Load("test-missing"); err == nil {
		t.Error("expected error for unknown pack")
	}

	boom := errors.New("boom")
	Register("test-failing", "Failing", func() (Source, error) { return nil, boom })
	if _, err := Load("test-failing"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped factory error, got %v", err)
	}
}

func TestLevelIDs(t *testing.T) {
	boom := errors.New("unreadable")
	Register("test-ids", "IDs", static("01", "02"))
	Register("test-ids-empty", "Empty", static())
	Register("test-ids-broken", "Broken", func() (Source, error) { return failingSource{boom}, nil })

	tests := []struct {
		name    string
		pack    string
		want    []string
		wantErr error
	}{
		{"levels", "test-ids", []string{"01", "02"}, nil},
		{"empty pack", "test-ids-empty", nil, nil},
		{"source error", "test-ids-broken", nil, boom},
		{"unknown pack", "test-ids-missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LevelIDs(tt.pack)
			if tt.want != nil {
				if err != nil {
					t.Fatalf("LevelIDs: %v", err)
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("LevelIDs = %v, want %v", got, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected wrapped %v, got %v", tt.wantErr, err)
			}
		})
	}
}
