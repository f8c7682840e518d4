package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteEntities_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeEntities(&buf, true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	var got []entityInfo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 entities, got %d", len(got))
	}
	for _, e := range got {
		if len(e.Columns) == 0 {
			t.Fatalf("entity %s has no columns", e.Name)
		}
	}
}

func TestWriteEntities_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := writeEntities(&buf, false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(buf.String(), "profiles") {
		t.Fatalf("expected profiles in output:\n%s", buf.String())
	}
}

func TestRootRegistersCommands(t *testing.T) {
	want := map[string]bool{"migrate": false, "seed": false, "entities": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, ok := range want {
		if !ok {
			t.Fatalf("command %s not registered", name)
		}
	}
}
