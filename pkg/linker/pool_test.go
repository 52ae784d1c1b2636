package linker_test

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"testing"

	"speaker-linker/pkg/linker"
)

func TestPool_ClaimInOrderOnce(t *testing.T) {
	t.Parallel()

	p := linker.NewPool([]string{"ann", "bob", "anna"})
	startsWithA := func(s string) bool { return strings.HasPrefix(s, "a") }

	got, ok := p.Claim(startsWithA)
	if !ok || got != "ann" {
		t.Fatalf("Claim() = %q, %v, want %q", got, ok, "ann")
	}
	got, ok = p.Claim(startsWithA)
	if !ok || got != "anna" {
		t.Fatalf("second Claim() = %q, %v, want %q", got, ok, "anna")
	}
	if _, ok := p.Claim(startsWithA); ok {
		t.Fatalf("third Claim() succeeded, want pool exhausted for prefix a")
	}

	if want := []string{"bob"}; !slices.Equal(p.Remaining(), want) {
		t.Errorf("Remaining() = %v, want %v", p.Remaining(), want)
	}
	if want := []string{"ann", "anna"}; !slices.Equal(p.Claimed(), want) {
		t.Errorf("Claimed() = %v, want %v", p.Claimed(), want)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestPool_ManyItems(t *testing.T) {
	t.Parallel()

	var items []string
	for i := range 150 {
		items = append(items, fmt.Sprintf("n%d", i))
	}
	p := linker.NewPool(items)
	for i := range 150 {
		if i%2 == 0 {
			want := fmt.Sprintf("n%d", i)
			if _, ok := p.Claim(func(s string) bool { return s == want }); !ok {
				t.Fatalf("Claim(%q) failed", want)
			}
		}
	}
	if p.Len() != 75 {
		t.Errorf("Len() = %d, want 75", p.Len())
	}
	if got := p.Remaining()[0]; got != "n1" {
		t.Errorf("Remaining()[0] = %q, want %q", got, "n1")
	}
}

func TestPool_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []string{"x"}
	p := linker.NewPool(in)
	in[0] = "y"
	if got, _ := p.Claim(func(string) bool { return true }); got != "x" {
		t.Errorf("Claim() = %q, want %q", got, "x")
	}
}

func TestScanStateTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from  linker.ScanState
		name  linker.ScanState
		label linker.ScanState
	}{
		{linker.Scanning, linker.NameHeld, linker.LabelHeld},
		{linker.NameHeld, linker.NameHeld, linker.Committed},
		{linker.LabelHeld, linker.Committed, linker.LabelHeld},
		{linker.Committed, linker.Committed, linker.Committed},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got := tt.from.HoldName(); got != tt.name {
				t.Errorf("%s.HoldName() = %s, want %s", tt.from, got, tt.name)
			}
			if got := tt.from.HoldLabel(); got != tt.label {
				t.Errorf("%s.HoldLabel() = %s, want %s", tt.from, got, tt.label)
			}
		})
	}
}

func TestMapping_OrderAndJSON(t *testing.T) {
	t.Parallel()

	var m linker.Mapping
	if err := json.Unmarshal([]byte(`{"Speaker2": "Bob", "Speaker1": "Ann", "Speaker3": "Cy"}`), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if want := []string{"Speaker2", "Speaker1", "Speaker3"}; !slices.Equal(m.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", m.Keys(), want)
	}

	m.Set("Speaker1", "Anne")
	out, err := json.Marshal(&m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"Speaker2":"Bob","Speaker1":"Anne","Speaker3":"Cy"}`; string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestMapping_RejectsNonObject(t *testing.T) {
	t.Parallel()

	var m linker.Mapping
	if err := json.Unmarshal([]byte(`["Speaker1"]`), &m); err == nil {
		t.Errorf("Unmarshal(array) error = nil, want error")
	}
	if err := json.Unmarshal([]byte(`{"Speaker1": 3}`), &m); err == nil {
		t.Errorf("Unmarshal(non-string value) error = nil, want error")
	}
}
