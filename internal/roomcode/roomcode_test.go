package roomcode

import (
	"testing"
)

type seqSource struct {
	vals []int
	idx  int
}

func (s *seqSource) IntN(n int) int {
	v := s.vals[s.idx%len(s.vals)] % n
	s.idx++
	return v
}

func TestGenerate(t *testing.T) {
	id := Generate()

	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated code failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	codes := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := Generate()
		if codes[code] {
			t.Fatalf("duplicate code generated: %s", code)
		}
		codes[code] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewGenerator(&seqSource{vals: []int{0, 1, 2, 3, 4}})
	if got := g.Generate(); got != "23456" {
		t.Errorf("expected 23456, got %s", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  ab2cd "); got != "AB2CD" {
		t.Errorf("expected AB2CD, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "ABC23", false},
		{"too short", "ABC", true},
		{"too long", "ABC234", true},
		{"ambiguous letter", "ABCO2", true},
		{"lowercase", "abc23", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}
