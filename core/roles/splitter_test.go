package roles

import (
	"reflect"
	"testing"

	"defect-cost/internal/errors"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty field yields no roles",
			raw:  "",
			want: nil,
		},
		{
			name: "blank field yields no roles",
			raw:  "   ",
			want: nil,
		},
		{
			name: "single role",
			raw:  "Резка",
			want: []string{"Резка"},
		},
		{
			name: "single role with surrounding whitespace",
			raw:  "  Резка  ",
			want: []string{"Резка"},
		},
		{
			name: "multiple roles trimmed",
			raw:  "Резка / Гибка",
			want: []string{"Резка", "Гибка"},
		},
		{
			name: "order matches appearance",
			raw:  "Гибка/Резка/Сборка",
			want: []string{"Гибка", "Резка", "Сборка"},
		},
		{
			name: "empty fragment kept as empty role",
			raw:  "Резка//Гибка",
			want: []string{"Резка", "", "Гибка"},
		},
		{
			name: "trailing delimiter keeps empty role",
			raw:  "Резка/",
			want: []string{"Резка", ""},
		},
	}

	var s Splitter
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Split(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitStrict(t *testing.T) {
	s := Splitter{Strict: true}

	if _, err := s.Split("Резка/Гибка"); err != nil {
		t.Fatalf("unexpected error for well-formed field: %v", err)
	}

	_, err := s.Split("Резка//Гибка")
	if err == nil {
		t.Fatal("expected error for empty fragment in strict mode")
	}
	if !errors.IsType(err, errors.TypeMalformedRoleField) {
		t.Errorf("expected MALFORMED_ROLE_FIELD, got %v", err)
	}
}
