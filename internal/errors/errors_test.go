package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	e := New(TypeInput, "missing column")
	if got := e.Error(); got != "[INPUT_ERROR] missing column" {
		t.Errorf("Error() = %q", got)
	}

	cause := stderrors.New("boom")
	wrapped := Wrap(TypeParsing, "bad cell", cause)
	if got := wrapped.Error(); !strings.Contains(got, "PARSING_ERROR") || !strings.Contains(got, "boom") {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		t    Type
		want bool
	}{
		{"matching type", EmptyDataset(), TypeEmptyDataset, true},
		{"different type", EmptyDataset(), TypeEmptyChart, false},
		{"plain error", stderrors.New("x"), TypeInternal, false},
		{"nil error", nil, TypeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsType(tt.err, tt.t); got != tt.want {
				t.Errorf("IsType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		want Type
	}{
		{EmptyDataset(), TypeEmptyDataset},
		{NotAnalyzed("role table"), TypeNotAnalyzed},
		{EmptyChart(), TypeEmptyChart},
		{MalformedRoleField("a//b"), TypeMalformedRoleField},
		{Input("bad"), TypeInput},
		{Parsing("bad", nil), TypeParsing},
		{Config("bad", nil), TypeConfig},
		{NotFound("previous dataset", "/tmp/history"), TypeNotFound},
		{Internal("bad", nil), TypeInternal},
	}
	for _, tt := range tests {
		if tt.err.Type != tt.want {
			t.Errorf("constructor produced %s, want %s", tt.err.Type, tt.want)
		}
	}

	if got := MalformedRoleField("a//b").Error(); !strings.Contains(got, `"a//b"`) {
		t.Errorf("MalformedRoleField message = %q, raw field missing", got)
	}
}

func TestWithContext(t *testing.T) {
	e := Input("missing columns").
		WithContext("file", "report.xlsx").
		WithContext("missing", []string{"Трудозатраты (рублей)"})

	if e.Context["file"] != "report.xlsx" {
		t.Errorf("context = %v", e.Context)
	}
	if len(e.Context) != 2 {
		t.Errorf("context has %d keys, want 2", len(e.Context))
	}
}
