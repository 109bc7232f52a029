package errors

import (
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		lexeme   string
		message  string
		expected string
		line     int
	}{
		{
			"with line and lexeme",
			"str", "Undefined variable 'str'.",
			"[line 10] Error at 'str': Undefined variable 'str'.",
			10,
		},
		{
			"end-of-input lexeme is empty",
			"", "Expect ';' after expression.",
			"[line 3] Error at '': Expect ';' after expression.",
			3,
		},
		{
			"no source line omits the prefix",
			"", "Source text is empty.",
			"Error at '': Source text is empty.",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.line, tt.lexeme, tt.message); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLoxErrorImplementsError(t *testing.T) {
	var err error = New(8, "scale_factor", "Undefined variable 'scale_factor'.")

	want := "[line 8] Error at 'scale_factor': Undefined variable 'scale_factor'."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAggregate(t *testing.T) {
	errs := []*LoxError{
		New(1, "@", "Unexpected character: @."),
		New(2, "#", "Unexpected character: #."),
	}

	err := Aggregate(errs)
	if err == nil {
		t.Fatal("expected aggregated error")
	}

	want := "[line 1] Error at '@': Unexpected character: @.\n" +
		"[line 2] Error at '#': Unexpected character: #."
	if err.Error() != want {
		t.Errorf("Aggregate() = %q, want %q", err.Error(), want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if err := Aggregate([]*LoxError{}); err != nil {
		t.Errorf("Aggregate(empty) = %v, want nil", err)
	}
	if err := Aggregate[*LoxError](nil); err != nil {
		t.Errorf("Aggregate(nil) = %v, want nil", err)
	}
}
