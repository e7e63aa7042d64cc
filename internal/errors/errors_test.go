package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestWithSuggestion(t *testing.T) {
	base := errors.New("boom")
	err := WithSuggestion(base, "try again")

	if err.Error() != "boom" {
		t.Errorf("Error = %q, want %q", err.Error(), "boom")
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error does not unwrap to the base error")
	}
	if got := GetSuggestion(err); got != "try again" {
		t.Errorf("GetSuggestion = %q, want %q", got, "try again")
	}
}

func TestGetSuggestionForSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrUnsupportedFormat, "Supported formats"},
		{ErrOutputUnavailable, "audio device"},
		{ErrEmptyQueue, "cadence scan"},
		{ErrConfigNotFound, "config init"},
	}
	for _, tc := range cases {
		got := GetSuggestion(tc.err)
		if !strings.Contains(got, tc.want) {
			t.Errorf("GetSuggestion(%v) = %q, want it to contain %q", tc.err, got, tc.want)
		}
	}
}

func TestGetSuggestionNil(t *testing.T) {
	if got := GetSuggestion(nil); got != "" {
		t.Errorf("GetSuggestion(nil) = %q, want empty", got)
	}
}

func TestFormatIncludesSuggestion(t *testing.T) {
	out := Format(ErrUnsupportedFormat)
	if !strings.Contains(out, "Error:") || !strings.Contains(out, "Suggestion:") {
		t.Errorf("Format = %q, want error and suggestion sections", out)
	}

	plain := Format(errors.New("weird failure zzz"))
	if strings.Contains(plain, "Suggestion:") {
		t.Errorf("Format = %q, want no suggestion section", plain)
	}
}
