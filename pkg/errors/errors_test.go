package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Kind: KindConfiguration, Message: "unknown band \"y\""},
			want: "[configuration] unknown band \"y\"",
		},
		{
			name: "with band and op",
			err:  &Error{Kind: KindNumericDegeneracy, Band: "u", Op: "pivot", Message: "response integrates to zero"},
			want: "[numeric-degeneracy] band u: pivot: response integrates to zero",
		},
		{
			name: "with cause",
			err:  &Error{Kind: KindConfiguration, Op: "load filter", Err: fs.ErrNotExist},
			want: "[configuration] load filter: file does not exist",
		},
		{
			name: "message and cause",
			err:  &Error{Kind: KindConfiguration, Message: "G_CFIS.res", Err: fs.ErrNotExist},
			want: "[configuration] G_CFIS.res: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("run: %w", OutputConflict("photo_g.fits"))
	if !errors.Is(err, ErrOutputConflict) {
		t.Fatal("expected ErrOutputConflict")
	}
	if errors.Is(err, ErrConfiguration) {
		t.Fatal("output conflict must not match ErrConfiguration")
	}

	wrapped := Wrap(KindConfiguration, "open", fs.ErrNotExist)
	if !errors.Is(wrapped, ErrConfiguration) || !errors.Is(wrapped, fs.ErrNotExist) {
		t.Fatal("wrapped error must match both kind and cause")
	}
	if Wrap(KindConfiguration, "open", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
}

func TestWithBandAndKindOf(t *testing.T) {
	base := NumericDegeneracyf("pivot", "zero response")
	err := WithBand(base, "z")

	kind, ok := KindOf(err)
	if !ok || kind != KindNumericDegeneracy {
		t.Fatalf("KindOf = %q, %v", kind, ok)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Band != "z" {
		t.Fatalf("band not attached: %v", err)
	}
	if base.Band != "" {
		t.Fatal("WithBand must not mutate the original error")
	}

	plain := WithBand(errors.New("boom"), "g")
	if plain.Error() != "band g: boom" {
		t.Fatalf("plain WithBand = %q", plain.Error())
	}
	if _, ok := KindOf(plain); ok {
		t.Fatal("unclassified error must have no kind")
	}
	if WithBand(nil, "g") != nil {
		t.Fatal("WithBand(nil) must be nil")
	}
}
