package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "The blender broke after two uses.",
			want:  "The blender broke after two uses.",
		},
		{
			name:  "strips markdown emphasis",
			input: "The blender **broke** after _two_ uses.",
			want:  "The blender broke after two uses.",
		},
		{
			name:  "markdown link keeps only the text",
			input: "See [my review](https://example.com/review) for details.",
			want:  "See my review for details.",
		},
		{
			name:  "bare url removed",
			input: "Full thread at https://example.com/thread/42 if anyone cares.",
			want:  "Full thread at if anyone cares.",
		},
		{
			name:  "collapses whitespace",
			input: "too   many\n\n\nblank    lines",
			want:  "too many blank lines",
		},
		{
			name:  "unescapes html entities",
			input: "cheap &amp; cheerful",
			want:  "cheap & cheerful",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedactPII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "phone number",
			input: "call me at 555-123-4567 please",
			want:  "call me at [PHONE] please",
		},
		{
			name:  "phone number with dots",
			input: "call me at 555.123.4567 please",
			want:  "call me at [PHONE] please",
		},
		{
			name:  "email address",
			input: "reach me at jane.doe@example.com for a refund",
			want:  "reach me at [EMAIL] for a refund",
		},
		{
			name:  "ssn",
			input: "they asked for my 123-45-6789 which is absurd",
			want:  "they asked for my [SSN] which is absurd",
		},
		{
			name:  "multiple identifiers",
			input: "email bob@shop.io or call 555-123-4567",
			want:  "email [EMAIL] or call [PHONE]",
		},
		{
			name:  "clean text untouched",
			input: "no identifiers here",
			want:  "no identifiers here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RedactPII(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
