package spellcheck

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare list",
			raw:  `[{"a":1}]`,
			want: `[{"a":1}]`,
			ok:   true,
		},
		{
			name: "fenced json block",
			raw:  "Here you go:\n```json\n[{\"a\":1}]\n```\nHope this helps!",
			want: `[{"a":1}]`,
			ok:   true,
		},
		{
			name: "fenced block without language tag",
			raw:  "```\n[]\n```",
			want: `[]`,
			ok:   true,
		},
		{
			name: "list wrapped in prose",
			raw:  `Sure! The errors are: [{"a":1}, {"b":2}] as requested.`,
			want: `[{"a":1}, {"b":2}]`,
			ok:   true,
		},
		{
			name: "object wrapped in prose",
			raw:  `The result is {"a": [1,2]} overall.`,
			want: `{"a": [1,2]}`,
			ok:   true,
		},
		{
			name: "object before list picks object span",
			raw:  `{"outer": true} and later [1,2]`,
			want: `{"outer": true}`,
			ok:   true,
		},
		{
			name: "no json at all",
			raw:  "I found no errors worth reporting.",
			ok:   false,
		},
		{
			name: "unclosed bracket",
			raw:  "here is [ nothing closing",
			ok:   false,
		},
		{
			name: "empty string",
			raw:  "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (got %q)", ok, tt.ok, got)
			}
			if ok && got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
