package main

import (
	"reflect"
	"testing"
)

func TestRewriteNegatedFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"rotodendron"},
			want: []string{"rotodendron"},
		},
		{
			name: "negated autoloop",
			in:   []string{"rotodendron", "--no-autoloop"},
			want: []string{"rotodendron", "--autoloop=false"},
		},
		{
			name: "negated autoloop after file flag",
			in:   []string{"rotodendron", "-f", "notes/dream", "--no-autoloop"},
			want: []string{"rotodendron", "-f", "notes/dream", "--autoloop=false"},
		},
		{
			name: "positive form untouched",
			in:   []string{"rotodendron", "--autoloop"},
			want: []string{"rotodendron", "--autoloop"},
		},
		{
			name: "after double dash untouched",
			in:   []string{"rotodendron", "--", "--no-autoloop"},
			want: []string{"rotodendron", "--", "--no-autoloop"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteNegatedFlags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteNegatedFlags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
