package ast

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseQueries(t *testing.T) {
	tests := []struct {
		msg    string
		source string
		want   []*Query
		ok     bool
	}{
		{
			msg:    "single set query",
			source: "EVEN(14)",
			want:   []*Query{{Name: "EVEN", Args: []int{14}}},
			ok:     true,
		},
		{
			msg:    "several queries",
			source: "RR(27,3)\n RR2star( 27 , 6 ) PRIME(7)",
			want: []*Query{
				{Name: "RR", Args: []int{27, 3}},
				{Name: "RR2star", Args: []int{27, 6}},
				{Name: "PRIME", Args: []int{7}},
			},
			ok: true,
		},
		{
			msg:    "no arguments",
			source: "EVEN()",
			ok:     false,
		},
		{
			msg:    "negative argument",
			source: "EVEN(-1)",
			ok:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			got, err := ParseQueries(strings.NewReader(tt.source))
			if (err == nil) != tt.ok {
				t.Fatalf("ParseQueries(%q) error = %v, want ok %v", tt.source, err, tt.ok)
			}
			if !tt.ok {
				return
			}

			if diff := cmp.Diff(got, tt.want, cmpopts.IgnoreTypes(lexer.Position{})); diff != "" {
				t.Errorf("query diff (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		msg       string
		source    string
		disjuncts []int // number of conditions per disjunct
		ok        bool
	}{
		{
			msg:       "reference edge rule",
			source:    "(i + 3) % 32 = j | (i + 8) % 32 = j",
			disjuncts: []int{1, 1},
			ok:        true,
		},
		{
			msg:       "conjunction",
			source:    "n % 2 = 0 & n < 16 | n = 31",
			disjuncts: []int{2, 1},
			ok:        true,
		},
		{
			msg:       "every comparison operator",
			source:    "i != j & i <= j & i >= 0 & i < 32 & j > 0",
			disjuncts: []int{5},
			ok:        true,
		},
		{
			msg:    "missing comparison",
			source: "i + 3",
			ok:     false,
		},
		{
			msg:    "unbalanced parenthesis",
			source: "(i + 3 = j",
			ok:     false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			rule, err := ParseRule(strings.NewReader(tt.source))
			if (err == nil) != tt.ok {
				t.Fatalf("ParseRule(%q) error = %v, want ok %v", tt.source, err, tt.ok)
			}
			if !tt.ok {
				return
			}

			var got []int
			for _, d := range rule.Disjuncts {
				got = append(got, len(d.Conditions))
			}
			if diff := cmp.Diff(got, tt.disjuncts); diff != "" {
				t.Errorf("rule shape diff (-got, +want):\n%s", diff)
			}
		})
	}
}
