// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dock

import "testing"

func TestValidSMILES(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"ethanol", "CCO", true},
		{"benzene aromatic", "c1ccccc1", true},
		{"acetic acid", "CC(=O)O", true},
		{"chlorine two-letter atom", "CCCl", true},
		{"bromobenzene", "Brc1ccccc1", true},
		{"bracket atom with charge", "C[N+](C)(C)C", true},
		{"chirality", "C[C@@H](N)C(=O)O", true},
		{"isotope", "[13C]O", true},
		{"wildcard atom", "C*C", true},
		{"two-digit ring bond", "C%10CCCC%10", true},
		{"disconnected components", "CCO.CCN", true},
		{"nirmatrelvir", "CC1(C2C1C(N(C2)C(=O)C(C(C)(C)C)NC(=O)C(F)(F)F)C(=O)NC(CC3CCNC3=O)C#N)C", true},

		{"empty", "", false},
		{"unbalanced open paren", "CC(C", false},
		{"unbalanced close paren", "CC)C", false},
		{"unbalanced bracket", "C[NH", false},
		{"stray close bracket", "CN]", false},
		{"empty bracket", "C[]C", false},
		{"unknown atom symbol", "CQC", false},
		{"unpaired ring bond", "C1CC", false},
		{"leading ring digit", "1CCO", false},
		{"leading branch", "(CCO)", false},
		{"bad percent ring bond", "C%1C", false},
		{"whitespace", "CC O", false},
		{"bonds only", "==", false},
		{"bracket with garbage", "C[N?]C", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidSMILES(tt.s); got != tt.want {
				t.Errorf("ValidSMILES(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
