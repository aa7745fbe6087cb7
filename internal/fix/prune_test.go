package fix

import (
	"testing"

	"cairolint/internal/diag"
)

func TestPruneImports(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "one of two",
			src:  "use core::integer::{a, b};\n\nfn main() {\n    b();\n}\n",
			want: "use core::integer::b;\n\nfn main() {\n    b();\n}\n",
		},
		{
			name: "both dead",
			src:  "use core::integer::{a, b};\nfn main() {}\n",
			want: "fn main() {}\n",
		},
		{
			name: "order kept",
			src:  "use core::integer::{a, b, c};\nfn main() {\n    c();\n    b();\n}\n",
			want: "use core::integer::{b, c};\nfn main() {\n    c();\n    b();\n}\n",
		},
		{
			name: "single statement",
			src:  "use core::a;\n// keep me\nuse core::b;\n\nfn main() {\n    b();\n}\n",
			want: "// keep me\nuse core::b;\n\nfn main() {\n    b();\n}\n",
		},
		{
			name: "inner list collapses into outer",
			src:  "use a::{b::{c, d}, e};\nfn main() {\n    d();\n}\n",
			want: "use a::b::d;\nfn main() {\n    d();\n}\n",
		},
		{
			name: "dead inner list",
			src:  "use a::{b::{c, d}, e};\nfn main() {\n    e();\n}\n",
			want: "use a::e;\nfn main() {\n    e();\n}\n",
		},
		{
			name: "both levels rewritten",
			src:  "use a::{b::{c, d}, e, f};\nfn main() {\n    d();\n    f();\n}\n",
			want: "use a::{b::d, f};\nfn main() {\n    d();\n    f();\n}\n",
		},
		{
			name: "alias survives",
			src:  "use a::{b as x, c};\nfn main() {\n    x();\n}\n",
			want: "use a::b as x;\nfn main() {\n    x();\n}\n",
		},
		{
			name: "everything dead in nested lists",
			src:  "use a::{b::{c, d}, e};\n\nfn main() {}\n",
			want: "\nfn main() {}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, diags := analyze(t, "test.cairo", tt.src)
			for _, d := range diags {
				if d.Code != diag.SemaUnusedImport {
					t.Fatalf("unexpected diagnostic %s: %s", d.Code.ID(), d.Message)
				}
			}
			if got := applyAll(t, tree, diags); got != tt.want {
				t.Fatalf("pruned text mismatch:\nwant:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestPruneImportsEmitsOneEditPerDeclaration(t *testing.T) {
	tree, diags := analyze(t, "test.cairo", "use a::{b, c, d};\nfn main() {}\n")
	if len(diags) != 3 {
		t.Fatalf("want 3 unused leaves, got %d", len(diags))
	}
	edits := PruneImports(tree, diags)
	if len(edits) != 1 || edits[0].Replacement != "" {
		t.Fatalf("want one deletion, got %+v", edits)
	}
}

func TestPruneImportsIgnoresOtherDiagnostics(t *testing.T) {
	tree, diags := analyze(t, "test.cairo", "fn main() {\n    let x = 1_u32;\n    let _y = x + 0;\n}\n")
	if edits := PruneImports(tree, diags); len(edits) != 0 {
		t.Fatalf("want no import edits, got %+v", edits)
	}
}
