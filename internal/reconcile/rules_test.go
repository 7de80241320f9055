package reconcile

import (
	"errors"
	"testing"
)

func TestTransformRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    TransformRule
		wantErr bool
	}{
		{
			name: "valid folders rule",
			rule: TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"objects"}, Target: "res_mods/{version}"},
		},
		{
			name: "valid file rule at root",
			rule: TransformRule{Name: "r", Kind: RuleFile, Names: []string{"a.wotmod"}},
		},
		{
			name:    "unknown kind",
			rule:    TransformRule{Name: "r", Kind: "copy", Names: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "no names",
			rule:    TransformRule{Name: "r", Kind: RuleFolders},
			wantErr: true,
		},
		{
			name:    "name with separator",
			rule:    TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"a/b"}},
			wantErr: true,
		},
		{
			name:    "dot dot name",
			rule:    TransformRule{Name: "r", Kind: RuleFolders, Names: []string{".."}},
			wantErr: true,
		},
		{
			name:    "absolute target",
			rule:    TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"a"}, Target: "/tmp"},
			wantErr: true,
		},
		{
			name:    "source climbs out",
			rule:    TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"a"}, Source: "x/../../y"},
			wantErr: true,
		},
		{
			name:    "remove after climbs out",
			rule:    TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"a"}, RemoveAfter: ".."},
			wantErr: true,
		},
		{
			name: "dots inside a folder name are fine",
			rule: TransformRule{Name: "r", Kind: RuleFolders, Names: []string{"a"}, Source: "..wrapper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRule) {
				t.Errorf("expected ErrInvalidRule, got %v", err)
			}
		})
	}
}

func TestDefaultRules(t *testing.T) {
	t.Run("full sequence in order", func(t *testing.T) {
		rules := DefaultRules(Defaults{
			VendorFolder:      "WG",
			ModFile:           "three-direction-indicator.wotmod",
			NestedModsWrapper: "2 3 5 8 13 17 21 24 27 30",
		})

		want := []string{"unwrap-vendor", "relocate-objects-scripts", "relocate-mod-file", "merge-nested-mods"}
		if len(rules) != len(want) {
			t.Fatalf("got %d rules, want %d", len(rules), len(want))
		}
		for i, name := range want {
			if rules[i].Name != name {
				t.Errorf("rules[%d] = %q, want %q", i, rules[i].Name, name)
			}
			if err := rules[i].Validate(); err != nil {
				t.Errorf("default rule %q is invalid: %v", rules[i].Name, err)
			}
		}

		if rules[1].Target != "res_mods/{version}" {
			t.Errorf("objects target = %q", rules[1].Target)
		}
		if rules[2].Kind != RuleFile || rules[2].Target != "mods/{version}" {
			t.Errorf("mod file rule = %+v", rules[2])
		}
		if rules[3].When != "2 3 5 8 13 17 21 24 27 30/mods" {
			t.Errorf("nested rule condition = %q", rules[3].When)
		}
	})

	t.Run("empty names drop their steps", func(t *testing.T) {
		rules := DefaultRules(Defaults{})
		if len(rules) != 1 || rules[0].Name != "relocate-objects-scripts" {
			t.Errorf("unexpected rules: %+v", rules)
		}
	})
}

func TestVendorRule(t *testing.T) {
	rule := VendorRule("WG")

	if rule.Source != "WG" || rule.When != "WG" || rule.RemoveAfter != "WG" {
		t.Errorf("unexpected vendor rule paths: %+v", rule)
	}
	if rule.Target != "" {
		t.Errorf("vendor rule should target the root, got %q", rule.Target)
	}
	if len(rule.Names) != 2 || rule.Names[0] != "res_mods" || rule.Names[1] != "mods" {
		t.Errorf("unexpected vendor rule names: %v", rule.Names)
	}
}
