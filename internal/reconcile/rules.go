package reconcile

import (
	"fmt"
	"path"
	"strings"
)

// Rule kinds
const (
	// RuleFolders merges or moves each named folder from Source into Target.
	RuleFolders = "folders"

	// RuleFile moves each named file from Source into Target.
	RuleFile = "file"
)

// VersionPlaceholder is replaced by the configured client version in rule paths.
const VersionPlaceholder = "{version}"

// TransformRule describes one structural fix-up of the output tree.
// Paths are slash-separated and relative to the output root; "" is the
// root itself.
type TransformRule struct {
	// Name labels the rule in logs
	Name string `json:"name"`

	// Kind is RuleFolders or RuleFile
	Kind string `json:"kind"`

	// Names are the folder or file names looked up under Source
	Names []string `json:"names"`

	Source string `json:"source,omitempty"`
	Target string `json:"target,omitempty"`

	// When, if set, must exist for the rule to run at all
	When string `json:"when,omitempty"`

	// RemoveAfter, if set, is deleted once the rule has run
	RemoveAfter string `json:"remove_after,omitempty"`
}

// Validate checks the rule shape before it touches the filesystem.
func (r TransformRule) Validate() error {
	if r.Kind != RuleFolders && r.Kind != RuleFile {
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRule, r.Name, r.Kind)
	}
	if len(r.Names) == 0 {
		return fmt.Errorf("%w: %s: no names", ErrInvalidRule, r.Name)
	}
	for _, name := range r.Names {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w: %s: bad name %q", ErrInvalidRule, r.Name, name)
		}
	}
	for _, p := range []string{r.Source, r.Target, r.When, r.RemoveAfter} {
		if escapesRoot(p) {
			return fmt.Errorf("%w: %s: path %q leaves the output folder", ErrInvalidRule, r.Name, p)
		}
	}
	return nil
}

// escapesRoot reports whether a rule path is absolute or climbs above the root.
func escapesRoot(p string) bool {
	if p == "" {
		return false
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return true
	}
	cleaned := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

// VendorRule unwraps a vendor folder: its res_mods and mods children move
// up to the output root and the wrapper is deleted.
func VendorRule(vendorFolder string) TransformRule {
	return TransformRule{
		Name:        "unwrap-vendor",
		Kind:        RuleFolders,
		Names:       []string{"res_mods", "mods"},
		Source:      vendorFolder,
		When:        vendorFolder,
		RemoveAfter: vendorFolder,
	}
}

// Defaults names the site-specific folders and files behind DefaultRules.
type Defaults struct {
	VendorFolder      string
	ModFile           string
	NestedModsWrapper string
}

// DefaultRules returns the built-in reconciliation sequence. Order matters:
// the vendor wrapper must be gone before res_mods and mods are populated.
// Steps whose name is empty in d are left out.
func DefaultRules(d Defaults) []TransformRule {
	var rules []TransformRule

	if d.VendorFolder != "" {
		rules = append(rules, VendorRule(d.VendorFolder))
	}

	rules = append(rules, TransformRule{
		Name:   "relocate-objects-scripts",
		Kind:   RuleFolders,
		Names:  []string{"objects", "scripts"},
		Target: "res_mods/" + VersionPlaceholder,
	})

	if d.ModFile != "" {
		rules = append(rules, TransformRule{
			Name:   "relocate-mod-file",
			Kind:   RuleFile,
			Names:  []string{d.ModFile},
			Target: "mods/" + VersionPlaceholder,
		})
	}

	if d.NestedModsWrapper != "" {
		rules = append(rules, TransformRule{
			Name:        "merge-nested-mods",
			Kind:        RuleFolders,
			Names:       []string{"mods"},
			Source:      d.NestedModsWrapper,
			When:        d.NestedModsWrapper + "/mods",
			RemoveAfter: d.NestedModsWrapper,
		})
	}

	return rules
}
