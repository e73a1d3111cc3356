package contract

import (
	"fmt"
	"strings"
)

// Rule names the minimum-content check applied to a required section.
type Rule string

const (
	// RulePresent only requires the section to exist.
	RulePresent Rule = "present"
	// RuleNonEmpty requires at least one non-empty body line.
	RuleNonEmpty Rule = "non-empty"
	// RuleCodeFence requires at least one fenced code block.
	RuleCodeFence Rule = "code-fence"
	// RuleMinLines requires at least MinLines non-empty body lines.
	RuleMinLines Rule = "min-lines"
)

// Requirement binds one required section title to a content rule.
type Requirement struct {
	Section  string `yaml:"section"`
	Rule     Rule   `yaml:"rule"`
	MinLines int    `yaml:"min_lines,omitempty"`
}

// Contract is the set of required sections a document must satisfy.
// Requirements are order-independent with respect to the document.
type Contract struct {
	Requirements []Requirement `yaml:"require"`
}

// Validate rejects unknown rules and empty section names before a contract is
// used, so a typo in a contract file fails loudly instead of silently passing
// everything.
func (c *Contract) Validate() error {
	for i, req := range c.Requirements {
		if strings.TrimSpace(req.Section) == "" {
			return fmt.Errorf("requirement %d: empty section title", i)
		}
		switch req.Rule {
		case RulePresent, RuleNonEmpty, RuleCodeFence:
		case RuleMinLines:
			if req.MinLines <= 0 {
				return fmt.Errorf("requirement %q: min-lines needs min_lines > 0", req.Section)
			}
		case "":
			return fmt.Errorf("requirement %q: missing rule", req.Section)
		default:
			return fmt.Errorf("requirement %q: unknown rule %q", req.Section, req.Rule)
		}
	}
	return nil
}

// NormalizeTitle lowercases a section title and collapses inner whitespace so
// "Code  Style" and "code style" compare equal.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
