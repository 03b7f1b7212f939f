// Package preset builds starter flow diagrams from YAML templates. A
// template describes the node tree, optional counts and exclusion boxes,
// and named phases; Build turns it into a fully recomputed graph.
package preset

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"trialflow/pkg/engine"
	"trialflow/pkg/model"
	"trialflow/pkg/ops"
)

// Template is the root document of a preset file.
type Template struct {
	Name   string  `yaml:"name"`
	Root   Step    `yaml:"root"`
	Phases []Phase `yaml:"phases,omitempty"`
}

// Step is one node of the template tree. Ref names a step so phases can
// point at it; refs must be unique within a template.
type Step struct {
	Text      string     `yaml:"text"`
	Ref       string     `yaml:"ref,omitempty"`
	N         *int       `yaml:"n,omitempty"`
	Exclusion *Exclusion `yaml:"exclusion,omitempty"`
	Children  []Step     `yaml:"children,omitempty"`
}

// Exclusion describes the exclusion box on the interval leading into a step.
type Exclusion struct {
	Label   string   `yaml:"label,omitempty"`
	Total   *int     `yaml:"total,omitempty"`
	Reasons []Reason `yaml:"reasons,omitempty"`
}

// Reason is one user reason row of a templated exclusion box.
type Reason struct {
	Label string `yaml:"label"`
	N     *int   `yaml:"n,omitempty"`
}

// Phase brackets a run of main-flow steps between two refs.
type Phase struct {
	Label string `yaml:"label"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Parse decodes a template document. Unknown fields are rejected so typos
// in a hand-written preset surface immediately.
func Parse(data []byte) (Template, error) {
	var tpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tpl); err != nil {
		return Template{}, fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

// Load reads and parses a template file.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(data)
}

// Validate checks the template's internal references.
func (t Template) Validate() error {
	if strings.TrimSpace(t.Root.Text) == "" {
		return fmt.Errorf("template root step has no text")
	}
	refs := map[string]bool{}
	if err := collectRefs(t.Root, refs); err != nil {
		return err
	}
	for _, p := range t.Phases {
		if strings.TrimSpace(p.Label) == "" {
			return fmt.Errorf("phase with empty label")
		}
		for _, ref := range []string{p.Start, p.End} {
			if !refs[ref] {
				return fmt.Errorf("phase %q references unknown step ref %q", p.Label, ref)
			}
		}
	}
	return nil
}

func collectRefs(step Step, refs map[string]bool) error {
	if step.Ref != "" {
		if refs[step.Ref] {
			return fmt.Errorf("duplicate step ref %q", step.Ref)
		}
		refs[step.Ref] = true
	}
	for _, child := range step.Children {
		if err := collectRefs(child, refs); err != nil {
			return err
		}
	}
	return nil
}

// Build constructs a graph from the template and runs a full recompute so
// derived counts and layout are ready. Selection ends on the start node.
func Build(tpl Template, s model.Settings) (*model.Graph, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	g, err := ops.NewGraph()
	if err != nil {
		return nil, err
	}
	refs := map[string]string{}

	g, err = applyStepFields(g, g.StartID, tpl.Root, refs, s)
	if err != nil {
		return nil, err
	}
	g, err = addChildren(g, g.StartID, tpl.Root.Children, refs, s)
	if err != nil {
		return nil, err
	}

	for _, p := range tpl.Phases {
		g, err = ops.AddPhase(g, p.Label, refs[p.Start], refs[p.End])
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", p.Label, err)
		}
	}

	g, err = ops.SetSelected(g, g.StartID)
	if err != nil {
		return nil, err
	}
	return engine.Recompute(g, s), nil
}

func addChildren(g *model.Graph, parentID string, steps []Step, refs map[string]string, s model.Settings) (*model.Graph, error) {
	for _, step := range steps {
		var err error
		g, err = ops.AddNodeBelow(g, parentID)
		if err != nil {
			return nil, err
		}
		id := g.SelectedID

		g, err = applyStepFields(g, id, step, refs, s)
		if err != nil {
			return nil, err
		}
		g, err = applyExclusion(g, parentID, id, step.Exclusion)
		if err != nil {
			return nil, err
		}
		g, err = addChildren(g, id, step.Children, refs, s)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func applyStepFields(g *model.Graph, id string, step Step, refs map[string]string, s model.Settings) (*model.Graph, error) {
	if step.Ref != "" {
		refs[step.Ref] = id
	}
	var err error
	if text := strings.TrimSpace(step.Text); text != "" {
		g, err = ops.UpdateNodeText(g, id, strings.Split(text, "\n"))
		if err != nil {
			return nil, err
		}
	}
	if step.N != nil {
		g, err = ops.UpdateNodeCount(g, id, step.N, s)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

func applyExclusion(g *model.Graph, parentID, childID string, excl *Exclusion) (*model.Graph, error) {
	if excl == nil {
		return g, nil
	}
	iv := g.IntervalBetween(parentID, childID)
	if iv == nil {
		return nil, fmt.Errorf("no interval between %s and %s", parentID, childID)
	}

	var err error
	if excl.Label != "" {
		g, err = ops.UpdateExclusionLabel(g, iv.ID, excl.Label)
		if err != nil {
			return nil, err
		}
	}
	if excl.Total != nil {
		g, err = ops.UpdateExclusionCount(g, iv.ID, excl.Total)
		if err != nil {
			return nil, err
		}
	}
	for _, r := range excl.Reasons {
		g, err = ops.AddExclusionReason(g, iv.ID)
		if err != nil {
			return nil, err
		}
		reasons := g.Intervals[iv.ID].Exclusion.Reasons
		rID := reasons[len(reasons)-1].ID
		g, err = ops.UpdateExclusionReasonLabel(g, iv.ID, rID, r.Label)
		if err != nil {
			return nil, err
		}
		if r.N != nil {
			g, err = ops.UpdateExclusionReasonCount(g, iv.ID, rID, r.N)
			if err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
