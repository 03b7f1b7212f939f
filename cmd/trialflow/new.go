package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"trialflow/pkg/config"
	"trialflow/pkg/count"
	"trialflow/pkg/engine"
	"trialflow/pkg/model"
	"trialflow/pkg/ops"
	"trialflow/pkg/preset"
	"trialflow/pkg/snapshot"
)

var (
	newOutputFlag      string
	newTemplateFlag    string
	newInteractiveFlag bool
	newForceFlag       bool
)

var newCmd = &cobra.Command{
	Use:     "new",
	Short:   "Create a new flow diagram file",
	GroupID: "authoring",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		s := cfg.Settings()

		tplName := newTemplateFlag
		if tplName == "" {
			tplName = cfg.Template
		}

		if !newForceFlag {
			if _, err := os.Stat(newOutputFlag); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", newOutputFlag)
			}
		}

		var g *model.Graph
		if newInteractiveFlag {
			g, s, err = newInteractive(s)
		} else {
			g, err = buildFromTemplate(tplName, s)
		}
		if err != nil {
			return err
		}

		if err := snapshot.Save(newOutputFlag, g, s); err != nil {
			return err
		}
		fmt.Printf("Created %s (%d nodes)\n", newOutputFlag, len(g.Nodes))
		return nil
	},
}

// buildFromTemplate resolves a template name to a recomputed graph. "blank"
// gives the single start node; a .yaml/.yml path loads a preset file; any
// other name must be a builtin.
func buildFromTemplate(name string, s model.Settings) (*model.Graph, error) {
	if name == "blank" {
		g, err := ops.NewGraph()
		if err != nil {
			return nil, err
		}
		return engine.Recompute(g, s), nil
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		tpl, err := preset.Load(name)
		if err != nil {
			return nil, err
		}
		return preset.Build(tpl, s)
	}
	tpl, ok := preset.Builtin(name)
	if !ok {
		return nil, fmt.Errorf("unknown template %q (try consort, blank, or a .yaml file)", name)
	}
	return preset.Build(tpl, s)
}

// newInteractive prompts for the starting choices and builds the graph.
func newInteractive(s model.Settings) (*model.Graph, model.Settings, error) {
	var (
		tplName  = "consort"
		rootText = "Assessed for eligibility"
		countRaw string
		format   = string(s.CountFormat)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Template").
				Options(
					huh.NewOption("Two-arm CONSORT", "consort"),
					huh.NewOption("Blank", "blank"),
				).
				Value(&tplName),
			huh.NewInput().
				Title("First step").
				Value(&rootText),
			huh.NewInput().
				Title("Enrollment count").
				Description("Leave blank for no count yet").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return nil
					}
					if count.Parse(v) == nil {
						return fmt.Errorf("not a number")
					}
					return nil
				}).
				Value(&countRaw),
			huh.NewSelect[string]().
				Title("Count style").
				Options(
					huh.NewOption("N = 1 234", string(model.FormatUpper)),
					huh.NewOption("(n = 1 234)", string(model.FormatParenthetical)),
				).
				Value(&format),
		),
	)
	if err := form.Run(); err != nil {
		return nil, s, fmt.Errorf("prompt aborted: %w", err)
	}

	s.CountFormat = model.CountFormat(format)

	g, err := buildFromTemplate(tplName, s)
	if err != nil {
		return nil, s, err
	}
	if strings.TrimSpace(rootText) != "" {
		g, err = ops.UpdateNodeText(g, g.StartID, splitLines(rootText))
		if err != nil {
			return nil, s, err
		}
	}
	if n := count.Parse(countRaw); n != nil {
		g, err = ops.UpdateNodeCount(g, g.StartID, n, s)
		if err != nil {
			return nil, s, err
		}
	}
	return engine.Recompute(g, s), s, nil
}

func init() {
	newCmd.Flags().StringVarP(&newOutputFlag, "output", "o", "flow.json", "file to create")
	newCmd.Flags().StringVar(&newTemplateFlag, "template", "", "builtin template name or preset .yaml path (default from config)")
	newCmd.Flags().BoolVarP(&newInteractiveFlag, "interactive", "i", false, "prompt for the starting choices")
	newCmd.Flags().BoolVar(&newForceFlag, "force", false, "overwrite an existing file")
}
