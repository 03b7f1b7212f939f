package preset

// Consort returns the built-in two-arm CONSORT skeleton: Enrollment,
// Allocation, Follow-up and Analysis phases over a screening funnel that
// randomizes into an intervention arm and a control arm. Counts are left
// unset for the author to fill in.
func Consort() Template {
	arm := func(allocated string) Step {
		return Step{
			Text: allocated,
			Children: []Step{{
				Text: "Lost to follow-up",
				Children: []Step{{
					Text: "Analysed",
					Exclusion: &Exclusion{
						Label: "Excluded from analysis",
					},
				}},
			}},
		}
	}

	intervention := arm("Allocated to intervention")
	intervention.Ref = "allocation"
	followUp := &intervention.Children[0]
	followUp.Ref = "follow-up"
	followUp.Children[0].Ref = "analysis"

	return Template{
		Name: "consort",
		Root: Step{
			Text: "Assessed for eligibility",
			Ref:  "enrollment",
			Children: []Step{{
				Text: "Randomized",
				Ref:  "randomized",
				Exclusion: &Exclusion{
					Reasons: []Reason{
						{Label: "Not meeting inclusion criteria"},
						{Label: "Declined to participate"},
						{Label: "Other reasons"},
					},
				},
				Children: []Step{
					intervention,
					arm("Allocated to control"),
				},
			}},
		},
		Phases: []Phase{
			{Label: "Enrollment", Start: "enrollment", End: "randomized"},
			{Label: "Allocation", Start: "allocation", End: "allocation"},
			{Label: "Follow-up", Start: "follow-up", End: "follow-up"},
			{Label: "Analysis", Start: "analysis", End: "analysis"},
		},
	}
}

// Builtin resolves a named built-in template. Only "consort" exists today.
func Builtin(name string) (Template, bool) {
	switch name {
	case "consort":
		return Consort(), true
	}
	return Template{}, false
}
