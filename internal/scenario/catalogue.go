package scenario

// DefaultCatalogue returns the built-in practice scenarios.
func DefaultCatalogue() *Catalogue {
	return NewCatalogue(cloudMigration(), itGovernance(), sourcingPartner())
}

func cloudMigration() Scenario {
	return Scenario{
		ID:          "cloud-migration",
		Title:       "Cloud Migration Discovery",
		Description: "Discovery call with a CEO considering cloud migration. Uncover pain before discussing solutions.",
		Difficulty:  "beginner",
		Methodology: "spin",
		Persona: Persona{
			Name:               "Thomas Mueller",
			Role:               "CEO",
			Company:            "Mueller Manufacturing GmbH",
			Industry:           "Manufacturing",
			Personality:        "Analytical, cautious, values data-driven decisions",
			CommunicationStyle: "Direct but reserved. Needs to understand the 'why' before committing.",
		},
		Context: Context{
			Situation: "Mid-size manufacturing company with 200 employees. On-premise servers are 7 years old. " +
				"Recent downtime incidents. The board is asking about digital transformation.",
			PainPoints: []string{
				"Server downtime causing production delays",
				"IT team overwhelmed with maintenance",
				"Difficulty accessing data remotely",
				"Security concerns with aging infrastructure",
			},
			Objections: []string{
				"Not sure if now is the right time",
				"Concerned about migration risks",
				"Budget is tight this quarter",
				"Team might resist change",
			},
			DesiredOutcome: "Customer articulates the cost of inaction and asks about next steps.",
			CallType:       "inbound",
			MonetizationData: map[string]string{
				"downtime_cost":        "Each hour of downtime costs us approximately EUR 15,000 in lost production",
				"it_overtime":          "IT team is logging 20+ hours overtime weekly, roughly EUR 8,000/month extra",
				"missed_opportunities": "We lost two potential contracts last quarter because we couldn't provide real-time data - combined value around EUR 500,000",
				"security_risk":        "Our insurance company is threatening to raise premiums by 40% if we don't upgrade",
			},
		},
	}
}

func itGovernance() Scenario {
	return Scenario{
		ID:          "it-governance",
		Title:       "IT Governance Improvement",
		Description: "A CIO struggling to align IT strategy with business goals. Use implication questions to surface the stakes.",
		Difficulty:  "intermediate",
		Methodology: "spin",
		Persona: Persona{
			Name:               "Sandra Weber",
			Role:               "CIO",
			Company:            "FinServ AG",
			Industry:           "Financial Services",
			Personality:        "Strategic thinker, detail-oriented, politically savvy",
			CommunicationStyle: "Professional, expects well-prepared counterparts. Values insights over pitches.",
		},
		Context: Context{
			Situation: "Large financial services company where IT is seen as a cost center. Shadow IT is growing, " +
				"a recent audit raised governance concerns, and new regulations land in 18 months.",
			PainPoints: []string{
				"IT projects often delayed or over budget",
				"Business units bypassing IT with shadow solutions",
				"Audit findings about documentation gaps",
				"Difficulty proving IT value to the board",
			},
			Objections: []string{
				"We have tried consultants before",
				"Internal politics make change difficult",
				"Not sure external help is the answer",
				"Need to see concrete ROI projections",
			},
			DesiredOutcome: "Customer quantifies the risk of regulatory non-compliance and agrees to a deeper assessment.",
			CallType:       "inbound",
			MonetizationData: map[string]string{
				"project_overruns":   "Last three major projects averaged 35% over budget - EUR 2.5 million in overruns last year",
				"shadow_it_risk":     "We estimate EUR 400,000 annually in shadow IT spending that bypasses proper controls",
				"audit_remediation":  "Addressing the audit findings properly needs 6 FTEs for 8 months - roughly EUR 800,000",
				"regulatory_penalty": "Non-compliance penalties could reach EUR 10 million, plus reputation damage we can't quantify",
			},
		},
	}
}

func sourcingPartner() Scenario {
	return Scenario{
		ID:          "sourcing-partner",
		Title:       "IT Sourcing Partnership",
		Description: "A VP of IT Operations burned by a failed vendor. Build trust through questions, not claims.",
		Difficulty:  "advanced",
		Methodology: "closr",
		Persona: Persona{
			Name:               "Michael Schmidt",
			Role:               "VP IT Operations",
			Company:            "RetailCorp GmbH",
			Industry:           "Retail",
			Personality:        "Skeptical due to past experiences, operational focus, risk-averse",
			CommunicationStyle: "Guarded initially. Opens up when he feels understood. Hates sales pitches.",
		},
		Context: Context{
			Situation: "Retail company with 500 stores. The previous outsourcing partner failed to deliver; some services " +
				"came back in-house but the team is over capacity with peak season approaching.",
			PainPoints: []string{
				"Burned by previous vendor relationship",
				"In-house team understaffed and overworked",
				"Inconsistent service levels across stores",
				"Fear of repeating past mistakes",
			},
			Objections: []string{
				"We tried outsourcing, it did not work",
				"How are you different from the last guys?",
				"I do not have time for another failed project",
				"My team is too busy to onboard new partners",
			},
			DesiredOutcome: "Customer shares what went wrong before and what success would look like.",
			CallType:       "outbound",
			MonetizationData: map[string]string{
				"vendor_failure_cost":   "The failed outsourcing cost us EUR 3 million in direct costs plus 18 months of lost progress",
				"current_overtime":      "Team is at 150% capacity - burnout is real, we've lost two key people already",
				"service_inconsistency": "Store satisfaction varies from 45% to 89% - that inconsistency is killing our brand",
				"peak_season_risk":      "If we can't stabilize before Black Friday, I estimate EUR 5-10 million in lost sales",
			},
		},
	}
}
