package methodology

// Default builds the registry with the built-in frameworks. Called once
// from main; an error here is a configuration defect and should be fatal.
func Default() (*Registry, error) {
	return NewRegistry(spin(), closr(), meddic(), challenger(), sandler())
}

// spin is the four-stage discovery framework. The first two stages are
// judged on the salesperson's questioning alone; the last two on what the
// dialogue actually surfaced.
func spin() Definition {
	return Definition{
		Name:        "spin",
		DisplayName: "SPIN Discovery",
		Description: "Situation, Problem, Implication, Need-Payoff questioning for discovery conversations.",
		Dimensions: []Dimension{
			{
				Key:      "situation",
				Name:     "Situation Questions",
				MaxScore: 10,
				Weight:   0.20,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson establish context with a small number of well-chosen situation questions (2-3 max), " +
					"confirm known facts instead of asking basics, and avoid interrogating the customer about details they should have researched?",
			},
			{
				Key:      "problem",
				Name:     "Problem Questions",
				MaxScore: 10,
				Weight:   0.25,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson ask open problem questions (What, How, Tell me) that invite the customer to describe " +
					"difficulties and dissatisfaction, with good follow-up rather than rapid-fire interrogation or premature pitching?",
			},
			{
				Key:      "implication",
				Name:     "Implication Depth",
				MaxScore: 10,
				Weight:   0.30,
				Scope:    ScopeOutcome,
				Rubric: "Were the consequences of the customer's problems actually explored and surfaced in the dialogue - " +
					"technical impact, business impact, personal impact? Credit depth of consequence the customer articulated, " +
					"regardless of whether it was explicitly asked for or volunteered.",
			},
			{
				Key:      "need_payoff",
				Name:     "Need-Payoff and Quantification",
				MaxScore: 10,
				Weight:   0.25,
				Scope:    ScopeOutcome,
				Rubric: "Did the dialogue produce a quantified picture of the pain and the value of solving it - concrete figures " +
					"(currency, hours, percentages) and the customer expressing the payoff of a solution? Credit numbers present " +
					"anywhere in the dialogue, including ones the customer volunteered unprompted.",
			},
		},
	}
}

// closr is the eight-factor qualification framework ported from the
// coaching programme this system trains against.
func closr() Definition {
	return Definition{
		Name:        "closr",
		DisplayName: "ClosR Qualification",
		Description: "Eight-factor scoring of discovery calls: rapport, patience, implication depth, monetization, sequencing, vocabulary, question quality and talk ratio.",
		Dimensions: []Dimension{
			{
				Key:      "opening",
				Name:     "Opening/Rapport",
				MaxScore: 10,
				Weight:   0.10,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson open professionally - get permission to ask questions, demonstrate research, " +
					"use disarming phrases, and avoid launching into a pitch?",
			},
			{
				Key:      "patience",
				Name:     "Patience",
				MaxScore: 10,
				Weight:   0.25,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson hold back solution talk until the customer had articulated pain? " +
					"Any 'we offer...' or feature talk before the need-payoff phase should cost points heavily.",
			},
			{
				Key:      "implication_depth",
				Name:     "Implication Depth",
				MaxScore: 10,
				Weight:   0.25,
				Scope:    ScopeOutcome,
				Rubric: "Was the full scope of the problem surfaced in the dialogue - consequences cascading from technical " +
					"to business to personal impact? Credit what the customer ended up articulating, however it was elicited.",
			},
			{
				Key:      "monetization",
				Name:     "Monetization Quality",
				MaxScore: 10,
				Weight:   0.05,
				Scope:    ScopeOutcome,
				Rubric: "Does the dialogue contain specific numbers on the cost of the problem - currency amounts, hours, " +
					"percentages? Credit quantification wherever it appears, including figures the customer volunteered.",
			},
			{
				Key:      "spin_sequence",
				Name:     "SPIN Sequence",
				MaxScore: 10,
				Weight:   0.05,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson's questions follow a coherent Situation to Problem to Implication to Need-Payoff " +
					"progression, with situation questions limited to two or three?",
			},
			{
				Key:      "vocabulary",
				Name:     "Vocabulary Compliance",
				MaxScore: 10,
				Weight:   0.05,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson avoid pressure vocabulary (guarantee, best, trust me, great deal) and use " +
					"tentative language (perhaps, might, possibly) instead?",
			},
			{
				Key:      "question_quality",
				Name:     "Question Quality",
				MaxScore: 10,
				Weight:   0.10,
				Scope:    ScopeTechnique,
				Rubric: "Were the salesperson's questions mostly open (What, How, Tell me) with genuine follow-up on answers, " +
					"rather than closed yes/no checks or rapid-fire interrogation?",
			},
			{
				Key:      "talk_ratio",
				Name:     "Client Talk Ratio",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric: "Did the customer do most of the talking (70% or more), giving detailed answers to concise questions? " +
					"Judge from the share and depth of customer speech across the whole dialogue.",
			},
		},
	}
}

// challenger scores the teach-tailor-take-control selling model.
func challenger() Definition {
	return Definition{
		Name:        "challenger",
		DisplayName: "Challenger Sale",
		Description: "Teaching, Tailoring, Taking Control.",
		Dimensions: []Dimension{
			{
				Key:      "teaching",
				Name:     "Teaching",
				MaxScore: 10,
				Weight:   0.40,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson bring a genuine commercial insight - reframe how the customer sees their business " +
					"or problem - rather than leading with product features or generic discovery?",
			},
			{
				Key:      "tailoring",
				Name:     "Tailoring",
				MaxScore: 10,
				Weight:   0.30,
				Scope:    ScopeOutcome,
				Rubric: "Was the message visibly adapted to this customer's industry, role and stated priorities? " +
					"Judge from the whole dialogue whether the insight connected to what the customer actually said and cared about.",
			},
			{
				Key:      "taking_control",
				Name:     "Taking Control",
				MaxScore: 10,
				Weight:   0.30,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson assert constructive tension - push back on objections, discuss money directly, " +
					"and drive toward concrete next steps - without turning aggressive or conceding control of the conversation?",
			},
		},
	}
}

// sandler scores the seven-step submarine selling system.
func sandler() Definition {
	return Definition{
		Name:        "sandler",
		DisplayName: "Sandler Selling System",
		Description: "Bonding, up-front contract, pain, budget, decision, fulfillment, post-sell.",
		Dimensions: []Dimension{
			{
				Key:      "bonding",
				Name:     "Bonding & Rapport",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson build genuine rapport - matching the customer's style, disarming rather than " +
					"charming - before moving into business topics?",
			},
			{
				Key:      "upfront_contract",
				Name:     "Up-Front Contract",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson set an explicit agenda for the call - purpose, time, possible outcomes including " +
					"a comfortable 'no' - and get the customer's agreement to it?",
			},
			{
				Key:      "pain",
				Name:     "Pain Discovery",
				MaxScore: 10,
				Weight:   0.25,
				Scope:    ScopeOutcome,
				Rubric: "Did the dialogue surface real pain below the surface problem - personal and business consequences the " +
					"customer acknowledged? Credit pain the customer articulated however it was elicited.",
			},
			{
				Key:      "budget",
				Name:     "Budget Discussion",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric: "Was money discussed openly - whether the customer can and will invest to solve the pain, with amounts " +
					"or ranges on the table rather than deferred?",
			},
			{
				Key:      "decision",
				Name:     "Decision Process",
				MaxScore: 10,
				Weight:   0.10,
				Scope:    ScopeOutcome,
				Rubric: "Is the customer's decision process visible in the dialogue - who decides, how and when?",
			},
			{
				Key:      "fulfillment",
				Name:     "Fulfillment",
				MaxScore: 10,
				Weight:   0.10,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson present only against the pains, budget and decision criteria established earlier, " +
					"closing the loop on each, instead of a broad feature tour?",
			},
			{
				Key:      "post_sell",
				Name:     "Post-Sell",
				MaxScore: 10,
				Weight:   0.10,
				Scope:    ScopeTechnique,
				Rubric: "Did the salesperson lock in the outcome - confirm the decision, set the next step, and inoculate " +
					"against buyer's remorse or competitor pullback?",
			},
		},
	}
}

// meddic qualifies complex opportunities; every factor is measured by what
// the conversation extracted, not by how it was asked.
func meddic() Definition {
	return Definition{
		Name:        "meddic",
		DisplayName: "MEDDIC Qualification",
		Description: "Metrics, Economic Buyer, Decision Criteria, Decision Process, Identify Pain, Champion.",
		Dimensions: []Dimension{
			{
				Key:      "metrics",
				Name:     "Metrics",
				MaxScore: 10,
				Weight:   0.20,
				Scope:    ScopeOutcome,
				Rubric:   "Does the dialogue establish quantifiable business impact - concrete figures the opportunity can be measured by?",
			},
			{
				Key:      "economic_buyer",
				Name:     "Economic Buyer",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric:   "Is it clear from the dialogue who controls the budget and whether the salesperson has or can get access to them?",
			},
			{
				Key:      "decision_criteria",
				Name:     "Decision Criteria",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric:   "Did the dialogue surface the formal and informal criteria the customer will use to compare options?",
			},
			{
				Key:      "decision_process",
				Name:     "Decision Process",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric:   "Is the customer's path to a decision visible - steps, timeline, approvals, paperwork?",
			},
			{
				Key:      "identify_pain",
				Name:     "Identify Pain",
				MaxScore: 10,
				Weight:   0.20,
				Scope:    ScopeOutcome,
				Rubric:   "Is there a clearly articulated business pain with consequences the customer acknowledges as worth solving?",
			},
			{
				Key:      "champion",
				Name:     "Champion",
				MaxScore: 10,
				Weight:   0.15,
				Scope:    ScopeOutcome,
				Rubric:   "Does the dialogue identify or develop someone on the customer side who will sell internally on the salesperson's behalf?",
			},
		},
	}
}
