package safety

// EventRule maps one canonical adverse event to its trigger keywords.
// Confidence is a static per-event value tuned by table entry, not computed
// at scan time. Severe and Moderate hold the event's own severity
// indicators; the scanner's global modifiers apply on top of them.
type EventRule struct {
	Event      string   `json:"event" dynamodbav:"event"`
	Keywords   []string `json:"keywords" dynamodbav:"keywords"`
	Confidence float64  `json:"confidence" dynamodbav:"confidence"`
	Category   string   `json:"category" dynamodbav:"category"`
	Severe     []string `json:"severe_indicators" dynamodbav:"severe_indicators"`
	Moderate   []string `json:"moderate_indicators" dynamodbav:"moderate_indicators"`
}

// Table order breaks ties when two events first match at the same text
// position.
type Table []EventRule

func BuiltinTable() Table {
	return Table{
		{
			Event:      "injury",
			Keywords:   []string{"injury", "hurt", "injured", "wound", "cut", "bruise", "broken"},
			Confidence: 0.75,
			Category:   "Physical Harm",
			Severe:     []string{"major", "severe", "emergency"},
			Moderate:   []string{"bad", "serious"},
		},
		{
			Event:      "allergic_reaction",
			Keywords:   []string{"allergic", "allergy", "reaction", "rash", "swelling", "itchy"},
			Confidence: 0.7,
			Category:   "Allergic Response",
			Severe:     []string{"severe", "anaphylaxis", "emergency"},
			Moderate:   []string{"bad", "uncomfortable"},
		},
		{
			Event:      "burn",
			Keywords:   []string{"burn", "burned", "burning", "hot", "scalded"},
			Confidence: 0.8,
			Category:   "Thermal Injury",
			Severe:     []string{"severe", "third degree"},
			Moderate:   []string{"painful", "blistered"},
		},
		{
			Event:      "toxic_exposure",
			Keywords:   []string{"toxic", "poison", "chemical", "fumes", "exposure"},
			Confidence: 0.85,
			Category:   "Chemical Hazard",
			Severe:     []string{"poisoned", "emergency"},
			Moderate:   []string{"sick", "nauseous"},
		},
		{
			Event:      "electrical_hazard",
			Keywords:   []string{"shock", "electric", "electrical", "sparks", "short circuit"},
			Confidence: 0.85,
			Category:   "Electrical Safety",
			Severe:     []string{"severe", "unconscious"},
			Moderate:   []string{"painful", "burned"},
		},
		{
			Event:      "choking_hazard",
			Keywords:   []string{"choke", "choking", "swallowed", "stuck", "throat"},
			Confidence: 0.8,
			Category:   "Airway Obstruction",
			Severe:     []string{"can't breathe", "emergency"},
			Moderate:   []string{"difficulty", "breathing"},
		},
	}
}
