package categorize

// Rule scores descriptions for one category. Patterns are matched case-insensitively.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords,flow"`
	Patterns []string `yaml:"patterns,omitempty,flow"`
}

// DefaultRules returns the built-in taxonomy. Order matters: on equal scores
// the earlier category wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: "Food & Dining",
			Keywords: []string{"restaurant", "cafe", "coffee", "pizza", "burger", "sushi", "bakery",
				"deli", "grocery", "supermarket", "market", "food", "dining", "eat",
				"mcdonald", "subway", "starbucks", "dunkin", "chipotle", "panera"},
			Patterns: []string{`\b(food|meal|lunch|dinner|breakfast)\b`},
		},
		{
			Category: "Transportation",
			Keywords: []string{"uber", "lyft", "taxi", "gas", "fuel", "parking", "transit", "metro",
				"bus", "train", "airline", "flight", "car rental", "toll"},
			Patterns: []string{`\b(transport|commute|travel)\b`},
		},
		{
			Category: "Shopping",
			Keywords: []string{"amazon", "walmart", "target", "store", "shop", "mall", "retail",
				"clothing", "shoes", "fashion", "department"},
			Patterns: []string{`\b(purchase|buy|order)\b`},
		},
		{
			Category: "Entertainment",
			Keywords: []string{"netflix", "spotify", "movie", "cinema", "theater", "concert", "game",
				"music", "streaming", "hulu", "disney", "hbo", "youtube"},
			Patterns: []string{`\b(entertainment|show|event)\b`},
		},
		{
			Category: "Utilities",
			Keywords: []string{"electric", "gas", "water", "internet", "cable", "phone", "mobile",
				"verizon", "att", "comcast", "utility", "power", "energy"},
			Patterns: []string{`\b(bill|service|monthly)\b`},
		},
		{
			Category: "Healthcare",
			Keywords: []string{"pharmacy", "doctor", "hospital", "medical", "health", "dental",
				"vision", "insurance", "cvs", "walgreens", "clinic"},
			Patterns: []string{`\b(health|medical|prescription)\b`},
		},
		{
			Category: "Housing",
			Keywords: []string{"rent", "mortgage", "lease", "apartment", "property", "real estate",
				"home", "house", "maintenance", "repair"},
			Patterns: []string{`\b(housing|residence|dwelling)\b`},
		},
		{
			Category: "Insurance",
			Keywords: []string{"insurance", "premium", "coverage", "policy", "geico", "allstate",
				"progressive", "state farm"},
			Patterns: []string{`\b(insurance|coverage|premium)\b`},
		},
		{
			Category: "Education",
			Keywords: []string{"school", "university", "college", "tuition", "course", "class",
				"book", "education", "training", "student"},
			Patterns: []string{`\b(education|learning|study)\b`},
		},
		{
			Category: "Personal Care",
			Keywords: []string{"salon", "spa", "barber", "hair", "nail", "beauty", "cosmetic",
				"gym", "fitness", "yoga", "massage"},
			Patterns: []string{`\b(personal|care|grooming)\b`},
		},
		{
			Category: "Income",
			Keywords: []string{"salary", "paycheck", "deposit", "transfer", "income", "payment",
				"refund", "reimbursement", "dividend", "interest"},
			Patterns: []string{`\b(income|earning|revenue)\b`},
		},
		{
			Category: "Investment",
			Keywords: []string{"investment", "stock", "bond", "mutual fund", "etf", "crypto",
				"bitcoin", "trading", "brokerage", "robinhood", "fidelity"},
			Patterns: []string{`\b(invest|trade|portfolio)\b`},
		},
		{
			Category: "Charity",
			Keywords: []string{"donation", "charity", "nonprofit", "foundation", "contribute",
				"give", "fundraiser"},
			Patterns: []string{`\b(charity|donate|contribution)\b`},
		},
		{
			Category: "Fees & Charges",
			Keywords: []string{"fee", "charge", "penalty", "interest", "overdraft", "atm",
				"service charge", "late fee"},
			Patterns: []string{`\b(fee|charge|penalty)\b`},
		},
		{
			Category: "Travel",
			Keywords: []string{"hotel", "motel", "airbnb", "booking", "vacation", "trip",
				"resort", "tourism", "luggage"},
			Patterns: []string{`\b(travel|vacation|trip)\b`},
		},
		{
			Category: "Subscriptions",
			Keywords: []string{"subscription", "membership", "monthly", "annual", "recurring",
				"prime", "costco", "sam"},
			Patterns: []string{`\b(subscription|membership)\b`},
		},
		{
			Category: "Pets",
			Keywords: []string{"pet", "vet", "veterinary", "animal", "dog", "cat", "petco",
				"petsmart", "grooming"},
			Patterns: []string{`\b(pet|animal|veterinary)\b`},
		},
		{
			Category: "Gifts",
			Keywords: []string{"gift", "present", "birthday", "holiday", "christmas", "anniversary"},
			Patterns: []string{`\b(gift|present)\b`},
		},
		{
			Category: "Cash & ATM",
			Keywords: []string{"atm", "cash", "withdrawal", "deposit"},
			Patterns: []string{`\b(atm|cash|withdrawal)\b`},
		},
		{
			Category: "Other",
		},
	}
}
