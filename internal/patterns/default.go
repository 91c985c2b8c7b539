package patterns

var defaultRules = Rules{
	// Promotional or urgency language in a display name. Legitimate tokens
	// do not tell you to visit a website or claim a reward.
	ScamNames: []string{
		`(?i)\b(free|claim|airdrop|bonus|reward|giveaway|gift)\b`,
		`(?i)\bvisit\b.*\b(site|website|url|link)\b`,
		`(?i)\b(act now|limited time|hurry|last chance|don'?t miss)\b`,
		`(?i)(www\.|https?://|\.com\b|\.io\b|\.xyz\b|t\.me/)`,
		`(?i)\$\s?\d[\d,]*(\.\d+)?\s*(usd[tc]?|eth|btc|bnb)\b`, // "$5000 USDT" glued to a ticker
		`(?i)\b\d[\d,]{3,}\s*(usd[tc]?|eth|btc|bnb)\b`,
		`(?i)\b(redeem|swap now|connect wallet)\b`,
	},
	// Symbols that are purely numeric, currency-prefixed, or an imperative.
	ScamSymbols: []string{
		`^[0-9]+$`,
		`^\$`,
		`(?i)^(visit|claim|www|free|airdrop|bonus|reward|gift)$`,
		`(?i)\.(com|io|xyz|net|org)$`,
	},
	// Generic marketing phrasing, weaker signal than a scam-name hit.
	Promotional: []string{
		`(?i)\b(visit|go to|check out|access at|available at)\b`,
		`(?i)\b(official|exclusive|limited)\s+(offer|drop|sale|mint)\b`,
		`(?i)\b(earn|get)\s+(up to\s+)?\d+\s*%`,
		`(?i)[#@]\w+`,
	},
	// Canonical brand tokens and the near-miss spellings seen in the wild.
	// Variants deliberately exclude the canonical spelling itself.
	Impersonation: []ImpersonationPair{
		{Original: "ethereum", Variants: []string{"etherum", "ethereom", "etherium", "ethereun", "3thereum"}},
		{Original: "bitcoin", Variants: []string{"bitcoln", "bitcion", "b1tcoin", "bitcoim"}},
		{Original: "tether", Variants: []string{"teather", "tetther", "thether"}},
		{Original: "chainlink", Variants: []string{"chainlnk", "chainllink", "cha1nlink", "chianlink"}},
		{Original: "uniswap", Variants: []string{"unlswap", "un1swap", "uniswop", "unisswap"}},
		{Original: "circle", Variants: []string{"c1rcle", "cirle", "circl3"}},
		{Original: "binance", Variants: []string{"blnance", "binanse", "b1nance"}},
		{Original: "polygon", Variants: []string{"polyg0n", "poligon", "pollygon"}},
		{Original: "arbitrum", Variants: []string{"arb1trum", "arbitrun", "arbltrum"}},
		{Original: "aave", Variants: []string{"aav3", "aaave"}},
	},
}

var defaultLibrary *Library

func init() {
	lib, err := Compile(defaultRules)
	if err != nil {
		// Built-in rules are fixed at compile time; a bad expression is a bug.
		panic("patterns: invalid built-in rule: " + err.Error())
	}
	defaultLibrary = lib
}

// Default returns the built-in rule library. The returned Library is
// shared and read-only.
func Default() *Library {
	return defaultLibrary
}
