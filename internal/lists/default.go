package lists

// Built-in lists for the chains we screen by default. Verified entries are
// the canonical deployments of widely held tokens; blacklisted and risky
// entries come from manual triage of reported drainer and airdrop-spam
// contracts.
var defaultSets = map[int64]Set{
	1: { // Ethereum mainnet
		Verified: []string{
			"0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
			"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", // USDC
			"0x6B175474E89094C44Da98b954EedeAC495271d0F", // DAI
			"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
			"0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
			"0x514910771AF9Ca656af840dff83E8264EcF986CA", // LINK
			"0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", // UNI
			"0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", // AAVE
		},
		Blacklisted: []string{
			"0x8576aCC5C05D6Ce88f4e49bf65BdF0C62F91353C",
			"0x582fC6b39D4e65b9d4D46E11b1435F68eaB60AD3",
			"0x72a5843cc08275C8171E582972Aa4fDa8C397B2A",
		},
		Risky: []string{
			"0x3f17f1962B36e491b30A40b2405849e597Ba5FB5",
			"0xD4fC541236927E2EAf8F27606bD7309C1Fc2cbee",
		},
	},
	56: { // BNB Chain
		Verified: []string{
			"0xbb4CdB9CBd36B01bD1cBaEF60aF814a3f6F0Ee75", // WBNB
			"0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", // BUSD
			"0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", // USDC (Binance-Peg)
		},
		Blacklisted: []string{
			"0x5FbDB2315678afecb367f032d93F642f64180aa3",
		},
		Risky: []string{
			"0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2",
		},
	},
	137: { // Polygon
		Verified: []string{
			"0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", // USDC.e
			"0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WMATIC
			"0xc2132D05D31c914a87C6611C10748AEb04B58e8F", // USDT
		},
		Blacklisted: []string{
			"0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
		},
		Risky: nil,
	},
	42161: { // Arbitrum One
		Verified: []string{
			"0x912CE59144191C1204E64559FE8253a0e49E6548", // ARB
			"0xaf88d065e77c8cC2239327C5EDb3A432268e5831", // USDC
			"0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", // USDT
			"0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH
		},
		Blacklisted: []string{
			"0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
		},
		Risky: nil,
	},
}

var defaultRegistry = New(defaultSets)

// Default returns the built-in registry. The returned Registry is shared
// and read-only.
func Default() *Registry {
	return defaultRegistry
}
