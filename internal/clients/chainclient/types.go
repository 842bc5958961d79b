package chainclient

// Response shapes of the Cosmos SDK REST gateway. Only the fields the
// calculation needs are decoded.

type inflationResponse struct {
	Inflation string `json:"inflation"`
}

type stakingPoolResponse struct {
	Pool struct {
		NotBondedTokens string `json:"not_bonded_tokens"`
		BondedTokens    string `json:"bonded_tokens"`
	} `json:"pool"`
}

type supplyByDenomResponse struct {
	Amount struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"amount"`
}

type validatorsResponse struct {
	Pagination struct {
		NextKey string `json:"next_key"`
		Total   string `json:"total"`
	} `json:"pagination"`
}
