package types

// StakingStats is the staking economics document persisted for the website.
// Nullable fields are pointers so that a metric the run failed to obtain
// serializes as JSON null rather than a zero value.
//
// The raw chain values are kept verbatim as strings: they can exceed the
// float64 safe-integer range, and exact string equality is what drives
// change detection.
type StakingStats struct {
	CalculatedAprPercentage *float64 `json:"calculated_apr_percentage"`
	TotalStakedNil          *float64 `json:"total_staked_nil"`
	ActiveValidatorCount    *int64   `json:"active_validator_count"`
	RawInflationRate        *string  `json:"raw_inflation_rate"`
	RawTotalSupplyUnil      *string  `json:"raw_total_supply_unil"`
	RawBondedTokensUnil     *string  `json:"raw_bonded_tokens_unil"`
	LastUpdatedUTC          string   `json:"last_updated_utc"`
}

// Equal reports whether the two documents carry the same metric values.
// LastUpdatedUTC is deliberately excluded: its volatility would otherwise
// force a write on every run.
func (s *StakingStats) Equal(other *StakingStats) bool {
	if other == nil {
		return false
	}

	return ptrEqual(s.CalculatedAprPercentage, other.CalculatedAprPercentage) &&
		ptrEqual(s.TotalStakedNil, other.TotalStakedNil) &&
		ptrEqual(s.ActiveValidatorCount, other.ActiveValidatorCount) &&
		ptrEqual(s.RawInflationRate, other.RawInflationRate) &&
		ptrEqual(s.RawTotalSupplyUnil, other.RawTotalSupplyUnil) &&
		ptrEqual(s.RawBondedTokensUnil, other.RawBondedTokensUnil)
}

// ptrEqual treats two nil pointers as equal.
func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
