package screener

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

// ValidatePools checks pool identities before any RPC work starts.
func ValidatePools(pools []model.PoolIdentity) error {
	if len(pools) == 0 {
		return fmt.Errorf("at least one pool is required")
	}

	labels := make(map[string]struct{}, len(pools))
	for i, pool := range pools {
		if pool.Label == "" {
			return fmt.Errorf("pool %d: label is required", i)
		}
		key := strings.ToLower(pool.Label)
		if _, ok := labels[key]; ok {
			return fmt.Errorf("duplicate pool label %q", pool.Label)
		}
		labels[key] = struct{}{}

		if !common.IsHexAddress(pool.PoolAddress) {
			return fmt.Errorf("pool %q: invalid pool address %q", pool.Label, pool.PoolAddress)
		}
		if !common.IsHexAddress(pool.AltTokenAddress) {
			return fmt.Errorf("pool %q: invalid alt token address %q", pool.Label, pool.AltTokenAddress)
		}
		if pool.QuoteTokenAddress != "" && !common.IsHexAddress(pool.QuoteTokenAddress) {
			return fmt.Errorf("pool %q: invalid quote token address %q", pool.Label, pool.QuoteTokenAddress)
		}
	}

	return nil
}
