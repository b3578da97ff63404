package scheduler

import "github.com/grafiki-ochrony/guard-roster/backend/internal/domain"

// contractRank orders employment-contract (UOP) guards before
// civil-contract (UZ) ones, so UOP hours climb toward the statutory
// norm first.
func contractRank(c domain.ContractType) int {
	if c == domain.ContractEmployment {
		return 0
	}
	return 1
}
