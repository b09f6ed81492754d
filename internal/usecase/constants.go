package usecase

import "time"

const (
	// BalanceCacheTTL is how long cached balance reads stay valid; the change
	// notifier invalidates them earlier on any mutation.
	BalanceCacheTTL = 5 * time.Minute

	// convertedScale is the number of decimal places kept for amounts
	// converted to the base currency.
	convertedScale = 2
)
