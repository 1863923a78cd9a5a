package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// ModuleAccount is the address holding every pool's reserves. Reserves
	// are asset-account balances, not a separate store; the pool struct only
	// mirrors them.
	ModuleAccount = "amm_reserve_account"
)

// Event types emitted by the pool engine
const (
	EventTypePoolCreated     = "pool_created"
	EventTypePoolSeeded      = "pool_seeded"
	EventTypeLiquidityAdded  = "liquidity_added"
	EventTypeLiquidityBurned = "liquidity_burned"
	EventTypeSwap            = "swap"
	EventTypeBonusPaid       = "bonus_paid"
)
