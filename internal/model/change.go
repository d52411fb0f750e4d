package model

// ChangeType identifies what kind of mutation a change notification
// describes.
type ChangeType string

const (
	// ChangeInit is delivered once to each subscriber on registration.
	ChangeInit ChangeType = "init"

	ChangeTransactionAdd    ChangeType = "transaction:add"
	ChangeTransactionUpdate ChangeType = "transaction:update"
	ChangeTransactionDelete ChangeType = "transaction:delete"

	ChangeCategoryAdd    ChangeType = "category:add"
	ChangeCategoryUpdate ChangeType = "category:update"

	ChangeRecurringAdd    ChangeType = "recurring:add"
	ChangeRecurringUpdate ChangeType = "recurring:update"
	ChangeRecurringDelete ChangeType = "recurring:delete"

	ChangeSettings ChangeType = "settings:update"
	ChangeImport   ChangeType = "data:import"
	ChangeReset    ChangeType = "data:reset"
	ChangeMonth    ChangeType = "view:month"
)

// ImportStrategy selects how an imported snapshot is reconciled against
// current state.
type ImportStrategy string

const (
	// StrategyReplace discards current collections in favor of the import.
	StrategyReplace ImportStrategy = "replace"
	// StrategyMerge keeps current records and adds imported ones whose ids
	// are not already present.
	StrategyMerge ImportStrategy = "merge"
)

// Change describes a single mutation for subscribers.
type Change struct {
	Type ChangeType
	// ID is the affected entity id for entity-level changes.
	ID string
	// Strategy is set for ChangeImport.
	Strategy ImportStrategy
}
