package aggregates

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means aggregate write methods start and manage the DB transaction internally.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// LockPolicy names how an aggregate serializes writers touching the same rows.
type LockPolicy string

const (
	// LockPolicyRowForUpdate takes SELECT ... FOR UPDATE locks on every row it mutates.
	LockPolicyRowForUpdate LockPolicy = "row_for_update"
)

// Policy describes aggregate-level expectations.
type Policy struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	LockPolicy       LockPolicy
	Notes            string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Policy() Policy
}

// RequiresAggregateOwnedTx returns true when write transaction ownership is aggregate-owned.
func (p Policy) RequiresAggregateOwnedTx() bool {
	return p.WriteTxOwnership == WriteTxOwnedByAggregate
}
