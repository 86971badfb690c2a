package packets

import "packetgen/core/apperr"

// Ordering selects the entry order used for every artifact of a run.
type Ordering string

const (
	// OrderByID sorts entries by numeric id ascending.
	OrderByID Ordering = "id"
	// OrderByName sorts entries by symbolic name ascending, ties by id.
	OrderByName Ordering = "name"
	// OrderInsertion keeps the order of the source table.
	OrderInsertion Ordering = "insertion"
)

// ParseOrdering validates an ordering name. Empty selects OrderByID.
func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(s) {
	case "":
		return OrderByID, nil
	case OrderByID, OrderByName, OrderInsertion:
		return Ordering(s), nil
	default:
		return "", apperr.Configuration("packets.ordering", "unknown ordering %q (want id, name or insertion)", s)
	}
}
