package services

import (
	"github.com/shopspring/decimal"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// NetRequirement computes the net requirement and criticality for a
// single node:
//
//	net      = max(0, gross + safetyStock - onHand)
//	critical = onHand < gross
//
// Safety stock raises the net requirement but does not by itself make a
// node critical; criticality only means the snapshot cannot cover the
// gross demand.
func NetRequirement(gross, onHand, safetyStock entities.Quantity) (entities.Quantity, bool) {
	net := gross.Add(safetyStock).Sub(onHand)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return net, onHand.LessThan(gross)
}
