package sunflower

// Inventory is an opaque snapshot of item counts supplied by the
// caller. Missing items count as zero.
type Inventory map[string]float64

func (inv Inventory) Get(item string) float64 {
	return inv[item]
}

// PurchasePolicy decides whether a run should click through the axe
// store. The thresholds are configuration points, the decision itself
// is fixed: buy when there are already more than AxeThreshold axes or
// more than GoldThreshold gold to restock with.
type PurchasePolicy struct {
	AxeThreshold  float64 `json:"axe_threshold"`
	GoldThreshold float64 `json:"gold_threshold"`
}

var DefaultPurchasePolicy = PurchasePolicy{
	AxeThreshold:  10,
	GoldThreshold: 500,
}

func (p PurchasePolicy) ShouldPurchaseAxes(inv Inventory) bool {
	return inv.Get("axes") > p.AxeThreshold || inv.Get("gold") > p.GoldThreshold
}
