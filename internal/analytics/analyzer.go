// =============================================================================
// Seller Analytics - Sales Analyzer
// =============================================================================
//
// This module turns one Dataset into the per-seller report. It is a pure,
// single-pass transformation: nothing outside the call is read or mutated.
//
// ANALYSIS PIPELINE:
//   1. Validate the input (missing data, invalid options, empty collections)
//   2. Index products by SKU and sellers by id (last write wins)
//   3. Walk receipts in input order, accumulating per-seller statistics
//      (receipts for unknown sellers and items for unknown SKUs are skipped)
//   4. Rank sellers by profit, descending, keeping first-seen order on ties
//   5. Build top products and the bonus for each ranked seller
//   6. Round monetary values to 2 decimal places for the emitted report
//
// =============================================================================

package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/seller-analytics/internal/types"
)

// TopProductsLimit caps the number of top products reported per seller.
const TopProductsLimit = 10

// =============================================================================
// OPTIONS
// =============================================================================

// Options customizes an analysis run. The zero value uses the built-in
// revenue and bonus calculations and discards log output.
type Options struct {
	// Revenue overrides the per-line revenue calculation.
	// Default: DefaultRevenue (ComputeRevenue).
	Revenue RevenueStrategy

	// Bonus overrides the per-rank bonus calculation.
	// Default: DefaultBonus (ComputeBonus).
	Bonus BonusStrategy

	// Logger receives debug events for skipped receipts and items.
	// Default: a disabled logger.
	Logger *zerolog.Logger
}

// =============================================================================
// RESULT
// =============================================================================

// Stats describes how much of the input took part in the analysis.
type Stats struct {
	ReceiptsProcessed int
	ReceiptsSkipped   int
	ItemsProcessed    int
	ItemsSkipped      int
	SellersRanked     int
}

// Result is the outcome of a successful analysis.
type Result struct {
	Reports []types.SellerReport
	Stats   Stats
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer runs the analysis pipeline with a fixed set of strategies.
// It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	revenue RevenueStrategy
	bonus   BonusStrategy
	logger  zerolog.Logger
}

// New validates opts and returns an Analyzer.
//
// RETURNS:
//   - An InvalidOptionError if a supplied strategy is a nil function.
func New(opts Options) (*Analyzer, error) {
	if err := checkOptions(opts); err != nil {
		return nil, err
	}

	a := &Analyzer{
		revenue: opts.Revenue,
		bonus:   opts.Bonus,
		logger:  zerolog.Nop(),
	}
	if a.revenue == nil {
		a.revenue = DefaultRevenue
	}
	if a.bonus == nil {
		a.bonus = DefaultBonus
	}
	if opts.Logger != nil {
		a.logger = *opts.Logger
	}
	return a, nil
}

// Analyze validates data and opts and returns the ranked seller reports.
// Validation failures abort the call before any processing; no partial
// report is ever returned.
func Analyze(data *types.Dataset, opts Options) ([]types.SellerReport, error) {
	if data == nil {
		return nil, &ValidationError{Kind: KindMissingData, Message: "no data provided"}
	}

	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	return a.Analyze(data)
}

// Analyze returns the ranked seller reports for data.
func (a *Analyzer) Analyze(data *types.Dataset) ([]types.SellerReport, error) {
	result, err := a.Run(data)
	if err != nil {
		return nil, err
	}
	return result.Reports, nil
}

// Run is Analyze plus processing statistics.
func (a *Analyzer) Run(data *types.Dataset) (*Result, error) {
	// =========================================================================
	// STEP 1: VALIDATE INPUT
	// =========================================================================

	if err := checkDataset(data); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 2: BUILD INDICES
	// =========================================================================

	products := indexProducts(data.Products)
	sellers := indexSellers(data.Sellers)

	// =========================================================================
	// STEP 3: ACCUMULATE PER-SELLER STATISTICS
	// =========================================================================

	var stats Stats
	acc := newAccumulator()

	for r := range data.PurchaseRecords {
		receipt := &data.PurchaseRecords[r]

		seller, ok := sellers[receipt.SellerID]
		if !ok {
			stats.ReceiptsSkipped++
			a.logger.Debug().
				Str("receipt_id", receipt.ReceiptID).
				Str("seller_id", receipt.SellerID).
				Msg("skipping receipt for unknown seller")
			continue
		}
		stats.ReceiptsProcessed++

		stat := acc.get(seller)

		for i := range receipt.Items {
			item := &receipt.Items[i]

			product, ok := products[item.SKU]
			if !ok {
				stats.ItemsSkipped++
				a.logger.Debug().
					Str("receipt_id", receipt.ReceiptID).
					Str("sku", item.SKU).
					Msg("skipping item for unknown product")
				continue
			}

			revenue, err := a.revenue.Revenue(item, product)
			if err != nil {
				return nil, fmt.Errorf("receipt %q item %d: %w", receipt.ReceiptID, i, err)
			}
			profit := ComputeProfit(item, product, revenue)

			stat.add(item.SKU, item.Quantity, revenue, profit)
			stats.ItemsProcessed++
		}
	}

	// =========================================================================
	// STEP 4: RANK BY PROFIT
	// =========================================================================

	ranked := acc.ordered()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].profit > ranked[j].profit
	})
	stats.SellersRanked = len(ranked)

	// =========================================================================
	// STEP 5: BUILD REPORTS
	// =========================================================================

	reports := make([]types.SellerReport, len(ranked))
	for rank, stat := range ranked {
		bonus := a.bonus.Bonus(rank, len(ranked), stat.profit)

		reports[rank] = types.SellerReport{
			SellerID:    stat.sellerID,
			Name:        stat.name,
			Revenue:     round2(stat.revenue),
			Profit:      round2(stat.profit),
			SalesCount:  stat.salesCount,
			TopProducts: stat.topProducts(TopProductsLimit),
			Bonus:       round2(bonus),
		}
	}

	return &Result{Reports: reports, Stats: stats}, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

func checkOptions(opts Options) error {
	if f, ok := opts.Revenue.(RevenueFunc); ok && f == nil {
		return &InvalidOptionError{Option: "calculateRevenue"}
	}
	if f, ok := opts.Bonus.(BonusFunc); ok && f == nil {
		return &InvalidOptionError{Option: "calculateBonus"}
	}
	return nil
}

func checkDataset(data *types.Dataset) error {
	switch {
	case data == nil:
		return &ValidationError{Kind: KindMissingData, Message: "no data provided"}
	case len(data.Sellers) == 0:
		return &ValidationError{Kind: KindEmptySellers, Message: "sellers collection is missing or empty"}
	case len(data.Products) == 0:
		return &ValidationError{Kind: KindEmptyProducts, Message: "products collection is missing or empty"}
	case len(data.PurchaseRecords) == 0:
		return &ValidationError{Kind: KindEmptyPurchaseRecords, Message: "purchase_records collection is missing or empty"}
	}
	return nil
}

// =============================================================================
// INDICES
// =============================================================================

func indexProducts(products []types.Product) map[string]*types.Product {
	index := make(map[string]*types.Product, len(products))
	for i := range products {
		index[products[i].SKU] = &products[i]
	}
	return index
}

func indexSellers(sellers []types.Seller) map[string]*types.Seller {
	index := make(map[string]*types.Seller, len(sellers))
	for i := range sellers {
		index[sellers[i].ID] = &sellers[i]
	}
	return index
}

// =============================================================================
// ACCUMULATION
// =============================================================================

// accumulator holds one sellerStat per seller in first-seen order.
type accumulator struct {
	byID  map[string]*sellerStat
	order []*sellerStat
}

func newAccumulator() *accumulator {
	return &accumulator{byID: make(map[string]*sellerStat)}
}

func (a *accumulator) get(seller *types.Seller) *sellerStat {
	if stat, ok := a.byID[seller.ID]; ok {
		return stat
	}
	stat := &sellerStat{
		sellerID:   seller.ID,
		name:       seller.FullName(),
		quantities: make(map[string]float64),
	}
	a.byID[seller.ID] = stat
	a.order = append(a.order, stat)
	return stat
}

func (a *accumulator) ordered() []*sellerStat {
	out := make([]*sellerStat, len(a.order))
	copy(out, a.order)
	return out
}

// sellerStat is the running, unrounded total for one seller.
type sellerStat struct {
	sellerID   string
	name       string
	revenue    float64
	profit     float64
	salesCount int

	quantities map[string]float64
	skuOrder   []string
}

func (s *sellerStat) add(sku string, quantity, revenue, profit float64) {
	s.revenue += revenue
	s.profit += profit
	s.salesCount++

	if _, seen := s.quantities[sku]; !seen {
		s.skuOrder = append(s.skuOrder, sku)
	}
	s.quantities[sku] += quantity
}

// topProducts returns up to limit products by quantity, descending. Ties keep
// the order in which the SKUs were first sold.
func (s *sellerStat) topProducts(limit int) []types.TopProduct {
	top := make([]types.TopProduct, 0, len(s.skuOrder))
	for _, sku := range s.skuOrder {
		top = append(top, types.TopProduct{SKU: sku, Quantity: s.quantities[sku]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// round2 rounds half away from zero to 2 decimal places. Non-finite values
// are returned unchanged. Ties are decided on the shortest decimal form of
// v, so 1.005 rounds to 1.01 where rounding the binary value gives 1.00.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
