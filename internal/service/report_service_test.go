package service

import (
	"testing"

	"github.com/Akhileshkolipakula/soda-business-manager/internal/model"
)

func TestSummaryOnEmptyStore(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.reports.GetSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalStock != 0 || summary.TotalRevenue != 0 || summary.CostUsed != 0 ||
		summary.TotalInvestment != 0 || summary.RemainingInvestment != 0 || summary.Profit != 0 {
		t.Fatalf("empty store summary should be all zero: %+v", summary)
	}

	rollup, err := env.reports.GetMonthlyRollup()
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if len(rollup) != 0 {
		t.Fatalf("empty store rollup: got %d rows", len(rollup))
	}
}

func TestSummaryIdentities(t *testing.T) {
	env := newTestEnv(t)
	product := env.newProduct(t, "Cola", 10, 15, 0)

	if _, err := env.ledger.AddInvestment(5000, "seed capital", date("2026-01-01"), "tester"); err != nil {
		t.Fatalf("add investment: %v", err)
	}
	if _, err := env.ledger.AddStock(product.ID, 100, date("2026-01-05"), "tester"); err != nil {
		t.Fatalf("add stock: %v", err)
	}
	if _, err := env.ledger.RecordSale(&SaleRequest{
		ProductID: product.ID,
		Quantity:  30,
		Date:      date("2026-01-20"),
		Customer:  &model.Customer{Name: "Acme"},
	}, "tester"); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	summary, err := env.reports.GetSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalInvestment != 5000 {
		t.Fatalf("total investment: want 5000, got %d", summary.TotalInvestment)
	}
	if summary.RemainingInvestment != summary.TotalInvestment-summary.CostUsed {
		t.Fatalf("remaining investment identity broken: %+v", summary)
	}
	if summary.Profit != summary.TotalRevenue-summary.CostUsed {
		t.Fatalf("profit identity broken: %+v", summary)
	}
	if summary.RemainingInvestment != 4000 {
		t.Fatalf("remaining investment: want 4000, got %d", summary.RemainingInvestment)
	}
}

// Months with only revenue or only cost still appear in the rollup, with
// zero in the missing series, and the rollup sums back to the totals.
func TestMonthlyRollupZeroFillAndTotals(t *testing.T) {
	env := newTestEnv(t)
	product := env.newProduct(t, "Cola", 10, 15, 0)

	// January: a batch and a sale. March: only a sale.
	if _, err := env.ledger.AddStock(product.ID, 100, date("2026-01-05"), "tester"); err != nil {
		t.Fatalf("add stock: %v", err)
	}
	for _, d := range []string{"2026-01-20", "2026-03-02"} {
		if _, err := env.ledger.RecordSale(&SaleRequest{
			ProductID: product.ID,
			Quantity:  10,
			Date:      date(d),
			Customer:  &model.Customer{Name: "Acme"},
		}, "tester"); err != nil {
			t.Fatalf("sale on %s: %v", d, err)
		}
	}

	rollup, err := env.reports.GetMonthlyRollup()
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if len(rollup) != 2 {
		t.Fatalf("rollup rows: want 2, got %d (%+v)", len(rollup), rollup)
	}

	// Sorted ascending by month
	if rollup[0].Month != "2026-01" || rollup[1].Month != "2026-03" {
		t.Fatalf("rollup months: got %s, %s", rollup[0].Month, rollup[1].Month)
	}

	jan, mar := rollup[0], rollup[1]
	if jan.Revenue != 150 || jan.Cost != 1000 || jan.Profit != -850 {
		t.Fatalf("january row: %+v", jan)
	}
	if mar.Revenue != 150 || mar.Cost != 0 || mar.Profit != 150 {
		t.Fatalf("march row: %+v", mar)
	}

	summary, err := env.reports.GetSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var revenueSum, costSum int64
	for _, row := range rollup {
		revenueSum += row.Revenue
		costSum += row.Cost
	}
	if revenueSum != summary.TotalRevenue || costSum != summary.CostUsed {
		t.Fatalf("rollup does not sum to totals: rollup %d/%d, summary %+v", revenueSum, costSum, summary)
	}
}

func TestTopFlavorsRankedByRevenue(t *testing.T) {
	env := newTestEnv(t)
	cola := env.newProduct(t, "Cola", 10, 15, 0)
	lemon := env.newProduct(t, "Lemon", 10, 20, 0)

	for _, p := range []*model.Product{cola, lemon} {
		if _, err := env.ledger.AddStock(p.ID, 100, date("2026-01-05"), "tester"); err != nil {
			t.Fatalf("add stock: %v", err)
		}
	}

	// Cola: 10 units at 15 = 150. Lemon: 10 units at 20 = 200.
	for _, p := range []*model.Product{cola, lemon} {
		if _, err := env.ledger.RecordSale(&SaleRequest{
			ProductID: p.ID,
			Quantity:  10,
			Date:      date("2026-01-20"),
			Customer:  &model.Customer{Name: "Acme"},
		}, "tester"); err != nil {
			t.Fatalf("record sale: %v", err)
		}
	}

	flavors, err := env.reports.GetTopFlavors()
	if err != nil {
		t.Fatalf("top flavors: %v", err)
	}
	if len(flavors) != 2 {
		t.Fatalf("top flavors rows: want 2, got %d", len(flavors))
	}
	if flavors[0].FlavorName != "Lemon" || flavors[0].Revenue != 200 {
		t.Fatalf("first flavor: %+v", flavors[0])
	}
	if flavors[1].FlavorName != "Cola" || flavors[1].Revenue != 150 {
		t.Fatalf("second flavor: %+v", flavors[1])
	}
}

func TestTopCustomersRankedByRevenue(t *testing.T) {
	env := newTestEnv(t)
	product := env.newProduct(t, "Cola", 10, 15, 0)
	if _, err := env.ledger.AddStock(product.ID, 100, date("2026-01-05"), "tester"); err != nil {
		t.Fatalf("add stock: %v", err)
	}

	buyers := []struct {
		name string
		qty  int
	}{
		{"Small Stall", 2},
		{"Acme", 20},
	}
	for _, b := range buyers {
		if _, err := env.ledger.RecordSale(&SaleRequest{
			ProductID: product.ID,
			Quantity:  b.qty,
			Date:      date("2026-01-20"),
			Customer:  &model.Customer{Name: b.name},
		}, "tester"); err != nil {
			t.Fatalf("sale to %s: %v", b.name, err)
		}
	}

	customers, err := env.reports.GetTopCustomers()
	if err != nil {
		t.Fatalf("top customers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("top customers rows: want 2, got %d", len(customers))
	}
	if customers[0].CustomerName != "Acme" || customers[0].Revenue != 300 {
		t.Fatalf("first customer: %+v", customers[0])
	}
	if customers[1].CustomerName != "Small Stall" || customers[1].Quantity != 2 {
		t.Fatalf("second customer: %+v", customers[1])
	}
}

// The threshold is strict: stock 9 is flagged, stock 10 is not.
func TestLowStockBoundary(t *testing.T) {
	env := newTestEnv(t)
	low := env.newProduct(t, "Cola", 10, 15, 9)
	env.newProduct(t, "Lemon", 10, 15, 10)

	products, err := env.reports.GetLowStock()
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("low stock rows: want 1, got %d", len(products))
	}
	if products[0].ID != low.ID {
		t.Fatalf("wrong product flagged: %+v", products[0])
	}
}

func TestHistoriesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	product := env.newProduct(t, "Cola", 10, 15, 0)

	for _, d := range []string{"2026-01-05", "2026-02-05"} {
		if _, err := env.ledger.AddStock(product.ID, 10, date(d), "tester"); err != nil {
			t.Fatalf("add stock: %v", err)
		}
	}

	additions, err := env.reports.GetStockHistory()
	if err != nil {
		t.Fatalf("stock history: %v", err)
	}
	if len(additions) != 2 {
		t.Fatalf("stock history rows: want 2, got %d", len(additions))
	}
	if additions[0].CreatedAt.Before(additions[1].CreatedAt) {
		t.Fatalf("stock history not newest first")
	}
	if additions[0].Product == nil || additions[0].Product.Flavor == nil {
		t.Fatalf("stock history missing preloads: %+v", additions[0])
	}
}
