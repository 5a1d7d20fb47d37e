package period

import (
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/shopspring/decimal"
)

// DailySeriesDays is how far back the daily expense series reaches.
const DailySeriesDays = 180

// Dashboard is the full-precision view behind the dashboard endpoint.
type Dashboard struct {
	Window     MonthWindow
	Daily      map[string]decimal.Decimal
	Categories CategoryTotals
	KPIs       KPIs
}

// BuildDashboard assembles the current window, the daily expense series, the
// current window's expense breakdown and the KPIs.
func BuildDashboard(transactions []model.Transaction, today time.Time, startDay int) Dashboard {
	w := ComputeMonthWindow(today, startDay)
	return Dashboard{
		Window:     w,
		Daily:      DailyExpenseSeries(transactions, DateOf(today).AddDate(0, 0, -DailySeriesDays)),
		Categories: CategoryBreakdown(transactions, w, model.TypeExpense),
		KPIs:       ComputeKPIs(transactions, w),
	}
}

// Response converts the dashboard into its rounded API shape.
func (d Dashboard) Response(currency string) model.DashboardResponse {
	daily := make(map[string]float64, len(d.Daily))
	for day, total := range d.Daily {
		daily[day] = round2(total)
	}
	return model.DashboardResponse{
		Period: model.Period{
			Start: d.Window.Start.Format(model.DateLayout),
			End:   d.Window.End.Format(model.DateLayout),
		},
		DailyData:    daily,
		CategoryData: d.Categories.Rounded(),
		KPIs:         d.KPIs.Response(currency),
	}
}
