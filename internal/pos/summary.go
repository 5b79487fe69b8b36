package pos

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	StatusOK            = "ok"
	StatusNotConfigured = "not_configured"
	StatusUnavailable   = "unavailable"
)

const topItemLimit = 5

// Summary is a 30-day trailing aggregate of point-of-sale data for one
// store. Only Status is meaningful unless Status is "ok".
type Summary struct {
	Status       string    `json:"status"`
	Days         int       `json:"days,omitempty"`
	GrossSales   float64   `json:"gross_sales,omitempty"`
	NetSales     float64   `json:"net_sales,omitempty"`
	Transactions int       `json:"transactions,omitempty"`
	ItemsSold    int       `json:"items_sold,omitempty"`
	TopItems     []TopItem `json:"top_items,omitempty"`
}

type TopItem struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	GrossSales float64 `json:"gross_sales"`
}

// summarize folds warehouse rows into a Summary. Rows arrive as loosely
// typed maps, so every numeric field goes through defensive coercion.
func summarize(dailyRows []map[string]any, itemRows []map[string]any) Summary {
	summary := Summary{
		Status: StatusOK,
		Days:   len(dailyRows),
	}

	var gross, net float64
	for _, row := range dailyRows {
		gross += coerceFloat(row["gross_sales"])
		net += coerceFloat(row["net_sales"])
		summary.Transactions += coerceInt(row["transactions"])
		summary.ItemsSold += coerceInt(row["items_sold"])
	}
	summary.GrossSales = round2(gross)
	summary.NetSales = round2(net)
	summary.TopItems = topItems(itemRows)
	return summary
}

func topItems(itemRows []map[string]any) []TopItem {
	totals := make(map[string]*TopItem)
	order := make([]string, 0)

	for _, row := range itemRows {
		name := strings.TrimSpace(coerceString(row["item_name"]))
		if name == "" {
			name = strings.TrimSpace(coerceString(row["sku"]))
		}
		if name == "" {
			name = "Unknown item"
		}

		entry, seen := totals[name]
		if !seen {
			entry = &TopItem{Name: name}
			totals[name] = entry
			order = append(order, name)
		}
		entry.Quantity += coerceFloat(row["quantity"])
		entry.GrossSales += coerceFloat(row["gross_sales"])
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(left, right int) bool {
		return totals[order[left]].Quantity > totals[order[right]].Quantity
	})
	if len(order) > topItemLimit {
		order = order[:topItemLimit]
	}

	top := make([]TopItem, 0, len(order))
	for _, name := range order {
		entry := *totals[name]
		entry.GrossSales = round2(entry.GrossSales)
		top = append(top, entry)
	}
	return top
}

func coerceFloat(value any) float64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint:
		return float64(typed)
	case uint32:
		return float64(typed)
	case uint64:
		return float64(typed)
	case []byte:
		return parseFloat(string(typed))
	case string:
		return parseFloat(typed)
	default:
		return 0
	}
}

func coerceInt(value any) int {
	return int(coerceFloat(value))
}

func coerceString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []byte:
		return string(typed)
	default:
		return ""
	}
}

func parseFloat(raw string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
