package export

import (
	"encoding/json"
	"fmt"

	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// OrdersWorkbook builds an xlsx workbook listing orders, one row per order
// with its line items flattened into a summary column.
func OrdersWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Date", "Customer", "Email", "Status", "Items", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.User.Name,
			order.User.Email,
			string(order.Status),
			itemSummary(order.OrderItems),
			order.TotalAmount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

// SubscribersWorkbook builds an xlsx workbook of newsletter subscribers
func SubscribersWorkbook(subscribers []model.Subscriber) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Subscribers"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Email")
	f.SetCellValue(sheet, "B1", "Subscribed At")

	for row, sub := range subscribers {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row+2), sub.Email)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row+2), sub.CreatedAt.Format("2006-01-02 15:04"))
	}

	return f, nil
}

func itemSummary(items []model.OrderItem) string {
	summary := ""
	for i, item := range items {
		if i > 0 {
			summary += "; "
		}
		title := item.Product.Title
		if title == "" {
			// Fall back to the placement snapshot for deleted products
			var snap struct {
				Title string `json:"title"`
			}
			if err := json.Unmarshal([]byte(item.Snapshot), &snap); err == nil {
				title = snap.Title
			}
		}
		summary += fmt.Sprintf("%s x%d", title, item.Quantity)
	}
	return summary
}
