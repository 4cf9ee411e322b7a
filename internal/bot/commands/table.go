package commands

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"PizzaBot/internal/core/domain"
)

// renderCartTable draws cart lines as an ASCII table for a <code> block.
func renderCartTable(lines []domain.CartLine) string {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Назва", "N", "Сума"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, line := range lines {
		table.Append([]string{
			line.Name,
			strconv.Itoa(line.Quantity),
			formatPrice(line.Subtotal),
		})
	}
	table.Render()
	return strings.TrimRight(buf.String(), "\n")
}
