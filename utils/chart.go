package utils

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/elC0mpa/oci-freetier/model"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	colorLow  = "#1a9850"
	colorMid  = "#fee08b"
	colorHigh = "#d73027"
)

var chartBorder = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawUtilizationChart renders Free Tier utilization percentages per
// dimension as a bar chart.
func DrawUtilizationChart(inv *model.Inventory) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📊 FREE TIER UTILIZATION"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(72, 14)

	push := func(label string, used, limit int) {
		percent := 0.0
		if limit > 0 {
			percent = float64(used) / float64(limit) * 100
		}
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%s %.0f%%", label, percent),
			Values: []barchart.BarValue{
				{
					Value: percent,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(utilizationColor(percent))),
				},
			},
		})
	}

	push("AMD", len(inv.AMDInstances), model.MaxAMDInstances)
	push("OCPU", inv.ARMOCPUsUsed(), model.MaxARMOCPUs)
	push("Mem", inv.ARMMemoryUsed(), model.MaxARMMemoryGB)
	push("Disk", inv.StorageUsed(), model.MaxStorageGB)
	push("VCN", len(inv.VCNs), model.MaxVCNs)

	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, chartBorder.Render(bc.View())))
}

func utilizationColor(percent float64) string {
	switch {
	case percent >= 90:
		return colorHigh
	case percent >= 60:
		return colorMid
	default:
		return colorLow
	}
}
