package utils

import (
	"fmt"
	"os"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawInventoryTable renders the per-category tenancy scan summary.
func DrawInventoryTable(inv *model.Inventory) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📋 RESOURCE INVENTORY"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Found", "Free Tier Limit"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	tw.AppendRows([]table.Row{
		{"AMD instances", len(inv.AMDInstances), model.MaxAMDInstances},
		{"ARM instances", len(inv.ARMInstances), model.MaxARMInstances},
		{"ARM OCPUs", inv.ARMOCPUsUsed(), model.MaxARMOCPUs},
		{"ARM memory (GB)", inv.ARMMemoryUsed(), model.MaxARMMemoryGB},
		{"VCNs", len(inv.VCNs), model.MaxVCNs},
		{"Subnets", len(inv.Subnets), "-"},
		{"Internet gateways", len(inv.InternetGateways), "-"},
		{"Boot volumes (GB)", inv.BootStorageUsed(), "-"},
		{"Block volumes (GB)", inv.BlockStorageUsed(), "-"},
		{"Total storage (GB)", inv.StorageUsed(), model.MaxStorageGB},
	})

	tw.Render()
}

// DrawHeadroomTable renders remaining capacity, highlighting exhausted and
// exceeded dimensions.
func DrawHeadroomTable(headroom model.Headroom) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📐 FREE TIER HEADROOM"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Dimension", "Available", "Limit"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	tw.AppendRows([]table.Row{
		{"AMD instances", colorizeHeadroom(headroom.AMDInstances), model.MaxAMDInstances},
		{"ARM OCPUs", colorizeHeadroom(headroom.ARMOCPUs), model.MaxARMOCPUs},
		{"ARM memory (GB)", colorizeHeadroom(headroom.ARMMemoryGB), model.MaxARMMemoryGB},
		{"Storage (GB)", colorizeHeadroom(headroom.StorageGB), model.MaxStorageGB},
		{"VCNs", colorizeHeadroom(headroom.VCNs), model.MaxVCNs},
	})

	tw.Render()
}

func colorizeHeadroom(value int) string {
	switch {
	case value < 0:
		return text.FgHiRed.Sprintf("%d (over limit)", value)
	case value == 0:
		return text.FgHiYellow.Sprint("0")
	default:
		return text.FgHiGreen.Sprintf("%d", value)
	}
}
