package utils

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DrawBanner prints the startup banner.
func DrawBanner() {
	banner := figure.NewFigure("oci-freetier", "", true)
	fmt.Println(text.FgHiRed.Sprint(banner.String()))
	fmt.Println(text.FgHiWhite.Sprint(" Idempotent Oracle Cloud Free Tier provisioning"))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))
}
