package quote

import (
	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/shopspring/decimal"
)

// referenceConfiguration is the worked example from the pricing sheet.
func referenceConfiguration() Configuration {
	return Configuration{
		InteriorCount:       2,
		ExteriorCount:       1,
		NightVisionType:     "infrared",
		TechnologyType:      "ip",
		PhysicalTypes:       []string{"dome"},
		Resolution:          "4mp",
		HasDVR:              catalog.No,
		Storage:             "1tb",
		RemoteAccess:        catalog.Yes,
		NeedsMonitor:        catalog.No,
		InstallationService: "complete",
		CableLength:         decimal.NewFromInt(20),
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
