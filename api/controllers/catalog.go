package controllers

import (
	"net/http"

	"github.com/angelmondragon/xpertech-quotes/api/responses"
	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/shopspring/decimal"
)

type catalogConstants struct {
	BaseCameraPrice    decimal.Decimal `json:"base_camera_price"`
	CablePricePerMeter decimal.Decimal `json:"cable_price_per_meter"`
	DefaultCableLength decimal.Decimal `json:"default_cable_length"`
}

type catalogResponse struct {
	Tables    map[catalog.TableName][]catalog.Entry `json:"tables"`
	Constants catalogConstants                      `json:"constants"`
}

// CatalogList returns every option table with the scalar prices.
func CatalogList(c *catalog.Catalog) http.HandlerFunc {
	consts := c.Constants()
	body := catalogResponse{
		Tables: c.Snapshot(),
		Constants: catalogConstants{
			BaseCameraPrice:    consts.BaseCameraPrice,
			CablePricePerMeter: consts.CablePricePerMeter,
			DefaultCableLength: consts.DefaultCableLength,
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, body)
	}
}
