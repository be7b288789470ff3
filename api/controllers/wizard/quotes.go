package wizard

import (
	"net/http"

	wizarddto "github.com/angelmondragon/xpertech-quotes/api/controllers/wizard/dto"
	"github.com/angelmondragon/xpertech-quotes/api/responses"
	"github.com/angelmondragon/xpertech-quotes/api/validators"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/pkg/logger"
	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
)

// QuoteCompute prices a complete configuration without creating a session.
func QuoteCompute(view View, m *metrics.QuoteMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload wizarddto.QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c := view.Engine.Catalog()
		cfg, err := payload.ToConfiguration(c.DefaultCableLength())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := quote.CheckKnownIDs(cfg, c); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown := view.Engine.Quote(cfg)
		m.ObserveQuote(metrics.SourceStateless, breakdown.Total.InexactFloat64())
		responses.WriteSuccess(w, wizarddto.NewQuote(breakdown, view.Symbol))
	}
}
