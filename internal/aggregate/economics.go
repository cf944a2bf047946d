package aggregate

import "github.com/sells-group/trialboard/internal/model"

// UnknownCurrency groups economic figures whose record carries no
// currency code. Figures in different currencies are never mixed into one
// series.
const UnknownCurrency = "UNKNOWN"

// EconPoint is one study's ICER / willingness-to-pay pair. When only one
// of the two is reported, the other reads zero; a record reporting
// neither never becomes a point.
type EconPoint struct {
	StudyID string  `json:"study_id"`
	ICER    float64 `json:"icer"`
	WTP     float64 `json:"wtp"`
}

// CurrencySeries is the per-currency economic series, in first-seen
// currency order.
type CurrencySeries struct {
	Currency string      `json:"currency"`
	Points   []EconPoint `json:"points"`
}

// resolveCurrency picks the record's currency code: the reported ICER
// analysis wins over model parameters.
func resolveCurrency(econ *model.Economics) string {
	if econ.ICERAnalysis != nil && econ.ICERAnalysis.CurrencyCode != "" {
		return econ.ICERAnalysis.CurrencyCode
	}
	if econ.ModelParameters != nil && econ.ModelParameters.CurrencyCode != "" {
		return econ.ModelParameters.CurrencyCode
	}
	return UnknownCurrency
}

// resolveICER prefers the reported ICER analysis value over the model
// parameter.
func resolveICER(econ *model.Economics) model.Num {
	if econ.ICERAnalysis != nil && econ.ICERAnalysis.ICERValue.Valid {
		return econ.ICERAnalysis.ICERValue
	}
	if econ.ModelParameters != nil {
		return econ.ModelParameters.ICER
	}
	return model.Num{}
}

func resolveWTP(econ *model.Economics) model.Num {
	if econ.ModelParameters != nil {
		return econ.ModelParameters.WTPThreshold
	}
	return model.Num{}
}

// EconomicSeries partitions the records' economic figures by currency and
// builds one ICER/WTP series per currency group. A record contributes a
// point only when at least one of the pair is present; zero stands in for
// the absent sibling, never for a wholly absent pair.
func EconomicSeries(records []model.StudyRecord) []CurrencySeries {
	index := make(map[string]int)
	var series []CurrencySeries

	for _, rec := range records {
		if rec.Economics == nil {
			continue
		}
		icer := resolveICER(rec.Economics)
		wtp := resolveWTP(rec.Economics)
		if !icer.Valid && !wtp.Valid {
			continue
		}

		currency := resolveCurrency(rec.Economics)
		i, ok := index[currency]
		if !ok {
			i = len(series)
			index[currency] = i
			series = append(series, CurrencySeries{Currency: currency})
		}
		series[i].Points = append(series[i].Points, EconPoint{
			StudyID: rec.ID,
			ICER:    icer.Value,
			WTP:     wtp.Value,
		})
	}
	return series
}
