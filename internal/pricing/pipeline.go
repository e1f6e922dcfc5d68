package pricing

type Phase string

const (
	PhaseBaseline Phase = "baseline"
	PhaseShipping Phase = "shipping"
	PhaseTaxes    Phase = "taxes"
	PhaseFees     Phase = "fees"
	PhaseTotals   Phase = "totals"
	PhaseDelivery Phase = "delivery"
)
