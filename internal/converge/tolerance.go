package converge

import "github.com/roach88/converger/internal/table"

// Tolerance is a convergence target drawn as a horizontal reference line.
type Tolerance struct {
	Observable table.Column
	Value      float64
	Label      string
}

// DefaultTolerances are the usual targets for total energy, forces and stress.
var DefaultTolerances = []Tolerance{
	{Observable: table.ColEnergy, Value: 4e-5, Label: "Energy tolerance"},
	{Observable: table.ColForce, Value: 0.05, Label: "Force tolerance"},
	{Observable: table.ColStress, Value: 0.1, Label: "Stress tolerance"},
}

// ToleranceFor returns the default tolerance of an observable.
func ToleranceFor(c table.Column) (Tolerance, bool) {
	for _, tol := range DefaultTolerances {
		if tol.Observable == c {
			return tol, true
		}
	}
	return Tolerance{}, false
}
