package config

import "sort"

// Physical parameters of the linearised models.
const (
	presetDt = 0.05

	pendulumMass    = 1.0
	pendulumLength  = 1.0
	pendulumDamping = 0.1

	cartMass       = 1.0
	poleMass       = 0.1
	poleHalfLength = 1.0

	gravity = 9.81
)

var Presets = map[string]func() *Problem{
	"scalar": func() *Problem {
		return &Problem{
			Name:    "scalar",
			Horizon: 1,
			Bound:   DefaultBound,
			State:   []float64{5},
			Q:       [][]float64{{1}},
			R:       [][]float64{{1}},
			Qf:      [][]float64{{1}},
			A:       [][]float64{{1}},
			B:       [][]float64{{1}},
		}
	},
	"double_integrator": func() *Problem {
		return &Problem{
			Name:    "double_integrator",
			Horizon: 100,
			Bound:   DefaultBound,
			State:   []float64{1, 0},
			Q:       identity(2),
			R:       [][]float64{{0.1}},
			Qf:      scaled(identity(2), 10),
			A:       [][]float64{{1, presetDt}, {0, 1}},
			B:       [][]float64{{0.5 * presetDt * presetDt}, {presetDt}},
		}
	},
	"pendulum":     pendulumPreset,
	"cartpole":     cartPolePreset,
	"uncontrolled": uncontrolledPreset,
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Problem {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pendulumPreset is the damped pendulum linearised about the upright
// equilibrium, state [theta, omega], torque input, Euler-discretised.
func pendulumPreset() *Problem {
	inertia := pendulumMass * pendulumLength * pendulumLength
	a21 := gravity / pendulumLength
	a22 := -pendulumDamping / inertia
	b2 := 1 / inertia

	return &Problem{
		Name:    "pendulum",
		Horizon: 100,
		Bound:   DefaultBound,
		State:   []float64{0.2, 0},
		Q:       [][]float64{{10, 0}, {0, 1}},
		R:       [][]float64{{0.1}},
		Qf:      [][]float64{{100, 0}, {0, 10}},
		A:       discretise([][]float64{{0, 1}, {a21, a22}}),
		B:       [][]float64{{0}, {presetDt * b2}},
	}
}

// cartPolePreset is the cart-pole linearised about the upright pole,
// state [pos, vel, theta, omega], force input, Euler-discretised.
func cartPolePreset() *Problem {
	total := cartMass + poleMass
	lEff := poleHalfLength * (4.0/3.0 - poleMass/total)

	thetaAcc := gravity / lEff
	thetaForce := -1 / (total * lEff)
	posTheta := -poleMass * poleHalfLength * gravity / (total * lEff)
	posForce := 1/total + poleMass*poleHalfLength/(total*total*lEff)

	return &Problem{
		Name:    "cartpole",
		Horizon: 150,
		Bound:   DefaultBound,
		State:   []float64{0, 0, 0.1, 0},
		Q:       diag(1, 0.1, 10, 0.1),
		R:       [][]float64{{0.01}},
		A: discretise([][]float64{
			{0, 1, 0, 0},
			{0, 0, posTheta, 0},
			{0, 0, 0, 1},
			{0, 0, thetaAcc, 0},
		}),
		B: [][]float64{{0}, {presetDt * posForce}, {0}, {presetDt * thetaForce}},
	}
}

// uncontrolledPreset has no action channel; the plan is all zeros.
func uncontrolledPreset() *Problem {
	return &Problem{
		Name:    "uncontrolled",
		Horizon: 20,
		Bound:   DefaultBound,
		State:   []float64{1, -1},
		Q:       identity(2),
		R:       identity(1),
		A:       [][]float64{{0.9, 0.1}, {0, 0.95}},
		B:       [][]float64{{0}, {0}},
	}
}

// discretise returns I + dt*ac.
func discretise(ac [][]float64) [][]float64 {
	out := scaled(ac, presetDt)
	for i := range out {
		out[i][i] += 1
	}
	return out
}

func identity(n int) [][]float64 {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1
	}
	return diag(d...)
}

func diag(v ...float64) [][]float64 {
	out := make([][]float64, len(v))
	for i := range out {
		out[i] = make([]float64, len(v))
		out[i][i] = v[i]
	}
	return out
}

func scaled(m [][]float64, k float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = k * v
		}
	}
	return out
}
