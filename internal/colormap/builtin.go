package colormap

import "math"

type stop struct {
	at      float64
	r, g, b float64
}

// Dark-centred diverging map in the style of "berlin": blue for negative
// amplitudes, near black at zero, orange-red for positive.
var divergingStops = []stop{
	{0.00, 0.62, 0.69, 1.00},
	{0.25, 0.20, 0.50, 0.78},
	{0.50, 0.07, 0.07, 0.07},
	{0.75, 0.62, 0.25, 0.10},
	{1.00, 1.00, 0.68, 0.68},
}

var (
	diverging = fromStops(divergingStops)
	grayscale = fromStops([]stop{{0, 0, 0, 0}, {1, 1, 1, 1}})
)

// Diverging returns the built-in default map.
func Diverging() *Colormap {
	c := diverging
	return &c
}

func Grayscale() *Colormap {
	c := grayscale
	return &c
}

// Builtin looks a built-in map up by name.
func Builtin(name string) (*Colormap, bool) {
	switch name {
	case "", "diverging", "berlin":
		return Diverging(), true
	case "gray", "grayscale":
		return Grayscale(), true
	}
	return nil, false
}

func fromStops(stops []stop) Colormap {
	entries := make([]Entry, Size)
	for i := range entries {
		t := float64(i) / (Size - 1)
		j := 1
		for j < len(stops)-1 && stops[j].at < t {
			j++
		}
		a, b := stops[j-1], stops[j]
		f := (t - a.at) / (b.at - a.at)
		f = math.Max(0, math.Min(1, f))
		entries[i] = Entry{
			Index: i,
			R:     a.r + (b.r-a.r)*f,
			G:     a.g + (b.g-a.g)*f,
			B:     a.b + (b.b-a.b)*f,
		}
	}
	cm, _ := Build(entries)
	return *cm
}
