package starfield

import colorful "github.com/lucasb-eyer/go-colorful"

// rampFadeEnd is the lifetime fraction at which a star particle reaches black.
const rampFadeEnd = 0.14

// ColorKey pins a color at a normalized lifetime position.
type ColorKey struct {
	Color Color
	Time  float64
}

// AlphaKey pins an alpha value at a normalized lifetime position.
type AlphaKey struct {
	Alpha float64
	Time  float64
}

// ColorRamp maps a normalized particle age in [0, 1] to a color. Color and
// alpha are keyed separately; keys must be sorted by Time.
type ColorRamp struct {
	Colors []ColorKey
	Alphas []AlphaKey
}

// HueFor returns the hue a star built from seed is drawn with.
func HueFor(seed int32) float32 {
	return Derive(seed, 0)
}

// BuildRamp returns the star ramp for hue: fully saturated at birth, black by
// 14% of the lifetime, opaque throughout. Particles disappear by lifetime
// expiry rather than by fading out.
func BuildRamp(hue float32) ColorRamp {
	return ColorRamp{
		Colors: []ColorKey{
			{Color: hsv(float64(hue), 1, 1), Time: 0},
			{Color: hsv(0, 0, 0), Time: rampFadeEnd},
		},
		Alphas: []AlphaKey{
			{Alpha: 1, Time: 0},
			{Alpha: 1, Time: 1},
		},
	}
}

// At evaluates the ramp at t. Values outside the keyed span clamp to the
// nearest key. An empty ramp evaluates to ColorWhite.
func (r ColorRamp) At(t float64) Color {
	c := ColorWhite
	if n := len(r.Colors); n > 0 {
		switch {
		case t <= r.Colors[0].Time:
			c = r.Colors[0].Color
		case t >= r.Colors[n-1].Time:
			c = r.Colors[n-1].Color
		default:
			for i := 1; i < n; i++ {
				b := r.Colors[i]
				if t > b.Time {
					continue
				}
				a := r.Colors[i-1]
				u := (t - a.Time) / (b.Time - a.Time)
				blended := toColorful(a.Color).BlendRgb(toColorful(b.Color), u)
				c = Color{R: blended.R, G: blended.G, B: blended.B}
				break
			}
		}
	}
	c.A = r.alphaAt(t)
	return c
}

func (r ColorRamp) alphaAt(t float64) float64 {
	n := len(r.Alphas)
	if n == 0 {
		return 1
	}
	if t <= r.Alphas[0].Time {
		return r.Alphas[0].Alpha
	}
	if t >= r.Alphas[n-1].Time {
		return r.Alphas[n-1].Alpha
	}
	for i := 1; i < n; i++ {
		b := r.Alphas[i]
		if t > b.Time {
			continue
		}
		a := r.Alphas[i-1]
		return lerp(a.Alpha, b.Alpha, (t-a.Time)/(b.Time-a.Time))
	}
	return r.Alphas[n-1].Alpha
}

// hsv converts h, s, v (all in [0, 1]) to an opaque Color.
func hsv(h, s, v float64) Color {
	c := colorful.Hsv(h*360, s, v)
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
