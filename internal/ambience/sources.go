package ambience

import "math"

// Procedurally generated source material for the demo channels. The engine
// itself never depends on these; they just give the oto-backed players
// something to play without shipping audio assets.

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// mixLoopSeam folds the last fadeN samples into the first fadeN and drops
// them, so a looping reader wraps without a click. Generators render fadeN
// extra samples to feed the fold.
func mixLoopSeam(mix []float64, fadeN int) []float64 {
	if fadeN <= 0 || fadeN >= len(mix) {
		return mix
	}
	body := len(mix) - fadeN
	for i := 0; i < fadeN; i++ {
		t := float64(i) / float64(fadeN)
		mix[i] = mix[i]*t + mix[body+i]*(1-t)
	}
	return mix[:body]
}

func renderStereo(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// GenWindLoop: broadband noise through a slow lowpass with gentle amplitude
// drift — the continuous bed.
func GenWindLoop(seconds float64) []byte {
	const seam = SampleRate / 2
	n := int(seconds*SampleRate) + seam
	mix := make([]float64, n)
	seed := uint64(0xA5B35705)
	lp, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		raw := lcg(&seed)
		lp = lp*0.97 + raw*0.03   // deep lowpass body
		lp2 = lp2*0.82 + raw*0.18 // airier layer
		drift := 0.7 + 0.3*math.Sin(2*math.Pi*t/seconds*3)
		mix[i] = (lp*0.9 + lp2*0.25) * drift * 0.8
	}
	return renderStereo(mixLoopSeam(mix, seam))
}

// GenChime: a single FM bell strike with a long ring — the one-shot cue.
func GenChime() []byte {
	const dur = 2.2
	n := int(dur * SampleRate)
	mix := make([]float64, n)
	const freq = 523.25 // C5
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.6, 0.08, 0.3)
		s := fm(t, freq, 2.756, 4.5*env) * env * 0.4
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
		mix[i] = s
	}
	return renderStereo(mix)
}

// GenSwellPad: detuned sine drone on a quiet minor chord — the swell bed.
// Played at volume zero between cycles; the envelope engine does the rest.
func GenSwellPad(seconds float64) []byte {
	const seam = SampleRate / 2
	n := int(seconds*SampleRate) + seam
	mix := make([]float64, n)
	chord := []float64{110.0, 164.8, 220.0} // A2 E3 A3
	detunes := [3]float64{-0.003, 0.0, 0.004}
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		s := 0.0
		for _, freq := range chord {
			for _, d := range detunes {
				f := freq * (1 + d)
				s += math.Sin(2*math.Pi*f*t) * 0.07
			}
		}
		mix[i] = s
	}
	return renderStereo(mixLoopSeam(mix, seam))
}

// DefaultSources builds the three demo players against out.
func DefaultSources(out *Output) Sources {
	return Sources{
		Loop:  out.NewPlayer(GenWindLoop(12), true),
		Cue:   out.NewPlayer(GenChime(), false),
		Swell: out.NewPlayer(GenSwellPad(8), true),
	}
}
