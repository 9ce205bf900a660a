package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Beam Envelope
const (
	// AudioPeakGain is the master gain reached at the end of the attack ramp
	AudioPeakGain = 0.4

	// AudioAttack is the linear ramp duration from current gain to peak
	AudioAttack = 100 * time.Millisecond

	// AudioReleaseFloor is the exponential ramp target; exponential ramps cannot reach zero
	AudioReleaseFloor = 0.001

	// AudioRelease is the exponential ramp duration toward the floor
	AudioRelease = 300 * time.Millisecond

	// AudioTeardownDelay is when oscillators and noise are stopped after release begins
	AudioTeardownDelay = 350 * time.Millisecond
)

// Oscillator Bank
const (
	// Detuned saw pair, 3Hz beating
	AudioSawLowFreq  = 55.0
	AudioSawHighFreq = 58.0
	AudioSawLevel    = 0.3

	// Square harmonic two octaves above the low saw
	AudioSquareFreq  = 220.0
	AudioSquareLevel = 0.1
)

// Crackle Layer
const (
	// AudioNoiseHighpass is the cutoff of the noise high-pass (Hz)
	AudioNoiseHighpass = 1000.0

	// AudioCrackleChance is the per-tick probability of a pop
	AudioCrackleChance = 0.3

	// AudioCrackleMax bounds the random pop gain [0, max)
	AudioCrackleMax = 0.8
)
