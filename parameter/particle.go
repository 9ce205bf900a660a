package parameter

// Spark Debris
const (
	// MaxParticles is the fixed pool size per particle system
	MaxParticles = 80

	// SparkSpawnPerTick is the number of slots claimed each tick while the beam is at impact length
	SparkSpawnPerTick = 2

	// SparkLifeMin/Max bound the uniform lifetime draw (seconds)
	SparkLifeMin = 0.5
	SparkLifeMax = 1.0

	// SparkJitter is the horizontal spawn offset range (± units) on both horizontal axes
	SparkJitter = 1.0

	// SparkRadialSpeedMin/Max bound the horizontal burst speed (units/sec)
	SparkRadialSpeedMin = 20.0
	SparkRadialSpeedMax = 50.0

	// SparkUpSpeedMin/Max bound the vertical burst speed (units/sec)
	SparkUpSpeedMin = 10.0
	SparkUpSpeedMax = 20.0

	// SparkGravity is downward acceleration (units/sec²)
	SparkGravity = 90.0
)

// Spark Color Ramp
const (
	SparkHueStart       = 0.15 // Pale yellow
	SparkHueEnd         = 0.0  // Red
	SparkHueRate        = 1.5  // Hue progress multiplier, clamped
	SparkLightnessStart = 0.9
	SparkLightnessEnd   = 0.3
	SparkSaturation     = 1.0
)
