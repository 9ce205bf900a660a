package parameter

import (
	"time"
)

// Activation Gate
const (
	// GateActivationDelay is how long the raw trigger must hold before the gate fires
	GateActivationDelay = 500 * time.Millisecond
)

// Beam
const (
	// BeamTargetLength is the fully extended beam length in render units
	BeamTargetLength = 200.0

	// BeamGrowthRate is the exponential approach rate (1/sec), smoothing factor is 1-exp(-rate*dt)
	BeamGrowthRate = 15.0

	// BeamImpactThreshold is the length at which the beam reaches the render surface (inclusive)
	BeamImpactThreshold = 95.0
)

// Point Visual
const (
	// PointScale is the render scale of the static eye point
	PointScale   = 4.0
	PointOpacity = 1.0
)
