package parameter

// Terminal Host
const (
	// TerminalCellAspect is the character cell height/width ratio used to keep the render space square
	TerminalCellAspect = 2.0

	// TerminalUnitsPerRow maps render units to terminal rows, beam length 200 spans ~12 rows
	TerminalUnitsPerRow = 16.0

	// TerminalDepthSlant projects render depth onto the screen, -Z draws downward
	TerminalDepthSlant = 1.0

	// TerminalPointGlow is the background alpha of the halo around eye points
	TerminalPointGlow = 0.35

	// TerminalBeamGlow is the background alpha of the beam core
	TerminalBeamGlow = 0.25

	// DemoEyeSpread is the horizontal gap between the scripted eyes (normalized)
	DemoEyeSpread = 0.16
)
