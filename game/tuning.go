package game

const (
	DefaultParticleCount    = 10
	DefaultSegmentLength    = 2.0
	DefaultGravity          = -0.8
	DefaultRelaxationPasses = 1
	DefaultFloorHeight      = 8.0 // ball radius; the ball rests on the floor plane
	DefaultDamping          = 0.9
	DefaultWind             = 0.0

	// MinSeparation is the shortest link the solver will correct. Shorter
	// (or non-finite) links have no usable direction and are skipped.
	MinSeparation = 1e-9

	RollDivisor = 10.0 // rolling contact: spin = (oldx - x) / RollDivisor
	SwingFactor = 0.5  // free swing: spin = clamp(diffx * SwingFactor, -MaxSwing, MaxSwing)
	MaxSwing    = 0.1

	// Inputs and positions are kept inside these bounds. A particle that
	// leaves them, or stops being finite, is restarted below its predecessor.
	MaxCoordinate = 1e6
	MaxPower      = 100.0
)

// Default camera, matching the browser scene.
const (
	DefaultCameraFovY      = 50.0 // degrees
	DefaultCameraNear      = 1.0
	DefaultCameraFar       = 2000.0
	DefaultCameraWallDepth = 28.0 // z of the plane the anchor follows
	PointerDepthNDC        = 0.1
)
