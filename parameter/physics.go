package parameter

// Gravity Sources
const (
	// SourceStrength is the pull strength of each default source (acceleration at unit distance)
	SourceStrength = 7000.0

	// SourceLeftX/Y and SourceRightX/Y place the two default sources
	SourceLeftX  = 500.0
	SourceLeftY  = 500.0
	SourceRightX = 1200.0
	SourceRightY = 500.0

	// SourceRadius is the rendered marker radius of a source
	SourceRadius = 10.0
)

// Particle Swarm
const (
	// ParticleCount is the default number of particles
	ParticleCount = 2000

	// ParticleSpawnX/Y is the shared initial position of every particle
	ParticleSpawnX = 600.0
	ParticleSpawnY = 700.0

	// ParticleVelX is the shared initial horizontal velocity (units per frame)
	ParticleVelX = 4.0

	// ParticleVelY is the initial vertical velocity of particle 0
	ParticleVelY = 0.2

	// ParticleVelYSpread is the total vertical velocity spread across the swarm
	// Particle i receives ParticleVelY + ParticleVelYSpread*i/count
	ParticleVelYSpread = 0.1

	// ParticleRadius is the rendered marker radius of a particle
	ParticleRadius = 8.0
)

// Proximity
const (
	// CaptureRadius is the distance under which a particle counts as a close approach to a source
	CaptureRadius = 12.0

	// MinDistance of 0 leaves the inverse-square law unguarded (distance 0 yields non-finite state)
	MinDistance = 0.0
)
