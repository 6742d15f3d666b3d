package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/gravity/parameter"
	"github.com/lixenwraith/gravity/physics"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Environment variable names
const (
	EnvParticles   = "GRAVITY_PARTICLES"
	EnvFPS         = "GRAVITY_FPS"
	EnvMinDistance = "GRAVITY_MIN_DISTANCE"
	EnvScheme      = "GRAVITY_SCHEME"
)

// Source places one gravity source
type Source struct {
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	Strength float64 `toml:"strength"`
}

// Spawn describes the initial particle swarm
// Particle i starts at (X, Y) with velocity (VelX, VelY + VelYSpread*i/count)
type Spawn struct {
	X          float64 `toml:"x"`
	Y          float64 `toml:"y"`
	VelX       float64 `toml:"vel_x"`
	VelY       float64 `toml:"vel_y"`
	VelYSpread float64 `toml:"vel_y_spread"`
}

// Config holds every simulation and presentation setting
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	FPS    int    `toml:"fps"`

	Particles int      `toml:"particles"`
	Spawn     Spawn    `toml:"spawn"`
	Sources   []Source `toml:"sources"`

	// MinDistance > 0 clamps the inverse-square distance; 0 reproduces the unguarded law
	MinDistance float64 `toml:"min_distance"`
	// Scheme is "sequential" or "simultaneous"
	Scheme string `toml:"scheme"`

	SourceRadius   float64 `toml:"source_radius"`
	ParticleRadius float64 `toml:"particle_radius"`
	CaptureRadius  float64 `toml:"capture_radius"`
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		Title:     parameter.WindowTitle,
		Width:     parameter.WindowWidth,
		Height:    parameter.WindowHeight,
		FPS:       parameter.FrameRate,
		Particles: parameter.ParticleCount,
		Spawn: Spawn{
			X:          parameter.ParticleSpawnX,
			Y:          parameter.ParticleSpawnY,
			VelX:       parameter.ParticleVelX,
			VelY:       parameter.ParticleVelY,
			VelYSpread: parameter.ParticleVelYSpread,
		},
		Sources: []Source{
			{X: parameter.SourceLeftX, Y: parameter.SourceLeftY, Strength: parameter.SourceStrength},
			{X: parameter.SourceRightX, Y: parameter.SourceRightY, Strength: parameter.SourceStrength},
		},
		MinDistance:    parameter.MinDistance,
		Scheme:         physics.Sequential.String(),
		SourceRadius:   parameter.SourceRadius,
		ParticleRadius: parameter.ParticleRadius,
		CaptureRadius:  parameter.CaptureRadius,
	}
}

// Load reads a TOML file over the defaults; keys absent from the file keep their default
// A [[sources]] list replaces the default sources entirely and omitted source keys are zero
// Unknown keys are rejected
func Load(path string) (*Config, error) {
	cfg := Default()
	defaultSources := cfg.Sources
	cfg.Sources = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if !md.IsDefined("sources") {
		cfg.Sources = defaultSources
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// ApplyEnv overrides fields from GRAVITY_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvParticles); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvParticles, v, err)
		}
		c.Particles = n
	}

	if v := os.Getenv(EnvFPS); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvFPS, v, err)
		}
		c.FPS = n
	}

	if v := os.Getenv(EnvMinDistance); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvMinDistance, v, err)
		}
		c.MinDistance = f
	}

	if v := os.Getenv(EnvScheme); v != "" {
		c.Scheme = v
	}

	return nil
}

// Validate checks ranges; an empty source list is allowed and exerts no force
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	if c.FPS <= 0 || c.FPS > parameter.MaxFrameRate {
		return fmt.Errorf("%w: fps %d outside 1..%d", ErrInvalid, c.FPS, parameter.MaxFrameRate)
	}
	if c.Particles < 0 {
		return fmt.Errorf("%w: particle count %d is negative", ErrInvalid, c.Particles)
	}
	if c.MinDistance < 0 {
		return fmt.Errorf("%w: min_distance %v is negative", ErrInvalid, c.MinDistance)
	}
	if c.SourceRadius < 0 || c.ParticleRadius < 0 || c.CaptureRadius < 0 {
		return fmt.Errorf("%w: radii must not be negative", ErrInvalid)
	}
	if _, err := physics.ParseScheme(c.Scheme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// IntegrationScheme returns the parsed scheme, Sequential when unset or unknown
func (c *Config) IntegrationScheme() physics.Scheme {
	s, _ := physics.ParseScheme(c.Scheme)
	return s
}
