package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"orrery/internal/mathutil"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Camera     CameraConfig     `yaml:"camera"`
	Simulation SimulationConfig `yaml:"simulation"`
	Bodies     BodiesConfig     `yaml:"bodies"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	UI         UIConfig         `yaml:"ui"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Debug      DebugConfig      `yaml:"debug"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

// CameraConfig describes the starting camera and projection.
// Angles are in radians except FieldOfView, which is in degrees.
type CameraConfig struct {
	Azimuth         float64 `yaml:"azimuth"`
	Polar           float64 `yaml:"polar"`
	Radius          float64 `yaml:"radius"`
	MaxRadius       float64 `yaml:"max_radius"`
	FieldOfView     float64 `yaml:"field_of_view"`
	Near            float64 `yaml:"near"`
	Far             float64 `yaml:"far"`
	DragSensitivity float64 `yaml:"drag_sensitivity"`
	ScrollStep      float64 `yaml:"scroll_step"`
}

// SimulationConfig controls the angular step applied each frame.
// Rates are divided by SpeedDivisor, so a smaller divisor runs faster.
type SimulationConfig struct {
	SpeedDivisor    float64 `yaml:"speed_divisor"`
	MinSpeedDivisor float64 `yaml:"min_speed_divisor"`
	MaxSpeedDivisor float64 `yaml:"max_speed_divisor"`
	SpeedStep       float64 `yaml:"speed_step"`
	StartPaused     bool    `yaml:"start_paused"`
}

// BodiesConfig holds the four bodies of the scene. The set is fixed; only
// their parameters are configurable.
type BodiesConfig struct {
	Sun    BodyConfig `yaml:"sun"`
	Planet BodyConfig `yaml:"planet"`
	Moon   BodyConfig `yaml:"moon"`
	Stars  BodyConfig `yaml:"stars"`
}

// BodyConfig describes one body. Offset is relative to the parent body's
// center (or the origin for bodies without a parent). Periods are in days;
// zero disables that motion.
type BodyConfig struct {
	Name          string     `yaml:"name"`
	Radius        float64    `yaml:"radius"`
	Offset        [3]float64 `yaml:"offset"`
	Axis          [3]float64 `yaml:"axis"`
	SpinPeriod    float64    `yaml:"spin_period"`
	OrbitPeriod   float64    `yaml:"orbit_period"`
	Divisions     int        `yaml:"divisions"`
	Texture       string     `yaml:"texture"`
	Color         [3]int     `yaml:"color"`
	Diffuse       bool       `yaml:"diffuse"`
	Inside        bool       `yaml:"inside"` // viewed from within (starfield)
	FocusDistance float64    `yaml:"focus_distance"`
}

type GraphicsConfig struct {
	TextureDir         string  `yaml:"texture_dir"`
	Ambient            float64 `yaml:"ambient"`
	Background         [3]int  `yaml:"background"`
	ParallelProjection bool    `yaml:"parallel_projection"`
	Workers            int     `yaml:"workers"`
}

type UIConfig struct {
	ShowHUD bool `yaml:"show_hud"`
	ShowFPS bool `yaml:"show_fps"`
}

type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type DebugConfig struct {
	PerfLog bool `yaml:"perf_log"`
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Parse decodes YAML, fills defaults for missing values and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Default returns the built-in scene: sun, planet, moon and starfield.
func Default() *Config {
	c := &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 1024,
			WindowTitle:  "Orrery",
			Resizable:    true,
			TPS:          60,
		},
		Camera: CameraConfig{
			Azimuth:         math.Pi / 2,
			Polar:           math.Pi / 2,
			Radius:          50,
			MaxRadius:       75,
			FieldOfView:     60,
			Near:            0.1,
			Far:             10000,
			DragSensitivity: 1,
			ScrollStep:      1,
		},
		Simulation: SimulationConfig{
			SpeedDivisor:    60,
			MinSpeedDivisor: 10,
			MaxSpeedDivisor: 60,
			SpeedStep:       10,
		},
		Bodies: BodiesConfig{
			Sun: BodyConfig{
				Name: "Sun", Radius: 8.8, SpinPeriod: 26.24,
				Texture: "sunTex.jpg", Color: [3]int{255, 190, 60}, FocusDistance: 50,
			},
			Planet: BodyConfig{
				Name: "Earth", Radius: 3.6, Offset: [3]float64{18, 0, 0},
				SpinPeriod: 1, OrbitPeriod: 365.25,
				Texture: "earthTex.jpg", Color: [3]int{60, 110, 200}, Diffuse: true, FocusDistance: 10,
			},
			Moon: BodyConfig{
				Name: "Moon", Radius: 1.4, Offset: [3]float64{9, 0, 0},
				SpinPeriod: 27.322, OrbitPeriod: 27.322,
				Texture: "moonTex.jpg", Color: [3]int{170, 170, 170}, Diffuse: true, FocusDistance: 5,
			},
			Stars: BodyConfig{
				Name: "Stars", Radius: 5000, SpinPeriod: 3600,
				Texture: "starTex.png", Color: [3]int{20, 20, 40}, Inside: true,
			},
		},
		Graphics: GraphicsConfig{
			TextureDir:         "assets/textures",
			Ambient:            0.08,
			ParallelProjection: true,
		},
		UI: UIConfig{ShowHUD: true},
	}
	c.applyDefaults()
	return c
}

// applyDefaults fills values that a partial YAML file left at zero.
func (c *Config) applyDefaults() {
	for _, b := range c.Bodies.All() {
		if b.Divisions == 0 {
			b.Divisions = 100
		}
		if b.Axis == ([3]float64{}) {
			b.Axis = [3]float64{0, 0, 1}
		}
	}
	if c.Display.TPS == 0 {
		c.Display.TPS = 60
	}
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display: screen size %dx%d must be positive",
			c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Camera.MaxRadius <= 0 {
		errs = append(errs, fmt.Errorf("camera: max_radius %v must be positive", c.Camera.MaxRadius))
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("camera: field_of_view %v must be in (0, 180)", c.Camera.FieldOfView))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near (%v) < far (%v)", c.Camera.Near, c.Camera.Far))
	}
	s := c.Simulation
	if s.MinSpeedDivisor <= 0 || s.MaxSpeedDivisor < s.MinSpeedDivisor {
		errs = append(errs, fmt.Errorf("simulation: need 0 < min_speed_divisor (%v) <= max_speed_divisor (%v)",
			s.MinSpeedDivisor, s.MaxSpeedDivisor))
	}
	if s.SpeedDivisor < s.MinSpeedDivisor || s.SpeedDivisor > s.MaxSpeedDivisor {
		errs = append(errs, fmt.Errorf("simulation: speed_divisor %v outside [%v, %v]",
			s.SpeedDivisor, s.MinSpeedDivisor, s.MaxSpeedDivisor))
	}
	for _, b := range []*BodyConfig{&c.Bodies.Sun, &c.Bodies.Planet, &c.Bodies.Moon} {
		if c.Camera.MaxRadius > 0 && c.Camera.MaxRadius < math.Ceil(b.Radius) {
			errs = append(errs, fmt.Errorf("camera: max_radius %v is inside %s (surface at %v)",
				c.Camera.MaxRadius, b.Name, math.Ceil(b.Radius)))
		}
	}
	if c.Graphics.Ambient < 0 || c.Graphics.Ambient > 1 {
		errs = append(errs, fmt.Errorf("graphics: ambient %v must be in [0, 1]", c.Graphics.Ambient))
	}
	for i, v := range c.Graphics.Background {
		if v < 0 || v > 255 {
			errs = append(errs, fmt.Errorf("graphics: background[%d] %d must be in [0, 255]", i, v))
		}
	}
	for key, b := range c.Bodies.Named() {
		if err := b.validate(); err != nil {
			errs = append(errs, fmt.Errorf("bodies.%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (b *BodyConfig) validate() error {
	var errs []error
	if b.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius %v must be positive", b.Radius))
	}
	if b.SpinPeriod < 0 || b.OrbitPeriod < 0 {
		errs = append(errs, fmt.Errorf("periods must not be negative"))
	}
	if b.Divisions < 2 || b.Divisions > 256 {
		errs = append(errs, fmt.Errorf("divisions %d must be in [2, 256]", b.Divisions))
	}
	if b.Axis == ([3]float64{}) {
		errs = append(errs, fmt.Errorf("axis must not be zero"))
	}
	return errors.Join(errs...)
}

// All returns the bodies in update order.
func (b *BodiesConfig) All() []*BodyConfig {
	return []*BodyConfig{&b.Sun, &b.Planet, &b.Moon, &b.Stars}
}

// Named returns the bodies keyed by their YAML key.
func (b *BodiesConfig) Named() map[string]*BodyConfig {
	return map[string]*BodyConfig{
		"sun":    &b.Sun,
		"planet": &b.Planet,
		"moon":   &b.Moon,
		"stars":  &b.Stars,
	}
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetFOV returns the vertical field of view in radians.
func (c *Config) GetFOV() float64 {
	return c.Camera.FieldOfView * math.Pi / 180
}

// GetBackgroundColor returns the clear color as RGB bytes, clamping each
// channel to [0, 255].
func (c *Config) GetBackgroundColor() (r, g, b uint8) {
	bg := c.Graphics.Background
	return channel(bg[0]), channel(bg[1]), channel(bg[2])
}

func channel(v int) uint8 {
	return uint8(mathutil.Clamp(v, 0, 255))
}
