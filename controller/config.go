package controller

import (
	"errors"
	"fmt"

	"github.com/milk9111/firstperson/physics"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("controller: invalid config")

// Config holds the movement tuning. Distances are meters, speeds meters per
// second and angles degrees.
type Config struct {
	// General
	GravityDownForce         float64           `yaml:"gravity_down_force"`
	GroundLayers             physics.LayerMask `yaml:"ground_layers"`
	GroundCheckDistance      float64           `yaml:"ground_check_distance"`
	GroundCheckDistanceInAir float64           `yaml:"ground_check_distance_in_air"`
	JumpGroundingPrevention  float64           `yaml:"jump_grounding_prevention"`
	HookGroundingPrevention  float64           `yaml:"hook_grounding_prevention"`
	SlopeLimit               float64           `yaml:"slope_limit"`
	SkinWidth                float64           `yaml:"skin_width"`
	KillHeight               float64           `yaml:"kill_height"`
	EnableOverlapRecovery    bool              `yaml:"enable_overlap_recovery"`

	// Movement
	MaxSpeedOnGround          float64 `yaml:"max_speed_on_ground"`
	MovementSharpnessOnGround float64 `yaml:"movement_sharpness_on_ground"`
	MaxSpeedCrouchedRatio     float64 `yaml:"max_speed_crouched_ratio"`
	MaxSpeedInAir             float64 `yaml:"max_speed_in_air"`
	AccelerationSpeedInAir    float64 `yaml:"acceleration_speed_in_air"`
	SprintSpeedModifier       float64 `yaml:"sprint_speed_modifier"`

	// Rotation
	RotationSpeed            float64 `yaml:"rotation_speed"`
	AimingRotationMultiplier float64 `yaml:"aiming_rotation_multiplier"`
	PitchLimit               float64 `yaml:"pitch_limit"`
	FieldOfView              float64 `yaml:"field_of_view"`
	SprintFieldOfView        float64 `yaml:"sprint_field_of_view"`

	// Jump
	JumpForce float64 `yaml:"jump_force"`

	// Stance
	CameraHeightRatio      float64 `yaml:"camera_height_ratio"`
	CapsuleHeightStanding  float64 `yaml:"capsule_height_standing"`
	CapsuleHeightCrouching float64 `yaml:"capsule_height_crouching"`
	CapsuleRadius          float64 `yaml:"capsule_radius"`
	CrouchingSharpness     float64 `yaml:"crouching_sharpness"`

	// Audio
	FootstepFrequency          float64 `yaml:"footstep_frequency"`
	FootstepFrequencySprinting float64 `yaml:"footstep_frequency_sprinting"`

	// Fall damage
	ReceivesFallDamage    bool    `yaml:"receives_fall_damage"`
	MinSpeedForFallDamage float64 `yaml:"min_speed_for_fall_damage"`
	MaxSpeedForFallDamage float64 `yaml:"max_speed_for_fall_damage"`
	FallDamageAtMinSpeed  float64 `yaml:"fall_damage_at_min_speed"`
	FallDamageAtMaxSpeed  float64 `yaml:"fall_damage_at_max_speed"`

	// Slide
	SlideSpeed      float64 `yaml:"slide_speed"`
	SlideDrag       float64 `yaml:"slide_drag"`
	SlideDragGrowth float64 `yaml:"slide_drag_growth"`
	SlideStopSpeed  float64 `yaml:"slide_stop_speed"`
	SlideMinSpeed   float64 `yaml:"slide_min_speed"`

	// Grapple
	GrappleSpeed          float64           `yaml:"grapple_speed"`
	GrappleDistance       float64           `yaml:"grapple_distance"`
	GrapplingCooldown     float64           `yaml:"grappling_cooldown"`
	GrappleArriveDistance float64           `yaml:"grapple_arrive_distance"`
	GrappleHitDuration    float64           `yaml:"grapple_hit_duration"`
	GrappleMissDuration   float64           `yaml:"grapple_miss_duration"`
	GrappleLayers         physics.LayerMask `yaml:"grapple_layers"`

	// Animation
	WalkingInputThreshold float64 `yaml:"walking_input_threshold"`
	WalkingMinSpeed       float64 `yaml:"walking_min_speed"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		GravityDownForce:         20,
		GroundLayers:             physics.MaskAll,
		GroundCheckDistance:      0.05,
		GroundCheckDistanceInAir: 0.07,
		JumpGroundingPrevention:  0.2,
		HookGroundingPrevention:  0.5,
		SlopeLimit:               45,
		SkinWidth:                0.08,
		KillHeight:               -50,
		EnableOverlapRecovery:    true,

		MaxSpeedOnGround:          10,
		MovementSharpnessOnGround: 15,
		MaxSpeedCrouchedRatio:     0.5,
		MaxSpeedInAir:             10,
		AccelerationSpeedInAir:    25,
		SprintSpeedModifier:       2,

		RotationSpeed:            200,
		AimingRotationMultiplier: 0.4,
		PitchLimit:               89,
		FieldOfView:              80,
		SprintFieldOfView:        90,

		JumpForce: 9,

		CameraHeightRatio:      0.9,
		CapsuleHeightStanding:  1.8,
		CapsuleHeightCrouching: 0.9,
		CapsuleRadius:          0.35,
		CrouchingSharpness:     10,

		FootstepFrequency:          1,
		FootstepFrequencySprinting: 1,

		ReceivesFallDamage:    true,
		MinSpeedForFallDamage: 10,
		MaxSpeedForFallDamage: 30,
		FallDamageAtMinSpeed:  10,
		FallDamageAtMaxSpeed:  50,

		SlideSpeed:      20,
		SlideDrag:       0.5,
		SlideDragGrowth: 2,
		SlideStopSpeed:  2,
		SlideMinSpeed:   2,

		GrappleSpeed:          30,
		GrappleDistance:       40,
		GrapplingCooldown:     4,
		GrappleArriveDistance: 0.5,
		GrappleHitDuration:    3,
		GrappleMissDuration:   1,
		GrappleLayers:         physics.LayerGrapple,

		WalkingInputThreshold: 0.5,
		WalkingMinSpeed:       0.2,
	}
}

// Validate rejects tunings the controller cannot simulate.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"capsule_height_standing", c.CapsuleHeightStanding},
		{"capsule_height_crouching", c.CapsuleHeightCrouching},
		{"capsule_radius", c.CapsuleRadius},
		{"crouching_sharpness", c.CrouchingSharpness},
		{"footstep_frequency", c.FootstepFrequency},
		{"footstep_frequency_sprinting", c.FootstepFrequencySprinting},
		{"rotation_speed", c.RotationSpeed},
		{"grapple_speed", c.GrappleSpeed},
		{"grapple_distance", c.GrappleDistance},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"gravity_down_force", c.GravityDownForce},
		{"ground_check_distance", c.GroundCheckDistance},
		{"ground_check_distance_in_air", c.GroundCheckDistanceInAir},
		{"skin_width", c.SkinWidth},
		{"movement_sharpness_on_ground", c.MovementSharpnessOnGround},
		{"max_speed_on_ground", c.MaxSpeedOnGround},
		{"max_speed_in_air", c.MaxSpeedInAir},
		{"grappling_cooldown", c.GrapplingCooldown},
		{"slide_drag", c.SlideDrag},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if 2*c.CapsuleRadius > c.CapsuleHeightCrouching {
		return fmt.Errorf("%w: capsule_radius %v does not fit crouching height %v", ErrInvalidConfig, c.CapsuleRadius, c.CapsuleHeightCrouching)
	}
	if c.CapsuleHeightCrouching > c.CapsuleHeightStanding {
		return fmt.Errorf("%w: crouching height exceeds standing height", ErrInvalidConfig)
	}
	if c.MaxSpeedForFallDamage <= c.MinSpeedForFallDamage {
		return fmt.Errorf("%w: max_speed_for_fall_damage must exceed min_speed_for_fall_damage", ErrInvalidConfig)
	}
	if c.SlopeLimit < 0 || c.SlopeLimit > 90 {
		return fmt.Errorf("%w: slope_limit must be within [0, 90]", ErrInvalidConfig)
	}
	if c.PitchLimit <= 0 || c.PitchLimit > 90 {
		return fmt.Errorf("%w: pitch_limit must be within (0, 90]", ErrInvalidConfig)
	}
	return nil
}
