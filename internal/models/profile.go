// ABOUTME: Profile model with gender, fitness level, and goal enums.
// ABOUTME: Supports partial updates through ProfileUpdate merge.
package models

// Gender is the self-reported gender on the profile.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// AllGenders lists every valid gender value.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// FitnessLevel is used both for the profile and for workout difficulty.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// AllFitnessLevels lists every valid fitness level.
var AllFitnessLevels = []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// FitnessGoal is one entry of the profile's goal set.
type FitnessGoal string

const (
	GoalLoseWeight     FitnessGoal = "lose_weight"
	GoalBuildMuscle    FitnessGoal = "build_muscle"
	GoalStayActive     FitnessGoal = "stay_active"
	GoalImproveStamina FitnessGoal = "improve_stamina"
)

// AllGoals lists every valid fitness goal.
var AllGoals = []FitnessGoal{GoalLoseWeight, GoalBuildMuscle, GoalStayActive, GoalImproveStamina}

// IsValidGender checks if a string is a valid gender.
func IsValidGender(s string) bool {
	for _, g := range AllGenders {
		if string(g) == s {
			return true
		}
	}
	return false
}

// IsValidFitnessLevel checks if a string is a valid fitness level.
func IsValidFitnessLevel(s string) bool {
	for _, l := range AllFitnessLevels {
		if string(l) == s {
			return true
		}
	}
	return false
}

// IsValidGoal checks if a string is a valid fitness goal.
func IsValidGoal(s string) bool {
	for _, g := range AllGoals {
		if string(g) == s {
			return true
		}
	}
	return false
}

// Profile is the single user profile kept on the device.
type Profile struct {
	Name         string        `json:"name" yaml:"name"`
	Age          *int          `json:"age,omitempty" yaml:"age,omitempty"`
	Gender       *Gender       `json:"gender,omitempty" yaml:"gender,omitempty"`
	Height       *float64      `json:"height,omitempty" yaml:"height,omitempty"`
	Weight       *float64      `json:"weight,omitempty" yaml:"weight,omitempty"`
	FitnessLevel *FitnessLevel `json:"fitnessLevel,omitempty" yaml:"fitness_level,omitempty"`
	Goals        []FitnessGoal `json:"goals" yaml:"goals"`
	Onboarded    bool          `json:"onboarded" yaml:"onboarded"`
}

// DefaultProfile returns the empty, not-onboarded profile.
func DefaultProfile() Profile {
	return Profile{Goals: []FitnessGoal{}}
}

// ProfileUpdate carries the fields to change. Nil fields are left alone;
// a non-nil Goals replaces the whole goal list.
type ProfileUpdate struct {
	Name         *string
	Age          *int
	Gender       *Gender
	Height       *float64
	Weight       *float64
	FitnessLevel *FitnessLevel
	Goals        []FitnessGoal
	Onboarded    *bool
}

// Merge returns a copy of p with every set field of u applied.
func (p Profile) Merge(u ProfileUpdate) Profile {
	out := p.Clone()
	if u.Name != nil {
		out.Name = *u.Name
	}
	if u.Age != nil {
		out.Age = ptr(*u.Age)
	}
	if u.Gender != nil {
		out.Gender = ptr(*u.Gender)
	}
	if u.Height != nil {
		out.Height = ptr(*u.Height)
	}
	if u.Weight != nil {
		out.Weight = ptr(*u.Weight)
	}
	if u.FitnessLevel != nil {
		out.FitnessLevel = ptr(*u.FitnessLevel)
	}
	if u.Goals != nil {
		out.Goals = []FitnessGoal{}
		for _, g := range u.Goals {
			if !out.HasGoal(g) {
				out.Goals = append(out.Goals, g)
			}
		}
	}
	if u.Onboarded != nil {
		out.Onboarded = *u.Onboarded
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (p Profile) Clone() Profile {
	out := p
	out.Age = clonePtr(p.Age)
	out.Gender = clonePtr(p.Gender)
	out.Height = clonePtr(p.Height)
	out.Weight = clonePtr(p.Weight)
	out.FitnessLevel = clonePtr(p.FitnessLevel)
	out.Goals = append([]FitnessGoal{}, p.Goals...)
	return out
}

// HasGoal reports whether g is in the goal set.
func (p Profile) HasGoal(g FitnessGoal) bool {
	for _, goal := range p.Goals {
		if goal == g {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
