package models

import "time"

const (
	NoteKindLHTest        = "LH"
	NoteKindPregnancyTest = "HCG"
	NoteKindOvulationPain = "OVU_PAIN"
	NoteKindCervicalMucus = "CERVIX"
	NoteKindPain          = "PAIN"
	NoteKindSymptom       = "SYMPTOM"
)

const (
	ResultNegative = "negative"
	ResultPositive = "positive"
	ResultUnsure   = "unsure"
)

const (
	MucusDry      = "dry"
	MucusSticky   = "sticky"
	MucusCreamy   = "creamy"
	MucusWatery   = "watery"
	MucusStretchy = "stretchy"
)

const (
	SideLeft  = "left"
	SideRight = "right"
	SideBoth  = "both"
)

const (
	MinIntensity = 0
	MaxIntensity = 10
)

// Note is a dated observation. Which optional fields are meaningful depends on
// Kind; see KindConfig. Edits keep ID and CreatedAt stable.
type Note struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_notes_user_date"`
	Date      time.Time `gorm:"type:date;not null;index:idx_notes_user_date"`
	Kind      string    `gorm:"not null"`
	Result    string    `gorm:"not null;default:''"`
	Side      string    `gorm:"not null;default:''"`
	Intensity *int
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoteKindConfig struct {
	HasResult     bool
	ResultOptions []string
	HasSide       bool
	HasIntensity  bool
}

func NoteKinds() []string {
	return []string{
		NoteKindLHTest,
		NoteKindPregnancyTest,
		NoteKindOvulationPain,
		NoteKindCervicalMucus,
		NoteKindPain,
		NoteKindSymptom,
	}
}

// KindConfig reports which optional note fields a kind carries. Unknown kinds
// fall back to the bare symptom shape.
func KindConfig(kind string) NoteKindConfig {
	switch kind {
	case NoteKindLHTest, NoteKindPregnancyTest:
		return NoteKindConfig{
			HasResult:     true,
			ResultOptions: []string{ResultNegative, ResultPositive, ResultUnsure},
		}
	case NoteKindCervicalMucus:
		return NoteKindConfig{
			HasResult:     true,
			ResultOptions: []string{MucusDry, MucusSticky, MucusCreamy, MucusWatery, MucusStretchy},
		}
	case NoteKindOvulationPain, NoteKindPain:
		return NoteKindConfig{
			HasSide:      true,
			HasIntensity: true,
		}
	default:
		return NoteKindConfig{}
	}
}

func IsKnownNoteKind(kind string) bool {
	for _, known := range NoteKinds() {
		if kind == known {
			return true
		}
	}
	return false
}
