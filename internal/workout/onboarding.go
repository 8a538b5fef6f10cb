package workout

import "time"

// OnboardingData holds a user's questionnaire answers. Several records may
// exist per user; the newest completed one is the current one.
type OnboardingData struct {
	ID              string    `json:"id" firestore:"id"`
	UserID          string    `json:"userId" firestore:"userId" validate:"required"`
	TrainingLevel   string    `json:"trainingLevel" firestore:"trainingLevel" validate:"required,oneof=beginner intermediate advanced"`
	Goals           []string  `json:"goals" firestore:"goals" validate:"required,min=1,dive,required"`
	WeeklyFrequency int       `json:"weeklyFrequency" firestore:"weeklyFrequency" validate:"min=1,max=7"`
	Equipment       []string  `json:"equipment" firestore:"equipment" validate:"dive,required"`
	FocusAreas      []string  `json:"focusAreas" firestore:"focusAreas" validate:"dive,required"`
	Intensity       string    `json:"intensity" firestore:"intensity" validate:"required,oneof=low moderate high"`
	HasInjury       bool      `json:"hasInjury" firestore:"hasInjury"`
	PreferredStyles []string  `json:"preferredStyles" firestore:"preferredStyles" validate:"dive,required"`
	Completed       bool      `json:"completed" firestore:"completed"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}

// Fields returns the answers as a document field map, used for merge writes.
func (d OnboardingData) Fields() map[string]interface{} {
	return map[string]interface{}{
		"id":              d.ID,
		"userId":          d.UserID,
		"trainingLevel":   d.TrainingLevel,
		"goals":           d.Goals,
		"weeklyFrequency": d.WeeklyFrequency,
		"equipment":       d.Equipment,
		"focusAreas":      d.FocusAreas,
		"intensity":       d.Intensity,
		"hasInjury":       d.HasInjury,
		"preferredStyles": d.PreferredStyles,
		"completed":       d.Completed,
		"createdAt":       d.CreatedAt,
	}
}
