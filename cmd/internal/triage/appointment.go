package triage

import "time"

// Level is the coarse urgency category assigned to an appointment at intake.
type Level string

const (
	LevelEmergency    Level = "EMERGENCY"
	LevelCritical     Level = "CRITICAL"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelNormal       Level = "NORMAL"
)

// Weight maps a level to its dispatch weight. Unknown or missing levels weigh
// 0, so a malformed record sinks to the back of the queue instead of failing.
func (l Level) Weight() int {
	switch l {
	case LevelEmergency:
		return 4
	case LevelCritical:
		return 3
	case LevelIntermediate:
		return 2
	case LevelNormal:
		return 1
	default:
		return 0
	}
}

// Appointment is the unit of work in the dispatch queue. Field names follow
// the wire format of the appointments API.
type Appointment struct {
	ID           string  `json:"id"`
	PatientID    string  `json:"patientId"`
	PatientName  string  `json:"patientName"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Phone        string  `json:"phone"`
	Symptoms     string  `json:"symptoms"`
	UrgencyScale int     `json:"urgencyScale"`
	TriageLevel  Level   `json:"triageLevel"`
	TriageScore  float64 `json:"triageScore"`
	TimeSlot     string  `json:"timeSlot"`
	DoctorID     string  `json:"doctorId"`
	RegisteredAt string  `json:"registeredAt"`
	IsOffline    bool    `json:"isOffline"`
}

// RegisteredTime parses the registration timestamp. An unparsable timestamp
// yields the zero time, which sorts as the earliest possible arrival so the
// queue ordering stays total.
func (a Appointment) RegisteredTime() time.Time {
	t, err := time.Parse(time.RFC3339, a.RegisteredAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
