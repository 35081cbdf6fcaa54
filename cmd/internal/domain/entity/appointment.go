package entity

// Appointment is one stored appointment request. The id is generated by the
// client and is the sole identity key; registered_at is written once at
// creation and never updated (there is no edit path).
type Appointment struct {
	ID           string `gorm:"primaryKey"`
	PatientID    string `gorm:"not null"`
	PatientName  string `gorm:"not null"`
	Age          int
	Gender       string
	Phone        string
	Symptoms     string
	UrgencyScale int
	TriageLevel  string `gorm:"not null"`
	TriageScore  float64
	TimeSlot     string
	DoctorID     string // References: users(id), not enforced
	RegisteredAt string `gorm:"not null"`
	IsOffline    bool   `gorm:"not null"`
}
