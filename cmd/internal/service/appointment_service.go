package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"clinicdesk/cmd/internal/domain/entity"
	"clinicdesk/cmd/internal/triage"
	"clinicdesk/cmd/internal/utils"
	"clinicdesk/cmd/internal/utils/apierror"
)

type AppointmentRepository interface {
	FindAll() ([]*entity.Appointment, error)
	ExistsByID(id string) (bool, error)
	Save(appointment *entity.Appointment) error
	DeleteByID(id string) error
}

// AppointmentRequest is the full record as the client submits it: the client
// synthesizes the id and registration timestamp before sending. The triage
// level is deliberately not restricted to the known set; unknown levels are
// stored and simply dispatch last.
type AppointmentRequest struct {
	ID           string  `json:"id" validate:"required,max=64"`
	PatientID    string  `json:"patientId" validate:"required,max=64"`
	PatientName  string  `json:"patientName" validate:"required,max=120"`
	Age          int     `json:"age" validate:"gte=0,lte=150"`
	Gender       string  `json:"gender" validate:"max=32"`
	Phone        string  `json:"phone" validate:"max=32"`
	Symptoms     string  `json:"symptoms" validate:"max=2000"`
	UrgencyScale int     `json:"urgencyScale" validate:"gte=0,lte=10"`
	TriageLevel  string  `json:"triageLevel" validate:"required,max=32"`
	TriageScore  float64 `json:"triageScore" validate:"gte=0"`
	TimeSlot     string  `json:"timeSlot" validate:"max=64"`
	DoctorID     string  `json:"doctorId" validate:"max=64"`
	RegisteredAt string  `json:"registeredAt" validate:"required,iso8601"`
	IsOffline    bool    `json:"isOffline"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	Validate        *validator.Validate
}

func NewAppointmentService(apptRepo AppointmentRepository, validate *validator.Validate) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, Validate: validate}
}

func (a *DefaultAppointmentService) GetAppointments() ([]triage.Appointment, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch appointments: %v", err)
		return nil, apierror.InternalServerError
	}

	response := make([]triage.Appointment, len(appts))
	for i, appt := range appts {
		response[i] = toAppointment(appt)
	}
	return response, nil
}

func (a *DefaultAppointmentService) CreateAppointment(req *AppointmentRequest) (*triage.Appointment, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	exists, err := a.AppointmentRepo.ExistsByID(req.ID)
	if err != nil {
		log.Errorf("failed to check appointment id %s: %v", req.ID, err)
		return nil, apierror.InternalServerError
	}
	if exists {
		return nil, apierror.DuplicateAppointmentError
	}

	appointment := &entity.Appointment{
		ID:           req.ID,
		PatientID:    req.PatientID,
		PatientName:  req.PatientName,
		Age:          req.Age,
		Gender:       req.Gender,
		Phone:        req.Phone,
		Symptoms:     req.Symptoms,
		UrgencyScale: req.UrgencyScale,
		TriageLevel:  req.TriageLevel,
		TriageScore:  req.TriageScore,
		TimeSlot:     req.TimeSlot,
		DoctorID:     req.DoctorID,
		RegisteredAt: req.RegisteredAt,
		IsOffline:    req.IsOffline,
	}

	if err := a.AppointmentRepo.Save(appointment); err != nil {
		log.Errorf("failed to save appointment %s: %v", req.ID, err)
		return nil, apierror.InternalServerError
	}

	resp := toAppointment(appointment)
	return &resp, nil
}

// DeleteAppointment removes the record. Deleting an id that is already gone
// succeeds, so client retries after a lost response stay harmless.
func (a *DefaultAppointmentService) DeleteAppointment(id string) apierror.ErrorResponse {
	if err := a.AppointmentRepo.DeleteByID(id); err != nil {
		log.Errorf("failed to delete appointment %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toAppointment(appt *entity.Appointment) triage.Appointment {
	return triage.Appointment{
		ID:           appt.ID,
		PatientID:    appt.PatientID,
		PatientName:  appt.PatientName,
		Age:          appt.Age,
		Gender:       appt.Gender,
		Phone:        appt.Phone,
		Symptoms:     appt.Symptoms,
		UrgencyScale: appt.UrgencyScale,
		TriageLevel:  triage.Level(appt.TriageLevel),
		TriageScore:  appt.TriageScore,
		TimeSlot:     appt.TimeSlot,
		DoctorID:     appt.DoctorID,
		RegisteredAt: appt.RegisteredAt,
		IsOffline:    appt.IsOffline,
	}
}
