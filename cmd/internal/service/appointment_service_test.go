package service

import (
	"net/http"
	"testing"
	"time"

	"clinicdesk/cmd/internal/domain/entity"
	"clinicdesk/cmd/internal/triage"
)

type fakeApptRepo struct {
	rows []*entity.Appointment
}

func (f *fakeApptRepo) FindAll() ([]*entity.Appointment, error) { return f.rows, nil }
func (f *fakeApptRepo) ExistsByID(id string) (bool, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeApptRepo) Save(a *entity.Appointment) error {
	f.rows = append(f.rows, a)
	return nil
}
func (f *fakeApptRepo) DeleteByID(id string) error {
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func apptReq(id string) *AppointmentRequest {
	return &AppointmentRequest{
		ID:           id,
		PatientID:    "p1",
		PatientName:  "Ada Lovelace",
		Age:          36,
		Gender:       "female",
		Phone:        "555-0101",
		Symptoms:     "severe headache",
		UrgencyScale: 7,
		TriageLevel:  string(triage.LevelCritical),
		TriageScore:  0.82,
		TimeSlot:     "09:30",
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestAppointmentService_CreateAndList(t *testing.T) {
	repo := &fakeApptRepo{}
	svc := NewAppointmentService(repo, newValidate(t))

	created, apierr := svc.CreateAppointment(apptReq("a1"))
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if created.ID != "a1" || created.TriageLevel != triage.LevelCritical {
		t.Errorf("got %+v", created)
	}

	appts, apierr := svc.GetAppointments()
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if len(appts) != 1 || appts[0].PatientName != "Ada Lovelace" {
		t.Errorf("got %v", appts)
	}
}

func TestAppointmentService_DuplicateIDFails(t *testing.T) {
	repo := &fakeApptRepo{}
	svc := NewAppointmentService(repo, newValidate(t))

	if _, apierr := svc.CreateAppointment(apptReq("a1")); apierr != nil {
		t.Fatal(apierr)
	}

	_, apierr := svc.CreateAppointment(apptReq("a1"))
	if apierr == nil || apierr.Code() != http.StatusConflict {
		t.Fatalf("got %v, want a conflict", apierr)
	}
	if len(repo.rows) != 1 {
		t.Errorf("duplicate create stored a second row")
	}
}

func TestAppointmentService_RejectsBadTimestamp(t *testing.T) {
	svc := NewAppointmentService(&fakeApptRepo{}, newValidate(t))

	req := apptReq("a1")
	req.RegisteredAt = "yesterday-ish"
	_, apierr := svc.CreateAppointment(req)
	if apierr == nil || apierr.Code() != http.StatusBadRequest {
		t.Fatalf("got %v, want a validation failure", apierr)
	}
}

func TestAppointmentService_UnknownLevelIsStored(t *testing.T) {
	repo := &fakeApptRepo{}
	svc := NewAppointmentService(repo, newValidate(t))

	req := apptReq("a1")
	req.TriageLevel = "TRIAGE_PENDING"
	created, apierr := svc.CreateAppointment(req)
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if created.TriageLevel.Weight() != 0 {
		t.Error("expected an unknown level to carry weight 0")
	}
}

func TestAppointmentService_DeleteAbsentIDSucceeds(t *testing.T) {
	svc := NewAppointmentService(&fakeApptRepo{}, newValidate(t))

	if apierr := svc.DeleteAppointment("never-existed"); apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
}
