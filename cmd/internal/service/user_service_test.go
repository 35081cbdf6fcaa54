package service

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"clinicdesk/cmd/internal/domain/entity"
	"clinicdesk/cmd/internal/utils/validators"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	_ = v.RegisterValidation("hasupper", validators.HasUpper)
	_ = v.RegisterValidation("haslower", validators.HasLower)
	_ = v.RegisterValidation("hasdigit", validators.HasDigit)
	_ = v.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = v.RegisterValidation("iso8601", validators.IsIso8601)
	return v
}

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}, byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) FindByID(id string) (*entity.User, error)       { return f.byID[id], nil }
func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return f.byEmail[email], nil }
func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}
func (f *fakeUserRepo) Save(user *entity.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func registerReq() *RegisterUserRequest {
	return &RegisterUserRequest{
		ID:       "u1",
		Username: "ada",
		Name:     "Ada Lovelace",
		Email:    "ada@clinic.test",
		Role:     "patient",
		Password: "Sup3rSecret",
	}
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newValidate(t), "secret")

	resp, apierr := svc.Register(registerReq())
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if resp.ID != "u1" || resp.Role != "patient" {
		t.Errorf("got %+v", resp)
	}

	stored := repo.byEmail["ada@clinic.test"]
	if stored == nil || stored.Password == nil {
		t.Fatal("expected a stored hash")
	}
	if *stored.Password == "Sup3rSecret" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*stored.Password), []byte("Sup3rSecret")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestUserService_RegisterWithoutPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newValidate(t), "secret")

	req := registerReq()
	req.Password = ""
	req.Role = "staff"
	if _, apierr := svc.Register(req); apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}

	if stored := repo.byEmail["ada@clinic.test"]; stored == nil || stored.Password != nil {
		t.Error("expected no stored credential for a passwordless role")
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newValidate(t), "secret")

	if _, apierr := svc.Register(registerReq()); apierr != nil {
		t.Fatal(apierr)
	}

	dup := registerReq()
	dup.ID = "u2"
	_, apierr := svc.Register(dup)
	if apierr == nil || apierr.Code() != http.StatusConflict {
		t.Fatalf("got %v, want a conflict", apierr)
	}
}

func TestUserService_RegisterRejectsWeakPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), newValidate(t), "secret")

	req := registerReq()
	req.Password = "alllowercase1" // no upper
	_, apierr := svc.Register(req)
	if apierr == nil || apierr.Code() != http.StatusBadRequest {
		t.Fatalf("got %v, want a validation failure", apierr)
	}
}

func TestUserService_LoginOutcomes(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newValidate(t), "secret")
	if _, apierr := svc.Register(registerReq()); apierr != nil {
		t.Fatal(apierr)
	}

	t.Run("not found", func(t *testing.T) {
		_, apierr := svc.Login(&UserLoginRequest{Email: "absent@x.com", Password: "pw"})
		if apierr == nil || apierr.Code() != http.StatusNotFound {
			t.Fatalf("got %v, want 404", apierr)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, apierr := svc.Login(&UserLoginRequest{Email: "ada@clinic.test", Password: "nope"})
		if apierr == nil || apierr.Code() != http.StatusUnauthorized {
			t.Fatalf("got %v, want 401", apierr)
		}
	})

	t.Run("success", func(t *testing.T) {
		resp, apierr := svc.Login(&UserLoginRequest{Email: "ada@clinic.test", Password: "Sup3rSecret"})
		if apierr != nil {
			t.Fatalf("unexpected error: %v", apierr)
		}
		if resp.User.ID != "u1" || resp.Token == "" {
			t.Errorf("got %+v", resp)
		}
	})
}

func TestUserService_LoginPasswordlessBypassesCheck(t *testing.T) {
	repo := newFakeUserRepo()
	_ = repo.Save(&entity.User{
		ID:       "s1",
		Username: "frontdesk",
		Name:     "Front Desk",
		Email:    "desk@clinic.test",
		Role:     "staff",
	})
	svc := NewUserService(repo, newValidate(t), "secret")

	resp, apierr := svc.Login(&UserLoginRequest{Email: "desk@clinic.test", Password: "anything at all"})
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if resp.User.ID != "s1" {
		t.Errorf("got %+v", resp.User)
	}
}

func TestUserService_GetUserMeAlias(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, newValidate(t), "secret")
	if _, apierr := svc.Register(registerReq()); apierr != nil {
		t.Fatal(apierr)
	}

	user, apierr := svc.GetUser("@me", "u1")
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if user.ID != "u1" {
		t.Errorf("got %+v", user)
	}

	if _, apierr := svc.GetUser("missing", "u1"); apierr == nil || apierr.Code() != http.StatusNotFound {
		t.Fatalf("got %v, want 404", apierr)
	}
}
