package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"clinicdesk/cmd/internal/domain/entity"
	"clinicdesk/cmd/internal/utils"
	"clinicdesk/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

// RegisterUserRequest carries the client-generated id. Password is optional:
// staff/doctor demo identities are stored without one and later pass login
// regardless of the supplied password.
type RegisterUserRequest struct {
	ID       string `json:"id" validate:"required,max=64"`
	Username string `json:"username" validate:"required,min=2,max=80"`
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=patient staff doctor"`
	Password string `json:"password" validate:"omitempty,min=8,max=64,hasupper,haslower,hasdigit"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"max=64"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UserLoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

type DefaultUserService struct {
	UserRepo  UserRepository
	Validate  *validator.Validate
	JWTSecret string
	TokenTTL  time.Duration
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, jwtSecret string) *DefaultUserService {
	return &DefaultUserService{
		UserRepo:  userRepo,
		Validate:  validate,
		JWTSecret: jwtSecret,
		TokenTTL:  24 * time.Hour,
	}
}

func (u *DefaultUserService) Register(req *RegisterUserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}
	if found {
		return nil, apierror.EmailAlreadyExistsError
	}

	var hash *string
	if req.Password != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Errorf("failed to hash password for %s: %v", req.Email, err)
			return nil, apierror.InternalServerError
		}
		hashed := string(raw)
		hash = &hashed
	}

	user := &entity.User{
		ID:       req.ID,
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: hash,
	}

	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

// Login verifies the credentials and issues a bearer token. A missing user is
// reported separately from a wrong password so the UI can render the right
// message; users without a stored hash skip the password check.
func (u *DefaultUserService) Login(req *UserLoginRequest) (*UserLoginResponse, apierror.ErrorResponse) {
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserNotFoundError
	}

	if user.Password != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
			return nil, apierror.InvalidCredentialsError
		}
	}

	token, err := utils.NewToken(u.JWTSecret, user.ID, user.Role, u.TokenTTL)
	if err != nil {
		log.Errorf("failed to issue token for %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &UserLoginResponse{User: toUserResponse(user), Token: token}, nil
}

func (u *DefaultUserService) GetUser(rawId, subId string) (*UserResponse, apierror.ErrorResponse) {
	if rawId == "@me" {
		rawId = subId
	}

	user, err := u.UserRepo.FindByID(rawId)
	if err != nil {
		log.Errorf("failed to find user (%s) by id: %v", rawId, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserNotFoundError
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}
}
