package userController

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"luminaops/internal/events"
	. "luminaops/internal/models"
	"luminaops/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxScore = decimal.NewFromInt(5)

type OnboardUserRequest struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	WhatsApp  *string          `json:"whatsapp,omitempty"`
	TradeTags []string         `json:"tradeTags,omitempty"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Score     *decimal.Decimal `json:"score,omitempty"`
}

type UserControllerInterface interface {
	Onboard(ctx context.Context, request OnboardUserRequest) (*User, error)
	Deactivate(ctx context.Context, actor *User, userID uuid.UUID) (*User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Permissions(role string) (Permission, error)
}

type UserController struct {
	userRepo repositories.UserRepository
	eventBus events.Publisher
	now      func() time.Time
	log      logger.Logger
}

func New(repos repositories.Repository, eventBus events.Publisher) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		eventBus: eventBus,
		now:      time.Now,
		log:      logger.New("userController"),
	}
}

func (uc *UserController) Onboard(ctx context.Context, request OnboardUserRequest) (*User, error) {
	log := uc.log.TraceFromContext(ctx).Function("Onboard")

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, Invalid("name is required")
	}

	address, err := mail.ParseAddress(strings.TrimSpace(request.Email))
	if err != nil {
		return nil, Invalid("email %q is not valid", request.Email)
	}

	role, err := ParseRole(request.Role)
	if err != nil {
		return nil, err
	}
	permissions, err := PermissionsFor(role)
	if err != nil {
		return nil, err
	}

	if request.Rate != nil && request.Rate.IsNegative() {
		return nil, Invalid("rate cannot be negative")
	}
	if request.Score != nil && (request.Score.IsNegative() || request.Score.GreaterThan(maxScore)) {
		return nil, Invalid("score must be between 0 and %s", maxScore)
	}

	tags := make([]string, 0, len(request.TradeTags))
	for _, tag := range request.TradeTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, strings.ToLower(tag))
		}
	}

	user := &User{
		BaseUUIDModel: NewBaseUUIDModel(uc.now()),
		Name:          name,
		Email:         strings.ToLower(address.Address),
		Role:          role,
		Permissions:   permissions,
		Active:        true,
		WhatsApp:      request.WhatsApp,
		TradeTags:     tags,
		Rate:          request.Rate,
		Score:         request.Score,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User onboarded", "userID", user.ID, "role", user.Role)

	if uc.eventBus != nil {
		err := uc.eventBus.Publish(events.OPERATIONS_CHANNEL, events.Event{
			Type:    events.USER_ONBOARDED,
			UserID:  &user.ID,
			Message: fmt.Sprintf("%s joined as %s", user.Name, strings.ToLower(string(user.Role))),
		})
		if err != nil {
			log.Er("failed to publish onboarding event", err, "userID", user.ID)
		}
	}

	return user, nil
}

func (uc *UserController) Deactivate(ctx context.Context, actor *User, userID uuid.UUID) (*User, error) {
	log := uc.log.TraceFromContext(ctx).Function("Deactivate")

	if actor == nil || !actor.Active || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if actor.ID == userID {
		return nil, Invalid("admins cannot deactivate themselves")
	}

	user, err := uc.userRepo.Update(ctx, userID, func(user *User) error {
		user.Active = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("User deactivated", "userID", userID, "by", actor.ID)
	return user, nil
}

func (uc *UserController) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserController) List(ctx context.Context) ([]*User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, uc.log.TraceFromContext(ctx).Function("List").Err("failed to list users", err)
	}
	return users, nil
}

func (uc *UserController) Permissions(role string) (Permission, error) {
	parsed, err := ParseRole(role)
	if err != nil {
		return Permission{}, err
	}
	return PermissionsFor(parsed)
}
