// Package identity registers players under a 4-digit PIN and logs them in by it.
package identity

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/cogtrain-backend/internal/round"
	"github.com/xtding233/cogtrain-backend/internal/store"
)

const (
	usersPath   = "usuarios"
	pinAttempts = 10
)

var (
	ErrInvalidPIN          = errors.New("the PIN must be 4 digits")
	ErrUnknownPIN          = errors.New("incorrect PIN")
	ErrPINSpaceExhausted   = errors.New("could not allocate a free PIN")
	ErrIdentityUnavailable = errors.New("player directory is unavailable, try again later")
)

// User is the stored player document.
type User struct {
	Name       string `json:"nombre"`
	Age        int    `json:"edad"`
	Disability string `json:"discapacidad"`
	PIN        string `json:"pin"`
}

// Player is a logged-in user. ID is the key of the user document.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Disability string `json:"disability,omitempty"`
	PIN        string `json:"pin"`
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=80"`
	Age        int    `json:"age" validate:"required,min=1,max=120"`
	Disability string `json:"disability" validate:"max=120"`
}

type Service struct {
	docs     store.Documents
	rng      round.RandomSource
	validate *validator.Validate
}

func NewService(docs store.Documents, rng round.RandomSource) *Service {
	if rng == nil {
		rng = round.DefaultRNG()
	}
	return &Service{docs: docs, rng: rng, validate: validator.New()}
}

// Register stores a new user under a fresh PIN.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (Player, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Disability = strings.TrimSpace(req.Disability)
	if err := s.validate.Struct(req); err != nil {
		return Player{}, err
	}

	users, err := s.users(ctx)
	if err != nil {
		return Player{}, err
	}

	for i := 0; i < pinAttempts; i++ {
		pin := strconv.Itoa(1000 + s.rng.IntN(9000))
		used, err := s.taken(ctx, users, pin)
		if err != nil {
			return Player{}, err
		}
		if used {
			log.Debug().Str("evt.name", "identity.pin.collision").Msg("PIN taken, drawing another")
			continue
		}
		u := User{Name: req.Name, Age: req.Age, Disability: req.Disability, PIN: pin}
		if err := s.docs.Put(ctx, usersPath+"/"+pin, u); err != nil {
			log.Error().Err(err).Str("evt.name", "identity.register.failed").Msg("cannot store user")
			return Player{}, ErrIdentityUnavailable
		}
		log.Info().Str("evt.name", "identity.registered").Str("player", pin).Msg("player registered")
		return player(pin, u), nil
	}
	return Player{}, ErrPINSpaceExhausted
}

// Login finds the user holding pin.
func (s *Service) Login(ctx context.Context, pin string) (Player, error) {
	pin = strings.TrimSpace(pin)
	if !ValidPIN(pin) {
		return Player{}, ErrInvalidPIN
	}

	var u User
	found, err := s.docs.Get(ctx, usersPath+"/"+pin, &u)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "identity.login.failed").Msg("cannot read user")
		return Player{}, ErrIdentityUnavailable
	}
	if found && (u.PIN == "" || u.PIN == pin) {
		return player(pin, u), nil
	}

	// users stored under other keys carry their PIN in the document
	users, err := s.users(ctx)
	if err != nil {
		return Player{}, err
	}
	for id, u := range users {
		if u.PIN == pin {
			return player(id, u), nil
		}
	}
	return Player{}, ErrUnknownPIN
}

// ValidPIN reports whether pin is exactly 4 ASCII digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (s *Service) users(ctx context.Context) (map[string]User, error) {
	users := map[string]User{}
	if _, err := s.docs.Get(ctx, usersPath, &users); err != nil {
		log.Error().Err(err).Str("evt.name", "identity.users.failed").Msg("cannot read user directory")
		return nil, ErrIdentityUnavailable
	}
	return users, nil
}

// taken reports whether pin already belongs to a user, either as a document
// key or as the PIN field of a document stored under another key.
func (s *Service) taken(ctx context.Context, users map[string]User, pin string) (bool, error) {
	if _, ok := users[pin]; ok {
		return true, nil
	}
	for _, u := range users {
		if u.PIN == pin {
			return true, nil
		}
	}

	// stores that cannot list the directory still answer for the key itself
	var u User
	found, err := s.docs.Get(ctx, usersPath+"/"+pin, &u)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "identity.pin.lookup").Msg("cannot read user")
		return false, ErrIdentityUnavailable
	}
	return found, nil
}

func player(id string, u User) Player {
	pin := u.PIN
	if pin == "" {
		pin = id
	}
	return Player{ID: id, Name: u.Name, Age: u.Age, Disability: u.Disability, PIN: pin}
}
