package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	localCache "github.com/seanazu/value-hunter/cache"
	"github.com/seanazu/value-hunter/customerrors"
)

// SessionService keeps one ScreenerFormController per form session.
type SessionService interface {
	Create() ScreenerFormController
	Get(id string) (ScreenerFormController, error)
	Touch(id string) (ScreenerFormController, error)
	Close(id string)
	Count() int
}

type SessionServiceImpl struct {
	client ScreeningClient
	store  *cache.Cache
	ttl    time.Duration
}

func NewSessionService(client ScreeningClient, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = localCache.DefaultSessionTTL
	}
	store := localCache.NewSessionCache(ttl)

	// expired and deleted sessions are torn down, so late responses are dropped
	store.OnEvicted(func(id string, v interface{}) {
		if form, ok := v.(ScreenerFormController); ok {
			form.Close()
			log.Debug().Str("session", id).Msg("form session closed")
		}
	})

	return &SessionServiceImpl{
		client: client,
		store:  store,
		ttl:    ttl,
	}
}

func (s *SessionServiceImpl) Create() ScreenerFormController {
	id := uuid.NewString()
	form := NewScreenerFormController(id, s.client)
	s.store.Set(id, form, s.ttl)
	log.Info().Str("session", id).Msg("form session created")
	return form
}

// Get treats a closed form as gone and drops whatever entry still holds it.
func (s *SessionServiceImpl) Get(id string) (ScreenerFormController, error) {
	if v, found := s.store.Get(id); found {
		if form, ok := v.(ScreenerFormController); ok && !form.Closed() {
			return form, nil
		}
		s.store.Delete(id)
	}
	return nil, customerrors.ErrSessionNotFound
}

// Touch returns the session and restarts its expiry.
func (s *SessionServiceImpl) Touch(id string) (ScreenerFormController, error) {
	form, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	s.store.Set(id, form, s.ttl)

	// a Close between Get and Set would otherwise be undone by the re-insert
	if form.Closed() {
		s.store.Delete(id)
		return nil, customerrors.ErrSessionNotFound
	}
	return form, nil
}

func (s *SessionServiceImpl) Close(id string) {
	s.store.Delete(id)
}

func (s *SessionServiceImpl) Count() int {
	return s.store.ItemCount()
}
