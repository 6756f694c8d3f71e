package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/sessions"

	"ticket-marketplace/internal/logger"
	"ticket-marketplace/internal/models"
	"ticket-marketplace/internal/services"
)

const (
	// CartSessionName is the cookie name holding the cart session
	CartSessionName = "ticket-marketplace-cart"

	cartSessionKey = "cart"

	// maxSessionLength bounds the encoded session kept server side
	maxSessionLength = 1 << 20
)

// CartScope loads the session's cart into the request context and writes it
// back when a handler changed it.
type CartScope struct {
	store   sessions.Store
	ttl     time.Duration
	options []services.CartOption
	now     func() time.Time
}

// NewCartScope creates a cart scope backed by store. Carts untouched for ttl
// are discarded on the next request.
func NewCartScope(store sessions.Store, ttl time.Duration, opts ...services.CartOption) *CartScope {
	return &CartScope{
		store:   store,
		ttl:     ttl,
		options: opts,
		now:     time.Now,
	}
}

// NewServerSessionStore creates a filesystem session store under dir. Only the
// session id travels in the cookie, so carts are not bound by the 4KB cookie limit.
func NewServerSessionStore(dir string, secret []byte) (*sessions.FilesystemStore, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	store := sessions.NewFilesystemStore(dir, secret)
	store.MaxLength(maxSessionLength)
	return store, nil
}

// Handler establishes the cart scope for next
func (cs *CartScope) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := cs.store.Get(r, CartSessionName)
		if err != nil {
			// Tampered or stale cookie; gorilla still hands back a fresh session
			logger.Warnf(r.Context(), "Failed to decode cart session: %v", err)
		}
		if session == nil {
			session = sessions.NewSession(cs.store, CartSessionName)
		}

		cart := cs.load(r, session)
		sw := &sessionWriter{
			ResponseWriter: w,
			req:            r,
			save: func() error {
				return cs.save(w, r, session, cart)
			},
			version: cart.Version(),
			cart:    cart,
		}

		next.ServeHTTP(sw, r.WithContext(services.WithCart(r.Context(), cart)))
		if err := sw.flush(); err != nil {
			sw.fail(err)
		}
	})
}

func (cs *CartScope) load(r *http.Request, session *sessions.Session) *services.Cart {
	raw, ok := session.Values[cartSessionKey].(string)
	if !ok || raw == "" {
		return services.NewCart(cs.options...)
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.Warnf(r.Context(), "Discarding unreadable cart: %v", err)
		return services.NewCart(cs.options...)
	}

	if snapshot.ExpiresAt > 0 && cs.now().Unix() > snapshot.ExpiresAt {
		logger.Debugf(r.Context(), "Cart expired at %d", snapshot.ExpiresAt)
		return services.NewCart(cs.options...)
	}

	return services.RestoreCart(snapshot.Items, cs.options...)
}

func (cs *CartScope) save(w http.ResponseWriter, r *http.Request, session *sessions.Session, cart *services.Cart) error {
	items, err := cart.Items()
	if err != nil {
		return fmt.Errorf("failed to read cart: %w", err)
	}

	if len(items) == 0 {
		delete(session.Values, cartSessionKey)
	} else {
		data, err := json.Marshal(models.CartSnapshot{
			Items:     items,
			ExpiresAt: cs.now().Add(cs.ttl).Unix(),
		})
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}
		session.Values[cartSessionKey] = string(data)
	}

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// sessionWriter saves the session before the first byte of the response goes
// out, since the cookie header cannot be set afterwards. When the save fails
// the handler's response is replaced by a 500.
type sessionWriter struct {
	http.ResponseWriter
	req     *http.Request
	save    func() error
	cart    *services.Cart
	version uint64
	done    bool
	failed  bool
}

func (sw *sessionWriter) flush() error {
	if sw.done {
		return nil
	}
	sw.done = true
	if sw.cart.Version() == sw.version {
		return nil
	}
	return sw.save()
}

func (sw *sessionWriter) fail(err error) {
	logger.Errorf(sw.req.Context(), "Failed to save cart session: %v", err)
	sw.failed = true
	sw.ResponseWriter.Header().Del("Set-Cookie")
	writeError(sw.ResponseWriter, http.StatusInternalServerError, "failed to save cart")
}

func (sw *sessionWriter) WriteHeader(code int) {
	if sw.failed {
		return
	}
	if err := sw.flush(); err != nil {
		sw.fail(err)
		return
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	if !sw.failed && !sw.done {
		if err := sw.flush(); err != nil {
			sw.fail(err)
		}
	}
	if sw.failed {
		// the handler's body is dropped in favor of the error response
		return len(b), nil
	}
	return sw.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (sw *sessionWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
