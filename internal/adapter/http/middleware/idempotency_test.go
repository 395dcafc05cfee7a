package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/memberledger/internal/usecase"
	"github.com/iho/memberledger/internal/usecase/mocks"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	deleteFn      func(ctx context.Context, key string) error
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func (f *fakeIdempotencyStore) Delete(ctx context.Context, key string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, key)
	}
	return nil
}

func newIdempotentRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/members/7/increment", bytes.NewBufferString(`{"balance":"25.00"}`))
	req.Header.Set(IdempotencyKeyHeader, key)
	return req
}

func TestIdempotencyMiddleware_StoreErrorsFailRequest(t *testing.T) {
	var called bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}

	rr := httptest.NewRecorder()
	NewIdempotencyMiddleware(store, time.Minute).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newIdempotentRequest("key-err"))

	if called {
		t.Fatalf("handler should not be called when store errors")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	var updated, deleted bool
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
		deleteFn: func(ctx context.Context, key string) error {
			deleted = true
			return nil
		},
	}

	rr := httptest.NewRecorder()
	NewIdempotencyMiddleware(store, time.Minute).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(rr, newIdempotentRequest("key-fail"))

	if updated {
		t.Fatalf("expected error responses not to be cached")
	}
	if !deleted {
		t.Fatalf("expected key to be released after a failed response")
	}
}

func TestIdempotencyMiddleware_SkipsNonMutatingRequests(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			t.Fatalf("store must not be consulted for GET")
			return false, nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	req.Header.Set(IdempotencyKeyHeader, "key")
	called := false
	NewIdempotencyMiddleware(store, time.Minute).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatalf("expected next handler to be called")
	}
}

func TestIdempotencyMiddleware_ReturnsCachedResponse(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"cached":true}`), nil
		},
	}

	rr := httptest.NewRecorder()
	NewIdempotencyMiddleware(store, time.Minute).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called when cached response exists")
	})).ServeHTTP(rr, newIdempotentRequest("key-123"))

	if rr.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected %s header to be set", IdempotencyReplayHeader)
	}
	if got := rr.Body.String(); got != `{"cached":true}` {
		t.Fatalf("unexpected cached body: %s", got)
	}
}

func TestIdempotencyMiddleware_InFlightDuplicateConflicts(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(usecase.IdempotencyInFlight), nil
		},
	}

	rr := httptest.NewRecorder()
	NewIdempotencyMiddleware(store, time.Minute).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run for an in-flight duplicate")
	})).ServeHTTP(rr, newIdempotentRequest("key-dup"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponseAndReplays(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	mw := NewIdempotencyMiddleware(store, time.Minute)

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":7}`))
	})

	first := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(first, newIdempotentRequest("key-456"))
	second := httptest.NewRecorder()
	mw.Wrap(next).ServeHTTP(second, newIdempotentRequest("key-456"))

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Body.String() != `{"id":7}` || second.Header().Get(IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected replayed body, got %q", second.Body.String())
	}
}

func TestIdempotencyMiddleware_KeysAreScopedToPath(t *testing.T) {
	var keys []string
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			keys = append(keys, key)
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store, time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	inc := newIdempotentRequest("same")
	dec := httptest.NewRequest(http.MethodPost, "/api/v1/members/7/decrement", nil)
	dec.Header.Set(IdempotencyKeyHeader, "same")
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), inc)
	mw.Wrap(next).ServeHTTP(httptest.NewRecorder(), dec)

	if len(keys) != 2 || keys[0] == keys[1] {
		t.Fatalf("expected distinct keys per path, got %v", keys)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyWhenHandlerPanics(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":7}`))
	})
	h := Recovery(NewIdempotencyMiddleware(store, 0).Wrap(next))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, newIdempotentRequest("key-panic"))
	if first.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recovered panic, got %d", first.Code)
	}
	if _, ok := store.Value("POST:/api/v1/members/7/increment:key-panic"); ok {
		t.Fatal("expected key to be released after panic")
	}

	second := httptest.NewRecorder()
	h.ServeHTTP(second, newIdempotentRequest("key-panic"))
	if second.Code != http.StatusOK {
		t.Fatalf("expected retry to run the handler, got %d", second.Code)
	}
	if calls != 2 {
		t.Fatalf("expected handler to run twice, ran %d times", calls)
	}
	stored, ok := store.Value("POST:/api/v1/members/7/increment:key-panic")
	if !ok || string(stored) != `{"id":7}` {
		t.Fatalf("expected retried response to be stored, got %q", stored)
	}
}
