package closet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/wardrobe-api/internal/auth"
	"github.com/redmonkez12/wardrobe-api/internal/httputil"
)

type memoryStore struct {
	mu    sync.Mutex
	items map[uuid.UUID][]Item
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[uuid.UUID][]Item{}}
}

func (m *memoryStore) List(_ context.Context, userID uuid.UUID, category string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Item{}
	for _, it := range m.items[userID] {
		if category == "" || it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memoryStore) Create(_ context.Context, userID uuid.UUID, in ItemInput) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := Item{
		ID:        uuid.New(),
		Name:      in.Name,
		Category:  in.Category,
		Seasons:   in.Seasons,
		Occasions: in.Occasions,
		ImageURL:  in.ImageURL,
		CreatedAt: time.Now(),
	}
	m.items[userID] = append(m.items[userID], it)
	return &it, nil
}

func (m *memoryStore) Delete(_ context.Context, userID, itemID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items[userID]
	for i, it := range items {
		if it.ID == itemID {
			m.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func newTestRouter(userID uuid.UUID) http.Handler {
	h := NewHandler(NewService(newMemoryStore()))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), auth.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/closet/items", h.List)
	r.Post("/closet/items", h.Create)
	r.Delete("/closet/items/{id}", h.Delete)
	return r
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Code
}

func TestClosetLifecycle(t *testing.T) {
	router := newTestRouter(uuid.New())

	body := `{"name":" Denim jacket ","category":"Outerwear","seasons":["Spring","Fall"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/closet/items", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Denim jacket", created.Name)
	assert.Equal(t, "outerwear", created.Category)
	assert.Equal(t, []string{"spring", "fall"}, created.Seasons)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/closet/items?category=outerwear", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Items, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/closet/items/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/closet/items/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httputil.CodeItemNotFound, errorCode(t, rec))
}

func TestClosetAcceptsProcessedImageDataURL(t *testing.T) {
	router := newTestRouter(uuid.New())

	// Larger than the general body limit, as processed photos usually are.
	dataURL := "data:image/png;base64," + strings.Repeat("A", int(httputil.MaxBodyBytes)+1024)
	raw, err := json.Marshal(ItemInput{Name: "Linen shirt", Category: "tops", ImageURL: dataURL})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/closet/items", strings.NewReader(string(raw))))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, dataURL, created.ImageURL)
}

func TestClosetValidation(t *testing.T) {
	router := newTestRouter(uuid.New())

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unknown category", http.MethodPost, "/closet/items", `{"name":"Hat","category":"hats"}`, http.StatusBadRequest, httputil.CodeInvalidCategory},
		{"missing name", http.MethodPost, "/closet/items", `{"category":"tops"}`, http.StatusBadRequest, httputil.CodeInvalidRequestBody},
		{"bad filter", http.MethodGet, "/closet/items?category=hats", "", http.StatusBadRequest, httputil.CodeInvalidCategory},
		{"bad id", http.MethodDelete, "/closet/items/not-a-uuid", "", http.StatusBadRequest, httputil.CodeInvalidItemID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, errorCode(t, rec))
		})
	}
}

func TestClosetIsolatedPerUser(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store)
	owner, other := uuid.New(), uuid.New()

	item, err := svc.Add(context.Background(), owner, ItemInput{Name: "Scarf", Category: "accessories"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), other, item.ID), ErrItemNotFound)

	items, err := svc.List(context.Background(), other, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
