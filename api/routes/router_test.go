package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stitchfold/admin-gateway/api/middleware"
	"github.com/stitchfold/admin-gateway/internal/forms"
	"github.com/stitchfold/admin-gateway/internal/storefront"
	"github.com/stitchfold/admin-gateway/pkg/catalog"
	"github.com/stitchfold/admin-gateway/pkg/config"
	"github.com/stitchfold/admin-gateway/pkg/logger"
	"github.com/stitchfold/admin-gateway/pkg/redis"
	"github.com/stitchfold/admin-gateway/pkg/types"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = v
	case string:
		f.data[key] = []byte(v)
	}
	return nil
}

func (f *fakeKV) GetBytes(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, redis.Nil
	}
	return v, nil
}

func (f *fakeKV) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	if _, exists := f.data[key]; exists {
		return false, nil
	}
	f.data[key] = []byte("1")
	return true, nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) FormSessionKey(sessionID string) string {
	return "sf:form_session:" + sessionID
}

func (f *fakeKV) AttachmentKey(sessionID, attachmentID string) string {
	return "sf:form_session:" + sessionID + ":attachment:" + attachmentID
}

func (f *fakeKV) SubmitLockKey(sessionID string) string {
	return "sf:form_session:" + sessionID + ":submit_lock"
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type upstreamCall struct {
	method string
	path   string
	auth   string
}

// newTestStack wires the full gateway over a fake catalog service.
func newTestStack(t *testing.T) (http.Handler, *[]upstreamCall) {
	t.Helper()

	calls := &[]upstreamCall{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, upstreamCall{
			method: r.Method,
			path:   r.URL.Path,
			auth:   r.Header.Get("Authorization"),
		})
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			io.Copy(io.Discard, r.Body)
			w.Write([]byte(`{"data":{"_id":"prod-1","slug":"linen-shirt","price":"49.99"}}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"data":{"deleted":true}}`))
		default:
			w.Write([]byte(`{"data":[]}`))
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		App:  config.AppConfig{Env: "dev", Port: "0"},
		Form: config.FormConfig{SessionTTL: time.Hour, MaxUploadMB: 10, MaxImages: 8},
		Catalog: config.CatalogConfig{
			BaseURL:        upstream.URL,
			RequestTimeout: 5 * time.Second,
		},
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	client := catalog.NewClient(cfg.Catalog, middleware.ContextTokenProvider{}, nil)
	store := forms.NewRedisStore(newFakeKV(), cfg.Form.SessionTTL)
	formsService := forms.NewService(store, client, cfg.Form, logg, nil)
	storefrontService := storefront.NewService(client, logg)

	router := NewRouter(cfg, logg, stubPinger{}, stubPinger{}, formsService, storefrontService, nil)
	return router, calls
}

func decodeData(t *testing.T, body io.Reader, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func TestHealthLive(t *testing.T) {
	router, _ := newTestStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "dev", w.Header().Get("X-Stitchfold-Env"))
}

func TestCreateProductFlow(t *testing.T) {
	router, calls := newTestStack(t)

	// Open a session.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/form-sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var session forms.Session
	decodeData(t, w.Body, &session)
	base := "/api/v1/form-sessions/" + session.ID.String()

	// Fill the blocking sections.
	updates := []string{
		`{"field":"name","value":"Linen Shirt"}`,
		`{"field":"category","value":"Shirts"}`,
		`{"field":"price","value":49.99}`,
		`{"field":"variants","value":[{"color":"White","sizes":[{"size":"M","sku":"ls-w-m","stock":3,"isAvailable":true}]}]}`,
	}
	for _, body := range updates {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, base+"/fields", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Attach one image.
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("images", "front.jpg")
	require.NoError(t, err)
	part.Write([]byte("jpegbytes"))
	require.NoError(t, writer.Close())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, base+"/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decodeData(t, w.Body, &session)
	require.Len(t, session.Draft.ImagePreviews, 1)

	// The preview URI serves the bytes back.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, session.Draft.ImagePreviews[0], nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "jpegbytes", w.Body.String())

	// Step forward, then submit with the caller's token.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, base+"/next", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, base+"/submit", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var product catalog.Product
	decodeData(t, w.Body, &product)
	require.Equal(t, "prod-1", product.ID)

	// Exactly one upstream POST, carrying the forwarded token.
	posts := 0
	for _, call := range *calls {
		if call.method == http.MethodPost {
			posts++
			require.Equal(t, "/products", call.path)
			require.Equal(t, "Bearer admin-token", call.auth)
		}
	}
	require.Equal(t, 1, posts)

	// The session is gone after a successful submit.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, base, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNextOnEmptyDraftReturnsValidationError(t *testing.T) {
	router, _ := newTestStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/form-sessions", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var session forms.Session
	decodeData(t, w.Body, &session)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/form-sessions/"+session.ID.String()+"/next", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	require.Equal(t, "Product name is required", envelope.Error.Message)
}

func TestDeleteProductRequiresConfirm(t *testing.T) {
	router, calls := newTestStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/prod-1", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, *calls, "unconfirmed delete must not reach the catalog")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/products/prod-1?confirm=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *calls, 1)
	require.Equal(t, http.MethodDelete, (*calls)[0].method)
	require.Equal(t, "/products/prod-1", (*calls)[0].path)
}

func TestListProductsPassesFilters(t *testing.T) {
	router, calls := newTestStack(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products?gender=women", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *calls, 1)
	require.Equal(t, "/products", (*calls)[0].path)
}
