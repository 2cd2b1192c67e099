// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/auth"
	"github.com/olegiv/sitedeck/internal/cache"
	"github.com/olegiv/sitedeck/internal/i18n"
	"github.com/olegiv/sitedeck/internal/imaging"
	"github.com/olegiv/sitedeck/internal/middleware"
	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/service"
	"github.com/olegiv/sitedeck/internal/session"
	"github.com/olegiv/sitedeck/internal/storage"
	"github.com/olegiv/sitedeck/internal/testutil"
	"github.com/olegiv/sitedeck/internal/transfer"
	"github.com/olegiv/sitedeck/internal/version"
)

const (
	testPassword = "correct horse battery"
	testSecret   = "Zq8!handler-tests-session-secret-value"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(testutil.TestLogger()); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testEnv is the whole service wired on a temporary database and bucket.
type testEnv struct {
	db     *sql.DB
	fx     testutil.Fixture
	sites  *service.SiteService
	tokens *auth.TokenIssuer
	bucket *storage.LocalBucket
	router http.Handler
	token  string
	notes  *notes
}

// notes records content change notifications.
type notes struct {
	mu    sync.Mutex
	kinds []model.Kind
}

func (n *notes) SiteChanged(_ *model.Site, kind model.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *notes) list() []model.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Kind(nil), n.kinds...)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.TestDB(t)
	fx := testutil.NewFixture(t, db, "owner@example.com", "acme")
	testutil.SetPassword(t, db, fx.User.ID, testPassword)
	logger := testutil.TestLogger()

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	sites := service.NewSiteService(db, c, time.Minute, logger)
	events := service.NewEventService(db, logger)
	authSvc, err := service.NewAuthService(db, events, nil, logger)
	require.NoError(t, err)

	bucket, err := storage.NewLocalBucket(t.TempDir(), "sites", "http://localhost:8080")
	require.NoError(t, err)
	uploader := service.NewUploader(bucket, imaging.NewProcessor(model.MaxUploadSize, 2048))

	tokens := auth.NewTokenIssuer(testSecret, time.Hour)
	sm := session.New(db, true)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
	})
	t.Cleanup(lp.Stop)

	env := &testEnv{db: db, fx: fx, sites: sites, tokens: tokens, bucket: bucket, notes: &notes{}}
	sections := NewSectionsHandler(sites.Stores(), sites.HeroStore(), uploader, sites, events)
	sections.SetNotifier(env.notes)
	env.router = NewRouter(RouterConfig{
		Sessions:        sm,
		Tokens:          tokens,
		LoginProtection: lp,
		Security:        middleware.DefaultSecurityHeadersConfig(true),
		CSRF:            middleware.DefaultCSRFConfig([]byte(testSecret[:32]), true),
		Auth:            NewAuthHandler(authSvc, events, sm, tokens, lp),
		Site:            NewSiteHandler(sites),
		Sections:        sections,
		Events:          NewEventsHandler(events),
		Export:          NewExportHandler(transfer.NewExporter(bucket, logger), events),
		Storage:         NewStorageHandler(bucket),
		Health:          NewHealthHandler(db, bucket, bucket.Dir(), version.Info{Version: "test"}),
		Users:           authSvc,
		Sites:           sites,
	})

	env.token, _, err = tokens.Issue(fx.User.ID)
	require.NoError(t, err)
	return env
}

// request sends a request through the router. A non-empty token is sent
// as a Bearer credential.
func (e *testEnv) request(t *testing.T, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// api sends an authenticated JSON request as the fixture owner.
func (e *testEnv) api(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	return e.request(t, method, path, r, "application/json", e.token)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[middleware.APIError](t, rec).Error.Code
}

// multipartBody builds a multipart form with fields and an optional file.
func multipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
