// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/store"
	"github.com/olegiv/sitedeck/internal/testutil"
)

func (e *testEnv) addService(t *testing.T) model.ServiceItem {
	t.Helper()
	item, err := e.sites.Stores().Services.Create(context.Background(), e.fx.Sections[store.ServicesSections].ID)
	require.NoError(t, err)
	return item
}

func (e *testEnv) section(t *testing.T, kind model.Kind) map[string]any {
	t.Helper()
	rec := e.api(t, http.MethodGet, "/api/sections/"+string(kind), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[map[string]any](t, rec)
}

type sectionResult struct {
	Success      bool                             `json:"success"`
	Message      string                           `json:"message"`
	Updated      int                              `json:"updated"`
	FailedItemID int64                            `json:"failed_item_id"`
	Section      model.Section[model.ServiceItem] `json:"section"`
}

func TestSections_SubmitWritesTitleAndItems(t *testing.T) {
	env := newTestEnv(t)
	a, b := env.addService(t), env.addService(t)

	// Warm the snapshot cache so the write has to invalidate it.
	env.section(t, model.KindServices)

	rec := env.api(t, http.MethodPut, "/api/sections/services", map[string]any{
		"title": "  Our <b>services</b> ",
		"items": []model.ServiceItem{
			{ID: a.ID, Title: "Design", Description: "Logos"},
			{ID: b.ID, Title: "Build", Description: "Sites", ImageURL: "http://x/y.png"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[sectionResult](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, "Updated successfully", res.Message)
	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, "Our services", res.Section.Title)

	got := env.section(t, model.KindServices)
	assert.Equal(t, "Our services", got["title"])
	items := got["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Design", items[0].(map[string]any)["title"])
	assert.Equal(t, "http://x/y.png", items[1].(map[string]any)["image_url"])
	assert.Equal(t, []model.Kind{model.KindServices}, env.notes.list())
}

func TestSections_SubmitStopsAtFirstFailure(t *testing.T) {
	env := newTestEnv(t)
	a, b := env.addService(t), env.addService(t)

	rec := env.api(t, http.MethodPut, "/api/sections/services", map[string]any{
		"title": "Services",
		"items": []model.ServiceItem{
			{ID: a.ID, Title: "first"},
			{ID: 9999, Title: "foreign"},
			{ID: b.ID, Title: "never written"},
		},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decodeBody[sectionResult](t, rec)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, int64(9999), res.FailedItemID)
	assert.Equal(t, "Error updating service 9999: item not found", res.Message)

	items := env.section(t, model.KindServices)["items"].([]any)
	assert.Equal(t, "first", items[0].(map[string]any)["title"])
	assert.Equal(t, "", items[1].(map[string]any)["title"])
}

func TestSections_ItemOfAnotherSectionIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	// A portfolio item cannot be written through the services section.
	pf, err := env.sites.Stores().Portfolio.Create(context.Background(), env.fx.Sections[store.PortfolioSections].ID)
	require.NoError(t, err)

	rec := env.api(t, http.MethodPut, "/api/sections/services", map[string]any{
		"title": "Services",
		"items": []model.ServiceItem{{ID: pf.ID, Title: "hijack"}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	items := env.section(t, model.KindPortfolio)["items"].([]any)
	assert.Equal(t, "", items[0].(map[string]any)["title"])
}

func TestSections_Validation(t *testing.T) {
	env := newTestEnv(t)
	item, err := env.sites.Stores().Testimonials.Create(context.Background(), env.fx.Sections[store.TestimonialsSections].ID)
	require.NoError(t, err)

	rec := env.api(t, http.MethodPut, "/api/sections/testimonials", map[string]any{
		"title": "Clients",
		"items": []model.Testimonial{{ID: item.ID, Username: "ana", Stars: 9}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_failed", errorCode(t, rec))

	rec = env.api(t, http.MethodPut, "/api/sections/testimonials", map[string]any{
		"title": strings.Repeat("t", 201),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSections_AddAndDelete(t *testing.T) {
	env := newTestEnv(t)

	rec := env.api(t, http.MethodPost, "/api/sections/testimonials/items", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decodeBody[ItemResponse[model.Testimonial]](t, rec)
	assert.True(t, added.Success)
	assert.Equal(t, int64(5), added.Item.Stars)

	assert.Len(t, env.section(t, model.KindTestimonials)["items"], 1)

	path := "/api/sections/testimonials/items/" + strconv.FormatInt(added.Item.ID, 10)
	rec = env.api(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, decodeBody[map[string]any](t, rec)["section"].(map[string]any)["items"])

	rec = env.api(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeBody[map[string]any](t, rec)["success"].(bool))

	rec = env.api(t, http.MethodDelete, "/api/sections/testimonials/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSections_UnknownOrMissingKind(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.api(t, http.MethodGet, "/api/sections/blog", nil).Code)

	owner := testutil.CreateUser(t, env.db, "bare@example.com")
	testutil.CreateSite(t, env.db, owner, "bare")
	token, _, err := env.tokens.Issue(owner.ID)
	require.NoError(t, err)

	for _, kind := range model.Kinds {
		rec := env.request(t, http.MethodGet, "/api/sections/"+string(kind), nil, "", token)
		assert.Equal(t, http.StatusNotFound, rec.Code, kind)
		assert.Equal(t, "section_not_found", errorCode(t, rec))
	}
}

func TestSections_UploadImage(t *testing.T) {
	env := newTestEnv(t)
	member, err := env.sites.Stores().Team.Create(context.Background(), env.fx.Sections[store.Teams].ID)
	require.NoError(t, err)

	body, ct := multipartBody(t, nil, "Ana Souza.PNG", pngBytes(t))
	path := "/api/sections/team/items/" + strconv.FormatInt(member.ID, 10) + "/image"
	rec := env.request(t, http.MethodPost, path, body, ct, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[SectionResponse[model.Section[model.TeamMember]]](t, rec)
	assert.True(t, res.Success)
	assert.Equal(t, "Image updated successfully", res.Message)
	require.Len(t, res.Section.Items, 1)
	url := res.Section.Items[0].ImageURL
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/storage/v1/object/public/sites/acme/"), url)
	assert.True(t, strings.HasSuffix(url, "-Ana-Souza.png"), url)

	// The stored object is served back.
	objPath := strings.TrimPrefix(url, "http://localhost:8080")
	obj := env.request(t, http.MethodGet, objPath, nil, "", "")
	assert.Equal(t, http.StatusOK, obj.Code)
	assert.Equal(t, "image/png", obj.Header().Get("Content-Type"))
	assert.Contains(t, obj.Header().Get("Cache-Control"), "immutable")
}

func TestSections_UploadImageErrors(t *testing.T) {
	env := newTestEnv(t)
	member, err := env.sites.Stores().Team.Create(context.Background(), env.fx.Sections[store.Teams].ID)
	require.NoError(t, err)
	path := "/api/sections/team/items/" + strconv.FormatInt(member.ID, 10) + "/image"

	t.Run("not an image", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "notes.png", []byte("plain text"))
		rec := env.request(t, http.MethodPost, path, body, ct, env.token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, decodeBody[map[string]any](t, rec)["success"].(bool))
	})

	t.Run("missing file", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"x": "y"}, "", nil)
		rec := env.request(t, http.MethodPost, path, body, ct, env.token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_file", errorCode(t, rec))
	})

	t.Run("unknown item", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "a.png", pngBytes(t))
		rec := env.request(t, http.MethodPost, "/api/sections/team/items/9999/image", body, ct, env.token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("faqs have no images", func(t *testing.T) {
		body, ct := multipartBody(t, nil, "a.png", pngBytes(t))
		rec := env.request(t, http.MethodPost, "/api/sections/faqs/items/1/image", body, ct, env.token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no_images", errorCode(t, rec))
	})
}
