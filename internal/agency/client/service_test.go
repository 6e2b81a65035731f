// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package client

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/dberr"
	"github.com/atelia-app/atelia/pkg/pointer"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	clients []*Client
}

func (f *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Client, int, error) {
	var matches []*Client
	for _, c := range f.clients {
		if c.DeletedAt != nil {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(c.Nom), strings.ToLower(filter.Query)) {
			continue
		}
		matches = append(matches, c)
	}

	total := len(matches)
	if offset >= len(matches) {
		return nil, total, nil
	}
	matches = matches[offset:]
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (f *fakeRepository) Get(_ context.Context, id string) (*Client, error) {
	for _, c := range f.clients {
		if c.ID == id && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, client *Client) error {
	for _, existing := range f.clients {
		if existing.Slug == client.Slug && existing.DeletedAt == nil {
			return apperr.Conflict("Slug already exists")
		}
	}
	f.clients = append(f.clients, client)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, client *Client) error {
	for i, existing := range f.clients {
		if existing.ID == client.ID && existing.DeletedAt == nil {
			client.Slug = existing.Slug
			f.clients[i] = client
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	for _, c := range f.clients {
		if c.ID == id && c.DeletedAt == nil {
			now := c.CreeLe
			c.DeletedAt = &now
			return nil
		}
	}
	return dberr.ErrNotFound
}

func TestService_Create(t *testing.T) {
	service := NewService(&fakeRepository{})

	client := &Client{Nom: "Cabinet Durand & Associés"}
	err := service.Create(context.Background(), client)
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "cabinet-durand-associ-s", client.Slug)
	assert.True(t, client.IsActive)
}

func TestService_Create_InvalidFields(t *testing.T) {
	service := NewService(&fakeRepository{})

	client := &Client{
		Nom:          "  ",
		ContactEmail: pointer.To("not-an-email"),
		SiteWeb:      pointer.To("ftp://wrong.example"),
	}
	err := service.Create(context.Background(), client)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, FieldNom)
	assert.Contains(t, fields, FieldContactEmail)
	assert.Contains(t, fields, FieldSiteWeb)
}

func TestService_Create_DuplicateSlug(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo)

	require.NoError(t, service.Create(context.Background(), &Client{Nom: "Nexa Conseil"}))

	err := service.Create(context.Background(), &Client{Nom: "Nexa Conseil"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestService_Update_KeepsSlug(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo)

	original := &Client{Nom: "Nexa Conseil"}
	require.NoError(t, service.Create(context.Background(), original))

	updated := &Client{Nom: "Nexa Conseil International", Secteur: pointer.To("Finance")}
	require.NoError(t, service.Update(context.Background(), original.ID, updated))

	stored, err := service.Get(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nexa Conseil International", stored.Nom)
	assert.Equal(t, "nexa-conseil", stored.Slug)
}

func TestService_Delete_HidesFromListAndGet(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo)

	client := &Client{Nom: "Nexa Conseil"}
	require.NoError(t, service.Create(context.Background(), client))
	require.NoError(t, service.Delete(context.Background(), client.ID))

	_, err := service.Get(context.Background(), client.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	clients, total, err := service.List(context.Background(), Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.Zero(t, total)
}

func TestService_List_Search(t *testing.T) {
	repo := &fakeRepository{}
	service := NewService(repo)

	require.NoError(t, service.Create(context.Background(), &Client{Nom: "Nexa Conseil"}))
	require.NoError(t, service.Create(context.Background(), &Client{Nom: "Atlas Banque"}))

	clients, total, err := service.List(context.Background(), Filter{Query: "nexa"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, clients, 1)
	assert.Equal(t, "Nexa Conseil", clients[0].Nom)
}
