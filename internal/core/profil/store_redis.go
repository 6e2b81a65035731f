// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/constants"
)

// draftTTL is how long an untouched draft survives. Every save refreshes it,
// so the clock only runs on abandoned compositions.
const draftTTL = 7 * 24 * time.Hour

// RedisDraftRepository implements [DraftRepository] on top of go-redis.
//
// Drafts are stored as JSON blobs under a prefixed key with a TTL. There is
// no multi-editor contract: concurrent saves are last-write-wins.
type RedisDraftRepository struct {
	client *redis.Client
}

// NewRedisDraftRepository returns a fully wired redis implementation.
func NewRedisDraftRepository(client *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{client: client}
}

// draftKey builds the namespaced storage key for a draft id.
func draftKey(id string) string {
	return constants.RedisPrefixProfilDraft + id
}

/*
Save upserts a draft and refreshes its TTL.

Parameters:
  - context: context.Context
  - draft: *Draft

Returns:
  - error: Serialization or storage failures
*/
func (repository *RedisDraftRepository) Save(context context.Context, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := repository.client.Set(context, draftKey(draft.ID), payload, draftTTL).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

/*
Get retrieves a draft by id.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)

Returns:
  - *Draft: Hydrated draft state
  - error: apperr.NotFound when absent or expired
*/
func (repository *RedisDraftRepository) Get(context context.Context, id string) (*Draft, error) {
	payload, err := repository.client.Get(context, draftKey(id)).Bytes()
	if err != nil {
		// Expired and never-existed drafts look identical to callers.
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Draft")
		}
		return nil, apperr.Internal(err)
	}

	draft := &Draft{}
	if err := json.Unmarshal(payload, draft); err != nil {
		return nil, apperr.Internal(err)
	}
	return draft, nil
}

/*
Delete removes a draft.

Description: Deleting an absent draft is a no-op, which makes publish
idempotent on the cleanup side.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)

Returns:
  - error: Storage failures only
*/
func (repository *RedisDraftRepository) Delete(context context.Context, id string) error {
	if err := repository.client.Del(context, draftKey(id)).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
