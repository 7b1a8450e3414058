// Package firestore provides the remote mirror client: an HTTP client for
// the Firestore REST API that translates the record model to and from the
// typed document envelope and performs CRUD under a per-user collection.
//
// Remote structure:
//
//	users/{uid}                    folders + folderMeta on the root document
//	users/{uid}/prompts/{id}       one document per prompt, content inline
//
// The client holds no credentials; every call takes a bearer token.
package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/promptdeck/promptdeck/internal/domain"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
)

// DefaultBaseURL is the production Firestore REST endpoint.
const DefaultBaseURL = "https://firestore.googleapis.com/v1"

// Client talks to the Firestore REST API for one project.
type Client struct {
	baseURL    string
	projectID  string
	httpClient *http.Client
}

// NewClient creates a Firestore client for the given project.
func NewClient(projectID string) *Client {
	return NewClientWithBaseURL(DefaultBaseURL, projectID)
}

// NewClientWithBaseURL creates a client against a custom endpoint.
func NewClientWithBaseURL(baseURL, projectID string) *Client {
	return &Client{
		baseURL:   baseURL,
		projectID: projectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ProjectID returns the configured project id.
func (c *Client) ProjectID() string { return c.projectID }

// userDocURL is the URL of the user's root document.
func (c *Client) userDocURL(userID string) string {
	return fmt.Sprintf("%s/projects/%s/databases/(default)/documents/users/%s",
		c.baseURL, c.projectID, userID)
}

// do performs one authenticated request and returns the response body for
// 2xx statuses. notFoundOK turns a 404 into (nil, nil).
func (c *Client) do(ctx context.Context, method, url, token string, body any, notFoundOK bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemote, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && notFoundOK {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRemote, resp.StatusCode, data)
	}
	return data, nil
}

// FetchAllPrompts lists every prompt document under the user. A missing
// collection yields an empty slice; documents that do not parse into a
// record are dropped rather than aborting the fetch.
func (c *Client) FetchAllPrompts(ctx context.Context, userID, token string) ([]prompt.Prompt, error) {
	data, err := c.do(ctx, http.MethodGet, c.userDocURL(userID)+"/prompts", token, nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetch prompts: %w", err)
	}
	if data == nil {
		return []prompt.Prompt{}, nil
	}

	var list listResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse prompt list: %w", err)
	}

	prompts := make([]prompt.Prompt, 0, len(list.Documents))
	for _, doc := range list.Documents {
		if p, ok := promptFromDoc(doc); ok {
			prompts = append(prompts, p)
		}
	}
	return prompts, nil
}

// FetchMeta reads the folder state from the user's root document. A
// missing document yields the default meta, not an error.
func (c *Client) FetchMeta(ctx context.Context, userID, token string) (UserMeta, error) {
	data, err := c.do(ctx, http.MethodGet, c.userDocURL(userID), token, nil, true)
	if err != nil {
		return UserMeta{}, fmt.Errorf("fetch meta: %w", err)
	}
	if data == nil {
		return DefaultUserMeta(), nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return UserMeta{}, fmt.Errorf("parse meta: %w", err)
	}
	return metaFromDoc(doc), nil
}

// SavePrompt upserts one prompt document by id.
func (c *Client) SavePrompt(ctx context.Context, userID, token string, p prompt.Prompt) error {
	url := c.userDocURL(userID) + "/prompts/" + p.ID
	if _, err := c.do(ctx, http.MethodPatch, url, token, docFromPrompt(p), false); err != nil {
		return fmt.Errorf("save prompt: %w", err)
	}
	return nil
}

// DeletePrompt deletes one prompt document. A 404 counts as success.
func (c *Client) DeletePrompt(ctx context.Context, userID, token, id string) error {
	url := c.userDocURL(userID) + "/prompts/" + id
	if _, err := c.do(ctx, http.MethodDelete, url, token, nil, true); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

// SaveMeta writes the folder state onto the user's root document.
func (c *Client) SaveMeta(ctx context.Context, userID, token string, meta UserMeta) error {
	if _, err := c.do(ctx, http.MethodPatch, c.userDocURL(userID), token, docFromMeta(meta), false); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	return nil
}

// UploadAll mirrors the full local state: meta first, then every record in
// order. The first failure aborts the upload.
func (c *Client) UploadAll(ctx context.Context, userID, token string, ix prompt.Index, prompts []prompt.Prompt) error {
	meta := UserMeta{Folders: ix.Folders, FolderMeta: ix.FolderMeta}
	if err := c.SaveMeta(ctx, userID, token, meta); err != nil {
		return err
	}
	for _, p := range prompts {
		if err := c.SavePrompt(ctx, userID, token, p); err != nil {
			return err
		}
	}
	return nil
}

// DownloadAll fetches meta plus all records and reassembles an index.
// Remote-backed identities are always considered already seeded.
func (c *Client) DownloadAll(ctx context.Context, userID, token string) (prompt.Index, []prompt.Prompt, error) {
	meta, err := c.FetchMeta(ctx, userID, token)
	if err != nil {
		return prompt.Index{}, nil, err
	}
	prompts, err := c.FetchAllPrompts(ctx, userID, token)
	if err != nil {
		return prompt.Index{}, nil, err
	}

	metas := make([]prompt.Metadata, 0, len(prompts))
	for _, p := range prompts {
		metas = append(metas, p.Metadata)
	}
	ix := prompt.Index{
		Prompts:    metas,
		Folders:    meta.Folders,
		FolderMeta: meta.FolderMeta,
		Seeded:     true,
	}
	return ix, prompts, nil
}
