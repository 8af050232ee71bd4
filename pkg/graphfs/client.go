package graphfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/rs/zerolog/log"
)

// TokenCredential yields bearer tokens for the file-store API. It is
// satisfied by the credential provider and by any azcore credential.
type TokenCredential interface {
	GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error)
}

// Client is a thin REST client for a Graph-style file-store API. It
// performs single round trips with no automatic retry; callers decide
// what a failure means for their operation.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	credential TokenCredential
}

// NewClient creates a new file-store client with the given options
func NewClient(credential TokenCredential, options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		credential: credential,
	}
}

// ResolveSiteByPath resolves a site by its canonical host-relative path,
// e.g. "contoso.sharepoint.com:/sites/essais".
func (c *Client) ResolveSiteByPath(ctx context.Context, hostPath string) (Site, error) {
	path := fmt.Sprintf("/sites/%s", hostPath)

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Site{}, fmt.Errorf("failed to resolve site: %w", err)
	}

	var site Site
	if err := c.handleResponse(resp, &site); err != nil {
		return Site{}, fmt.Errorf("failed to resolve site: %w", err)
	}

	return site, nil
}

// ListSiteDrives lists the document libraries of a site.
func (c *Client) ListSiteDrives(ctx context.Context, siteID string) ([]Drive, error) {
	path := fmt.Sprintf("/sites/%s/drives", url.PathEscape(siteID))

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list site drives: %w", err)
	}

	var result driveCollection
	if err := c.handleResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to list site drives: %w", err)
	}

	return result.Value, nil
}

// GetItemByPath resolves an item by its drive-root-relative path.
func (c *Client) GetItemByPath(ctx context.Context, driveID, itemPath string) (Item, error) {
	path := fmt.Sprintf("/drives/%s/root:/%s", url.PathEscape(driveID), escapePath(itemPath))

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get item by path: %w", err)
	}

	var item Item
	if err := c.handleResponse(resp, &item); err != nil {
		return Item{}, fmt.Errorf("failed to get item by path: %w", err)
	}

	return item, nil
}

// ListChildren lists the children of a folder, following pagination
// links until the listing is complete. Order is the remote listing
// order.
func (c *Client) ListChildren(ctx context.Context, driveID, itemID string) ([]Item, error) {
	path := fmt.Sprintf("/drives/%s/items/%s/children", url.PathEscape(driveID), url.PathEscape(itemID))

	var items []Item
	next := c.config.BaseURL + path

	for next != "" {
		resp, err := c.doRequestURL(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list children: %w", err)
		}

		var page itemCollection
		if err := c.handleResponse(resp, &page); err != nil {
			return nil, fmt.Errorf("failed to list children: %w", err)
		}

		items = append(items, page.Value...)
		next = page.NextLink
	}

	return items, nil
}

// Download fetches the raw content of a file.
func (c *Client) Download(ctx context.Context, driveID, itemID string) ([]byte, error) {
	path := fmt.Sprintf("/drives/%s/items/%s/content", url.PathEscape(driveID), url.PathEscape(itemID))
	return c.downloadPath(ctx, path)
}

// DownloadAs fetches the content of a file rendered in another format
// by the file store, e.g. format "pdf" for a Word document.
func (c *Client) DownloadAs(ctx context.Context, driveID, itemID, format string) ([]byte, error) {
	path := fmt.Sprintf("/drives/%s/items/%s/content?format=%s",
		url.PathEscape(driveID), url.PathEscape(itemID), url.QueryEscape(format))
	return c.downloadPath(ctx, path)
}

func (c *Client) downloadPath(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("failed to download content: %w", c.errorFromResponse(resp))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	return data, nil
}

// Upload writes file content under a parent folder, creating or
// replacing the named child.
func (c *Client) Upload(ctx context.Context, driveID, parentID, name string, content io.Reader) (Item, error) {
	path := fmt.Sprintf("/drives/%s/items/%s:/%s:/content",
		url.PathEscape(driveID), url.PathEscape(parentID), url.PathEscape(name))

	data, err := io.ReadAll(content)
	if err != nil {
		return Item{}, fmt.Errorf("failed to read upload content: %w", err)
	}

	resp, err := c.doRequestRaw(ctx, http.MethodPut, c.config.BaseURL+path, data, "application/octet-stream")
	if err != nil {
		return Item{}, fmt.Errorf("failed to upload content: %w", err)
	}

	var item Item
	if err := c.handleResponse(resp, &item); err != nil {
		return Item{}, fmt.Errorf("failed to upload content: %w", err)
	}

	return item, nil
}

// Delete removes an item by id.
func (c *Client) Delete(ctx context.Context, driveID, itemID string) error {
	path := fmt.Sprintf("/drives/%s/items/%s", url.PathEscape(driveID), url.PathEscape(itemID))

	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to delete item: %w", c.errorFromResponse(resp))
	}

	return nil
}

// Move re-parents an item under another folder of the same drive by
// updating its parent reference.
func (c *Client) Move(ctx context.Context, driveID, itemID, newParentID string) (Item, error) {
	path := fmt.Sprintf("/drives/%s/items/%s", url.PathEscape(driveID), url.PathEscape(itemID))

	body := map[string]any{
		"parentReference": ItemReference{ID: newParentID},
	}

	resp, err := c.doRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return Item{}, fmt.Errorf("failed to move item: %w", err)
	}

	var item Item
	if err := c.handleResponse(resp, &item); err != nil {
		return Item{}, fmt.Errorf("failed to move item: %w", err)
	}

	return item, nil
}

// Copy asks the file store to copy an item into a target folder under a
// new name. The store performs the copy asynchronously; a 202 response
// means the copy was accepted, not that it finished.
func (c *Client) Copy(ctx context.Context, driveID, itemID, targetParentID, newName string) (CopyStatus, error) {
	path := fmt.Sprintf("/drives/%s/items/%s/copy", url.PathEscape(driveID), url.PathEscape(itemID))

	body := map[string]any{
		"parentReference": ItemReference{DriveID: driveID, ID: targetParentID},
		"name":            newName,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return CopyStatus{}, fmt.Errorf("failed to copy item: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return CopyStatus{}, fmt.Errorf("failed to copy item: %w", c.errorFromResponse(resp))
	}

	status := CopyStatus{
		Accepted:   resp.StatusCode == http.StatusAccepted,
		MonitorURL: resp.Header.Get("Location"),
	}

	if status.MonitorURL != "" {
		log.Debug().Str("monitor_url", status.MonitorURL).Msg("Copy accepted by file store")
	}

	return status, nil
}

// CreateEditLink creates an organization-scoped web link through which
// the item can be edited in the collaborative web editor.
func (c *Client) CreateEditLink(ctx context.Context, driveID, itemID string) (string, error) {
	path := fmt.Sprintf("/drives/%s/items/%s/createLink", url.PathEscape(driveID), url.PathEscape(itemID))

	body := map[string]string{
		"type":  "edit",
		"scope": "organization",
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", fmt.Errorf("failed to create edit link: %w", err)
	}

	var link SharingLink
	if err := c.handleResponse(resp, &link); err != nil {
		return "", fmt.Errorf("failed to create edit link: %w", err)
	}

	if link.Link.WebURL == "" {
		return "", fmt.Errorf("failed to create edit link: empty web url in response")
	}

	return link.Link.WebURL, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return c.doRequestURL(ctx, method, c.config.BaseURL+path, body)
}

func (c *Client) doRequestURL(ctx context.Context, method, fullURL string, body any) (*http.Response, error) {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	return c.doRequestRaw(ctx, method, fullURL, bodyBytes, "application/json")
}

func (c *Client) doRequestRaw(ctx context.Context, method, fullURL string, body []byte, contentType string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.config.DefaultHeaders {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: c.config.Scopes})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// handleResponse processes the HTTP response and unmarshals JSON if successful
func (c *Client) handleResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// errorFromResponse reads the response body and builds a typed error
// from the Graph-style error envelope when present.
func (c *Client) errorFromResponse(resp *http.Response) *Error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
		Body:       string(body),
		RequestID:  resp.Header.Get("request-id"),
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}

	return apiErr
}

// escapePath escapes each segment of a drive-relative path while
// keeping the separators intact.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
