package graphfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential struct {
	token string
	err   error
}

func (c staticCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c.err != nil {
		return azcore.AccessToken{}, c.err
	}
	return azcore.AccessToken{Token: c.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(staticCredential{token: "test-token"},
		WithBaseURL(server.URL),
		WithUserAgent("dossier-test"))
	return client, server
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth, gotUA string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(Site{ID: "site-1"})
	}))
	defer server.Close()

	_, err := client.ResolveSiteByPath(context.Background(), "host.example:/sites/essais")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "dossier-test", gotUA)
}

func TestClientTokenFailureShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when the token cannot be acquired")
	}))
	defer server.Close()

	client := NewClient(staticCredential{err: fmt.Errorf("no token")}, WithBaseURL(server.URL))
	_, err := client.ResolveSiteByPath(context.Background(), "host.example:/sites/essais")
	assert.ErrorContains(t, err, "failed to acquire token")
}

func TestResolveSiteByPath(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/host.example:/sites/essais", r.URL.Path)
		json.NewEncoder(w).Encode(Site{ID: "site-1", DisplayName: "Essais"})
	}))
	defer server.Close()

	site, err := client.ResolveSiteByPath(context.Background(), "host.example:/sites/essais")
	require.NoError(t, err)
	assert.Equal(t, "site-1", site.ID)
	assert.Equal(t, "Essais", site.DisplayName)
}

func TestListSiteDrives(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/drives", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"value": []Drive{{ID: "drive-1", Name: "Documents"}},
		})
	}))
	defer server.Close()

	drives, err := client.ListSiteDrives(context.Background(), "site-1")
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, "drive-1", drives[0].ID)
}

func TestGetItemByPathEscapesSegments(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drives/drive-1/root:/1-Essais/0-Documents/PVEA-Standards", r.URL.Path)
		json.NewEncoder(w).Encode(Item{ID: "item-1", Name: "PVEA-Standards", Folder: &FolderFacet{}})
	}))
	defer server.Close()

	item, err := client.GetItemByPath(context.Background(), "drive-1", "1-Essais/0-Documents/PVEA-Standards")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.True(t, item.IsFolder())
}

func TestListChildrenFollowsPagination(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/drives/drive-1/items/folder-1/children", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"value":           []Item{{ID: "a"}, {ID: "b"}},
			"@odata.nextLink": server.URL + "/page2",
		})
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"value": []Item{{ID: "c"}},
		})
	})

	client, srv := newTestClient(mux)
	server = srv
	defer server.Close()

	items, err := client.ListChildren(context.Background(), "drive-1", "folder-1")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "c", items[2].ID)
}

func TestDownloadAndDownloadAs(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.RawQuery {
		case "":
			w.Write([]byte("raw-bytes"))
		case "format=pdf":
			w.Write([]byte("pdf-bytes"))
		default:
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
	}))
	defer server.Close()

	data, err := client.Download(context.Background(), "drive-1", "item-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("raw-bytes"), data)

	rendered, err := client.DownloadAs(context.Background(), "drive-1", "item-1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), rendered)
}

func TestUpload(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/drives/drive-1/items/parent-1:/validation.json:/content", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte(`{"FP":true}`), body)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Item{ID: "item-9", Name: "validation.json"})
	}))
	defer server.Close()

	item, err := client.Upload(context.Background(), "drive-1", "parent-1", "validation.json",
		strings.NewReader(`{"FP":true}`))
	require.NoError(t, err)
	assert.Equal(t, "item-9", item.ID)
}

func TestDelete(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, client.Delete(context.Background(), "drive-1", "item-1"))
}

func TestMoveSendsParentReference(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var body struct {
			ParentReference ItemReference `json:"parentReference"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "archive-1", body.ParentReference.ID)

		json.NewEncoder(w).Encode(Item{ID: "item-1", Name: "AB12CD34_ProjetX_ClientY"})
	}))
	defer server.Close()

	item, err := client.Move(context.Background(), "drive-1", "item-1", "archive-1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
}

func TestCopyAcceptedAsynchronously(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			ParentReference ItemReference `json:"parentReference"`
			Name            string        `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pv-1", body.ParentReference.ID)
		assert.Equal(t, "PVEA_AB12CD34_ClientY.docx", body.Name)

		w.Header().Set("Location", "https://store.example/monitor/42")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	status, err := client.Copy(context.Background(), "drive-1", "tpl-1", "pv-1", "PVEA_AB12CD34_ClientY.docx")
	require.NoError(t, err)
	assert.True(t, status.Accepted)
	assert.Equal(t, "https://store.example/monitor/42", status.MonitorURL)
}

func TestCreateEditLink(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "edit", body["type"])
		assert.Equal(t, "organization", body["scope"])

		fmt.Fprint(w, `{"id":"link-1","link":{"type":"edit","scope":"organization","webUrl":"https://store.example/edit/item-1"}}`)
	}))
	defer server.Close()

	webURL, err := client.CreateEditLink(context.Background(), "drive-1", "item-1")
	require.NoError(t, err)
	assert.Equal(t, "https://store.example/edit/item-1", webURL)
}

func TestCreateEditLinkEmptyURL(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"link-1","link":{}}`)
	}))
	defer server.Close()

	_, err := client.CreateEditLink(context.Background(), "drive-1", "item-1")
	assert.ErrorContains(t, err, "empty web url")
}

func TestErrorEnvelopeMapping(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("request-id", "req-123")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"itemNotFound","message":"The resource could not be found."}}`)
	}))
	defer server.Close()

	_, err := client.GetItemByPath(context.Background(), "drive-1", "absent")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "itemNotFound", apiErr.Code)
	assert.Equal(t, "The resource could not be found.", apiErr.Message)
	assert.Equal(t, "req-123", apiErr.RequestID)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthError(err))
}

func TestErrorWithoutEnvelope(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "gateway says no")
	}))
	defer server.Close()

	_, err := client.Download(context.Background(), "drive-1", "item-1")
	require.Error(t, err)

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Empty(t, apiErr.Code)
	assert.Contains(t, apiErr.Body, "gateway says no")
	assert.True(t, IsAuthError(err))
}
