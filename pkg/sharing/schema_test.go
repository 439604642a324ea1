package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasRequiredKeys(t *testing.T) {
	tests := []struct {
		name string
		data string
		keys []string
		want bool
	}{
		{"all present", `{"a":1,"b":null}`, []string{"a", "b"}, true},
		{"null value still counts", `{"token":null}`, []string{"token"}, true},
		{"missing key", `{"a":1}`, []string{"a", "b"}, false},
		{"not an object", `[1]`, []string{"a"}, false},
		{"null document", `null`, []string{"a"}, false},
		{"garbage", `{`, []string{"a"}, false},
		{"no keys required", `{}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasRequiredKeys([]byte(tt.data), tt.keys...))
		})
	}
}

func TestValidateToken(t *testing.T) {
	tok, ok := validateToken([]byte(`{"token":"abc"}`))
	require.True(t, ok)
	assert.Equal(t, "abc", tok.Token)

	_, ok = validateToken([]byte(`{"token":42}`))
	assert.False(t, ok)

	_, ok = validateToken([]byte(`{"token":null}`))
	assert.False(t, ok)

	_, ok = validateToken([]byte(`{"jwt":"abc"}`))
	assert.False(t, ok)

	_, ok = validateToken([]byte(`"abc"`))
	assert.False(t, ok)
}

func TestValidateShareResponse(t *testing.T) {
	const good = `{"message":"ok","notebook":{"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d","readable_id":"brave-otter-17"}}`
	resp, ok := validateShareResponse([]byte(good))
	require.True(t, ok)
	assert.Equal(t, "brave-otter-17", resp.Notebook.ReadableID)

	t.Run("null readable_id accepted", func(t *testing.T) {
		resp, ok := validateShareResponse([]byte(`{"message":"ok","notebook":{"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d","readable_id":null}}`))
		require.True(t, ok)
		assert.Empty(t, resp.Notebook.ReadableID)
	})

	t.Run("missing readable_id key rejected", func(t *testing.T) {
		_, ok := validateShareResponse([]byte(`{"message":"ok","notebook":{"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d"}}`))
		assert.False(t, ok)
	})

	t.Run("non-uuid id rejected", func(t *testing.T) {
		_, ok := validateShareResponse([]byte(`{"message":"ok","notebook":{"id":"not-a-uuid","readable_id":"x"}}`))
		assert.False(t, ok)
	})

	t.Run("missing notebook rejected", func(t *testing.T) {
		_, ok := validateShareResponse([]byte(`{"message":"ok"}`))
		assert.False(t, ok)
	})
}

func TestValidateNotebookResponse(t *testing.T) {
	const good = `{
		"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d",
		"domain_id":"k12.example.org",
		"readable_id":"brave-otter-17",
		"content":{"cells":[],"metadata":{},"nbformat":4,"nbformat_minor":5}
	}`
	resp, ok := validateNotebookResponse([]byte(good))
	require.True(t, ok)
	assert.Equal(t, "k12.example.org", resp.DomainID)
	require.NotNil(t, resp.Content)
	assert.NoError(t, resp.Content.Validate())

	t.Run("invalid content rejected", func(t *testing.T) {
		_, ok := validateNotebookResponse([]byte(`{
			"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d",
			"domain_id":"d","readable_id":"r",
			"content":{"cells":"oops"}
		}`))
		assert.False(t, ok)
	})

	t.Run("non-uuid id rejected", func(t *testing.T) {
		_, ok := validateNotebookResponse([]byte(`{
			"id":"nope","domain_id":"d","readable_id":"r",
			"content":{"cells":[],"metadata":{},"nbformat":4,"nbformat_minor":5}
		}`))
		assert.False(t, ok)
	})

	t.Run("missing domain_id rejected", func(t *testing.T) {
		_, ok := validateNotebookResponse([]byte(`{
			"id":"e3b0c442-98fc-4fc2-9c9f-8b6d6ed08a1d","readable_id":"r",
			"content":{"cells":[],"metadata":{},"nbformat":4,"nbformat_minor":5}
		}`))
		assert.False(t, ok)
	})
}
