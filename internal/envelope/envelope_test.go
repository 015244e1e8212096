package envelope

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("direct invoke payload is used as-is", func(t *testing.T) {
		payload, err := Parse([]byte(`{"prompt":"a kitten"}`))
		require.NoError(t, err)
		assert.Equal(t, "a kitten", payload["prompt"])
	})

	t.Run("non-object payload becomes an empty mapping", func(t *testing.T) {
		for _, raw := range []string{`"hello"`, `[1,2]`, `42`, `null`, `not json`} {
			payload, err := Parse([]byte(raw))
			require.NoError(t, err, raw)
			assert.Empty(t, payload, raw)
		}
	})

	t.Run("json string body parses to the same mapping", func(t *testing.T) {
		payload, err := Parse([]byte(`{"body":"{\"prompt\":\"a kitten\"}"}`))
		require.NoError(t, err)
		assert.Equal(t, "a kitten", payload["prompt"])
	})

	t.Run("base64 body decodes then parses", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte(`{"prompt":"a kitten"}`))
		payload, err := Parse([]byte(`{"body":"` + encoded + `","isBase64Encoded":true}`))
		require.NoError(t, err)
		assert.Equal(t, "a kitten", payload["prompt"])
	})

	t.Run("invalid base64 body", func(t *testing.T) {
		notUTF8 := base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe})
		for _, body := range []string{"!!!not-base64!!!", notUTF8} {
			_, err := Parse([]byte(`{"body":"` + body + `","isBase64Encoded":true}`))
			var cerr *ClientError
			require.ErrorAs(t, err, &cerr, body)
			assert.Equal(t, "Invalid base64-encoded body", cerr.Message, body)
		}
	})

	t.Run("invalid json in body", func(t *testing.T) {
		_, err := Parse([]byte(`{"body":"{not json"}`))
		var cerr *ClientError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "Invalid JSON in request body", cerr.Message)
	})

	t.Run("body already an object", func(t *testing.T) {
		payload, err := Parse([]byte(`{"body":{"prompt":"a kitten"}}`))
		require.NoError(t, err)
		assert.Equal(t, "a kitten", payload["prompt"])
	})

	t.Run("unsupported body format", func(t *testing.T) {
		for _, raw := range []string{`{"body":42}`, `{"body":[1]}`, `{"body":null}`} {
			_, err := Parse([]byte(raw))
			var cerr *ClientError
			require.ErrorAs(t, err, &cerr, raw)
			assert.Equal(t, "Unsupported body format", cerr.Message, raw)
		}
	})

	t.Run("isBase64Encoded false leaves body alone", func(t *testing.T) {
		payload, err := Parse([]byte(`{"body":"{\"prompt\":\"x\"}","isBase64Encoded":false}`))
		require.NoError(t, err)
		assert.Equal(t, "x", payload["prompt"])
	})
}

func TestPrompt(t *testing.T) {
	t.Run("valid prompt is trimmed", func(t *testing.T) {
		prompt, err := Prompt(map[string]any{"prompt": "  a kitten  "})
		require.NoError(t, err)
		assert.Equal(t, "a kitten", prompt)
	})

	t.Run("missing, empty, whitespace, or non-string", func(t *testing.T) {
		for name, payload := range map[string]map[string]any{
			"absent":     {},
			"empty":      {"prompt": ""},
			"whitespace": {"prompt": "   \t\n"},
			"non-string": {"prompt": 42.0},
		} {
			_, err := Prompt(payload)
			var cerr *ClientError
			require.ErrorAs(t, err, &cerr, name)
			assert.Equal(t, "Missing 'prompt'", cerr.Message, name)
		}
	})

	t.Run("800 chars accepted, 801 rejected", func(t *testing.T) {
		prompt, err := Prompt(map[string]any{"prompt": strings.Repeat("a", 800)})
		require.NoError(t, err)
		assert.Len(t, prompt, 800)

		_, err = Prompt(map[string]any{"prompt": strings.Repeat("a", 801)})
		var cerr *ClientError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "Prompt too long (max 800 chars)", cerr.Message)
	})

	t.Run("length is counted after trimming", func(t *testing.T) {
		prompt, err := Prompt(map[string]any{"prompt": "  " + strings.Repeat("a", 800) + "  "})
		require.NoError(t, err)
		assert.Len(t, prompt, 800)
	})
}
