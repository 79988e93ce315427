package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, body string, b64 bool) (int, map[string]any) {
	t.Helper()
	if b64 {
		body = base64.StdEncoding.EncodeToString([]byte(body))
	}
	resp, err := handler(context.Background(), events.LambdaFunctionURLRequest{Body: body, IsBase64Encoded: b64})
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return resp.StatusCode, out
}

func textRequest(t *testing.T, input, mode string) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"input": input, "mode": mode})
	require.NoError(t, err)
	return string(b)
}

func TestHandlerTextInput(t *testing.T) {
	code, out := invoke(t, textRequest(t, exampleAlmanac, "ranges"), false)
	require.Equal(t, 200, code, out)
	assert.Equal(t, float64(46), out["minimum"])
	assert.Equal(t, float64(27), out["seeds"])

	code, out = invoke(t, textRequest(t, exampleAlmanac, "seeds"), true)
	require.Equal(t, 200, code, out)
	assert.Equal(t, float64(35), out["minimum"])
}

func TestHandlerJSONAlmanac(t *testing.T) {
	code, out := invoke(t, `{"almanac": `+exampleAlmanacJSON+`}`, false)
	require.Equal(t, 200, code, out)
	assert.Equal(t, float64(46), out["minimum"])
	assert.Equal(t, "ranges", out["mode"])
}

func TestHandlerErrors(t *testing.T) {
	code, _ := invoke(t, `{"input": `, false)
	assert.Equal(t, 400, code)

	code, _ = invoke(t, `{}`, false)
	assert.Equal(t, 400, code)

	code, _ = invoke(t, textRequest(t, exampleAlmanac, "sideways"), false)
	assert.Equal(t, 400, code)

	code, out := invoke(t, textRequest(t, "seeds: 1 2\n", "ranges"), false)
	assert.Equal(t, 400, code)
	assert.Contains(t, out["error"], "map sections")

	empty := `{"almanac": {"seeds": [], "maps": [{},{},{},{},{},{},{}]}}`
	code, _ = invoke(t, empty, false)
	assert.Equal(t, 422, code)

	resp, err := handler(context.Background(), events.LambdaFunctionURLRequest{Body: "%%%", IsBase64Encoded: true})
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandlerOddSeedCount(t *testing.T) {
	odd := strings.Replace(exampleAlmanac, "seeds: 79 14 55 13", "seeds: 79 14 55", 1)

	code, out := invoke(t, textRequest(t, odd, "seeds"), false)
	require.Equal(t, 200, code, out)
	assert.Equal(t, float64(43), out["minimum"])

	code, out = invoke(t, textRequest(t, odd, "ranges"), false)
	assert.Equal(t, 400, code)
	assert.Contains(t, out["error"], "pairs")
}

func TestHandlerLogsDistinctRunIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := lambdaLogOutput
	lambdaLogOutput = &buf
	t.Cleanup(func() { lambdaLogOutput = prev })

	runID := regexp.MustCompile(`run_id=(\S+)`)
	var ids []string
	for i := 0; i < 2; i++ {
		buf.Reset()
		code, _ := invoke(t, textRequest(t, exampleAlmanac, "ranges"), false)
		require.Equal(t, 200, code)
		m := runID.FindStringSubmatch(buf.String())
		require.NotNil(t, m, buf.String())
		ids = append(ids, m[1])
	}
	assert.NotEqual(t, ids[0], ids[1])
}
