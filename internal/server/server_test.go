package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/segment"
)

type freqTable map[string]float64

func (f freqTable) Frequency(word, _ string) float64 {
	return f[strings.ToLower(word)]
}

func newTestServer(t *testing.T) (*Server, *[]string) {
	t.Helper()
	freqs := freqTable{"sos": 1e-5, "so": 1e-3, "is": 1e-3, "set": 1e-4, "ten": 1e-4}
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	seg := segment.New(segment.NewDictionary(words), freqs, "en", segment.DefaultPolicy())
	var lines []string
	s := &Server{
		Alphabet:  morse.Standard(),
		Segmenter: seg,
		Splitter:  segment.NewViterbi(seg),
		Logf: func(format string, args ...any) {
			lines = append(lines, format)
		},
	}
	return s, &lines
}

func postDecode(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/decode", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDecodeFindsBest(t *testing.T) {
	s, lines := newTestServer(t)
	code, err := morse.Standard().EncodeText("so is")
	require.NoError(t, err)

	for _, mode := range []string{"", "joint", "viterbi"} {
		body, err := json.Marshal(DecodeRequest{Code: code, Mode: mode})
		require.NoError(t, err)
		rec := postDecode(t, s.Router(), string(body))
		require.Equal(t, http.StatusOK, rec.Code, mode)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp DecodeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "found", resp.Outcome, mode)
		assert.Equal(t, "SO IS", resp.Best, mode)
		assert.Equal(t, []string{"SO", "IS"}, resp.Words, mode)
		assert.Equal(t, "SOIS", resp.Letters, mode)
		assert.InDelta(t, 1e-6, resp.Likelihood, 1e-18, mode)
		assert.False(t, resp.TimedOut)
	}
	assert.Len(t, *lines, 3)
}

func TestDecodeNoSegmentation(t *testing.T) {
	s, _ := newTestServer(t)
	rec := postDecode(t, s.Router(), `{"code":"-----"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no-segmentation", resp.Outcome)
	assert.Empty(t, resp.Best)
	assert.Empty(t, resp.Words)
	assert.Positive(t, resp.Candidates)
}

func TestDecodeRejectsBadRequests(t *testing.T) {
	s, _ := newTestServer(t)
	cases := map[string]string{
		"not json":     `{`,
		"missing code": `{}`,
		"bad mode":     `{"code":"...","mode":"guess"}`,
	}
	for name, body := range cases {
		rec := postDecode(t, s.Router(), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), name)
		assert.NotEmpty(t, resp.Error, name)
	}
}

func TestDecodeRejectsWorkerCounts(t *testing.T) {
	s, _ := newTestServer(t)
	code, err := morse.Standard().EncodeText("sos")
	require.NoError(t, err)
	for _, workers := range []int{-1, rank.MaxWorkers() + 1, 1 << 60} {
		body, err := json.Marshal(DecodeRequest{Code: code, Workers: workers})
		require.NoError(t, err)
		rec := postDecode(t, s.Router(), string(body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "workers %d", workers)
	}

	body, err := json.Marshal(DecodeRequest{Code: code, Workers: rank.MaxWorkers()})
	require.NoError(t, err)
	rec := postDecode(t, s.Router(), string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "found", resp.Outcome)
}

func TestDecodeSplitterUnavailable(t *testing.T) {
	s, _ := newTestServer(t)
	s.Splitter = nil
	rec := postDecode(t, s.Router(), `{"code":"...","mode":"viterbi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecodeTimeoutReturnsPartial(t *testing.T) {
	s, _ := newTestServer(t)
	s.Timeout = time.Nanosecond
	rec := postDecode(t, s.Router(), `{"code":"...---..."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.TimedOut)
}

func TestEncode(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/encode?text=sos", http.NoBody)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EncodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "...---...", resp.Code)
	assert.Equal(t, "sos", resp.Text)

	req = httptest.NewRequest(http.MethodGet, "/v1/encode", http.NoBody)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMethods(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "en", resp["lang"])
	assert.EqualValues(t, 5, resp["words"])

	req = httptest.NewRequest(http.MethodGet, "/v1/decode", http.NoBody)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
