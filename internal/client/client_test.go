package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"jeongsql/internal/messages"
	"jeongsql/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	RawURI      string
	Path        string
	ContentType string
	Body        string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(w http.ResponseWriter, r *http.Request, n int)
}

func newFakeBackend(t *testing.T, respond func(w http.ResponseWriter, r *http.Request, n int)) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{respond: respond}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{
			Method:      r.Method,
			RawURI:      r.RequestURI,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		n := len(fb.requests)
		fb.mu.Unlock()
		fb.respond(w, r, n)
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) calls() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.requests...)
}

func respondJSON(body string) func(http.ResponseWriter, *http.Request, int) {
	return func(w http.ResponseWriter, _ *http.Request, _ int) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestSubmitSelectScenario(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`[{"name":"Sara Brown"}]`))
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	got := c.Submit(context.Background(), "  select * from patient  ")

	want := "[\n  {\n    \"name\": \"Sara Brown\"\n  }\n]"
	assert.Equal(t, want, got)
	assert.Equal(t, want, pane.Text())

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/sql/select%20%2A%20from%20patient", calls[0].RawURI)
	assert.Equal(t, "/sql/select * from patient", calls[0].Path)
	assert.Empty(t, calls[0].Body)
}

func TestSubmitKeepsColumnOrder(t *testing.T) {
	_, srv := newFakeBackend(t, respondJSON(`[{"patientid":1,"name":"Sara Brown","dateofbirth":"1901-01-01"}]`))
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	c.Submit(context.Background(), "SELECT patientid, name, dateofbirth FROM patient")

	want := "[\n  {\n    \"patientid\": 1,\n    \"name\": \"Sara Brown\",\n    \"dateofbirth\": \"1901-01-01\"\n  }\n]"
	assert.Equal(t, want, pane.Text())
}

func TestSubmitReadEncodesSpecialCharacters(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`[]`))
	c := New(Config{BaseURL: srv.URL + "/"}, nil)

	raw := "SELECT * FROM patient WHERE name LIKE '%Br/own%' AND a+b = 1 & c"
	got := c.Submit(context.Background(), raw)
	assert.Equal(t, "[]", got)

	calls := fb.calls()
	require.Len(t, calls, 1)
	require.Contains(t, calls[0].RawURI, "/sql/")
	enc := calls[0].RawURI[len("/sql/"):]
	decoded, err := url.PathUnescape(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestSubmitInsertSendsJSONBody(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`{"message":"Query executed successfully","rows_affected":1}`))
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	raw := "\n insert into patient (name) values ('O\"Brien') \t"
	c.Submit(context.Background(), raw)

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/sql", calls[0].Path)
	assert.Equal(t, "application/json", calls[0].ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &body))
	assert.Equal(t, map[string]any{"query": `insert into patient (name) values ('O"Brien')`}, body)

	assert.JSONEq(t, `{"message":"Query executed successfully","rows_affected":1}`, pane.Text())
}

func TestSubmitInvalidQueryMakesNoCall(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`{}`))
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	for _, raw := range []string{"DELETE FROM patient", "", "   ", "drop table patient", "UPDATE patient SET name = 'x'"} {
		got := c.Submit(context.Background(), raw)
		assert.Equal(t, messages.InvalidQuery, got, raw)
		assert.Equal(t, messages.InvalidQuery, pane.Text(), raw)
	}
	assert.Empty(t, fb.calls())
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name    string
		respond func(http.ResponseWriter, *http.Request, int)
	}{
		{name: "non json body", respond: func(w http.ResponseWriter, _ *http.Request, _ int) {
			_, _ = io.WriteString(w, "<html>oops</html>")
		}},
		{name: "empty body", respond: func(w http.ResponseWriter, _ *http.Request, _ int) {
			w.WriteHeader(http.StatusNoContent)
		}},
		{name: "trailing garbage", respond: respondJSON(`{"a":1} extra`)},
		{name: "truncated", respond: respondJSON(`[{"a":1}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, srv := newFakeBackend(t, tc.respond)
			pane := &Pane{}
			c := New(Config{BaseURL: srv.URL}, pane)

			assert.Equal(t, messages.QueryError, c.Submit(context.Background(), "SELECT 1"))
			assert.Equal(t, messages.QueryError, pane.Text())
		})
	}
}

func TestSubmitTransportError(t *testing.T) {
	_, srv := newFakeBackend(t, respondJSON(`[]`))
	base := srv.URL
	srv.Close()

	pane := &Pane{}
	c := New(Config{BaseURL: base}, pane)
	assert.Equal(t, messages.QueryError, c.Submit(context.Background(), "INSERT INTO t VALUES (1)"))
	assert.Equal(t, messages.QueryError, pane.Text())
}

func TestSubmitRendersErrorStatusBody(t *testing.T) {
	_, srv := newFakeBackend(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"relation \"nope\" does not exist"}`)
	})
	c := New(Config{BaseURL: srv.URL}, nil)

	got := c.Submit(context.Background(), "select * from nope")
	assert.JSONEq(t, `{"error":"relation \"nope\" does not exist"}`, got)
}

func TestDispatchErrors(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:0"}, nil)

	_, err := c.Dispatch(context.Background(), "DELETE FROM patient")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = c.Dispatch(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, ErrQueryExecution)
	assert.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestDispatchCancelledContext(t *testing.T) {
	_, srv := newFakeBackend(t, respondJSON(`[]`))
	c := New(Config{BaseURL: srv.URL}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Dispatch(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrQueryExecution)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitPreservesNumbers(t *testing.T) {
	_, srv := newFakeBackend(t, respondJSON(`{"big":12345678901234567890,"f":1.50,"html":"<a>&"}`))
	c := New(Config{BaseURL: srv.URL}, nil)

	got := c.Submit(context.Background(), "select 1")
	assert.Contains(t, got, "12345678901234567890")
	assert.Contains(t, got, "1.50")
	assert.Contains(t, got, `"<a>&"`)
}

func TestSeedClientMode(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`{"message":"ok"}`))
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	assert.Equal(t, messages.InsertSuccess, c.Seed(context.Background()))
	assert.Equal(t, messages.InsertSuccess, pane.Text())

	calls := fb.calls()
	require.Len(t, calls, len(model.DummyPatientInserts))
	for i, call := range calls {
		assert.Equal(t, http.MethodPost, call.Method)
		assert.Equal(t, "/insert-dummy", call.Path)
		assert.Equal(t, "application/json", call.ContentType)

		var req model.QueryRequest
		require.NoError(t, json.Unmarshal([]byte(call.Body), &req))
		assert.Equal(t, model.DummyPatientInserts[i], req.Query)
	}
}

func TestSeedServerMode(t *testing.T) {
	fb, srv := newFakeBackend(t, respondJSON(`{"message":"ok"}`))
	c := New(Config{BaseURL: srv.URL, SeedMode: SeedServer}, nil)

	assert.Equal(t, messages.InsertSuccess, c.Seed(context.Background()))

	calls := fb.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/insert-dummy", calls[0].Path)
	assert.Empty(t, calls[0].Body)
}

func TestSeedMidSequenceFailure(t *testing.T) {
	var hijackErr error
	fb, srv := newFakeBackend(t, func(w http.ResponseWriter, _ *http.Request, n int) {
		if n == 3 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				hijackErr = errors.New("response writer cannot hijack")
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				hijackErr = err
				return
			}
			_ = conn.Close()
			return
		}
		respondJSON(`{"message":"ok"}`)(w, nil, n)
	})
	pane := &Pane{}
	c := New(Config{BaseURL: srv.URL}, pane)

	assert.Equal(t, messages.NetworkError, c.Seed(context.Background()))
	require.NoError(t, hijackErr)
	assert.Equal(t, messages.NetworkError, pane.Text())
	assert.Len(t, fb.calls(), 3)
}

func TestSeedNonJSONResponseFails(t *testing.T) {
	_, srv := newFakeBackend(t, func(w http.ResponseWriter, _ *http.Request, _ int) {
		_, _ = io.WriteString(w, "not json")
	})
	c := New(Config{BaseURL: srv.URL, SeedMode: SeedServer}, nil)
	assert.Equal(t, messages.NetworkError, c.Seed(context.Background()))
}

func TestParseSeedMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SeedMode
		wantErr bool
	}{
		{in: "", want: SeedClient},
		{in: "client", want: SeedClient},
		{in: " Server ", want: SeedServer},
		{in: "both", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseSeedMode(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) SeedMode {
	t.Helper()
	m, err := ParseSeedMode(s)
	require.NoError(t, err)
	return m
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, messages.InvalidQuery, MessageFor(ErrInvalidQuery))
	assert.Equal(t, messages.QueryError, MessageFor(ErrQueryExecution))
	assert.Equal(t, messages.NetworkError, MessageFor(ErrNetwork))
	assert.Equal(t, messages.QueryError, MessageFor(errors.New("something else")))
}
