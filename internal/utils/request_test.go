package utils_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/ruizlenato/threads-api/internal/utils"
)

func newTestCaller(t *testing.T, handler fasthttp.RequestHandler) *utils.FastHTTPCaller {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go server.Serve(ln) //nolint:errcheck
	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	caller := utils.NewFastHTTPCaller("utils-test", "")
	caller.Client.Dial = func(string) (net.Conn, error) { return ln.Dial() }
	return caller
}

func TestCallPostEncodesForm(t *testing.T) {
	caller := newTestCaller(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, "POST", string(ctx.Method()))
		assert.Equal(t, "application/x-www-form-urlencoded", string(ctx.Request.Header.ContentType()))
		assert.Equal(t, "utils-test", string(ctx.UserAgent()))
		assert.Equal(t, "abc", string(ctx.Request.Header.Peek("X-Custom")))
		assert.Equal(t, "42", string(ctx.PostArgs().Peek("doc_id")))
		assert.Equal(t, `{"userID":"1 & 2"}`, string(ctx.PostArgs().Peek("variables")))
		ctx.SetBodyString("ok")
	})

	req, resp, err := caller.Call(context.Background(), "http://threads.test/api/graphql", utils.RequestParams{
		Headers: map[string]string{"X-Custom": "abc"},
		Form: map[string]string{
			"doc_id":    "42",
			"variables": `{"userID":"1 & 2"}`,
		},
	})
	require.NoError(t, err)
	defer utils.ReleaseRequestResources(req, resp)

	assert.Equal(t, fasthttp.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", string(resp.Body()))
}

func TestCallStopsOnCanceledContext(t *testing.T) {
	caller := newTestCaller(t, func(ctx *fasthttp.RequestCtx) {
		t.Error("request must not reach the server")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := caller.Call(ctx, "http://threads.test/", utils.RequestParams{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCallReportsDialFailure(t *testing.T) {
	caller := utils.NewFastHTTPCaller("utils-test", "")
	caller.Client.Dial = func(string) (net.Conn, error) {
		return nil, &net.OpError{Op: "dial", Net: "tcp", Err: net.UnknownNetworkError("test")}
	}

	_, _, err := caller.Call(context.Background(), "http://threads.test/", utils.RequestParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request error")
}

func TestCallReportsDeadlineExceeded(t *testing.T) {
	caller := newTestCaller(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(200 * time.Millisecond)
		ctx.SetBodyString("late")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req, resp, err := caller.Call(ctx, "http://threads.test/", utils.RequestParams{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, fasthttp.ErrTimeout)
	assert.Nil(t, req)
	assert.Nil(t, resp)
}

func TestNewFastHTTPCallerProxy(t *testing.T) {
	direct := utils.NewFastHTTPCaller("utils-test", "")
	assert.Nil(t, direct.Client.Dial)
	assert.Equal(t, "utils-test", direct.Client.Name)

	proxied := utils.NewFastHTTPCaller("utils-test", "socks5://127.0.0.1:1080")
	assert.NotNil(t, proxied.Client.Dial)
}
