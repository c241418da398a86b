package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"
)

type FastHTTPCaller struct {
	Client *fasthttp.Client
}

// NewFastHTTPCaller returns a caller whose client identifies itself as userAgent.
// An empty socks5Proxy dials directly.
func NewFastHTTPCaller(userAgent, socks5Proxy string) *FastHTTPCaller {
	client := &fasthttp.Client{
		Name:            userAgent,
		ReadBufferSize:  16 * 1024,
		MaxConnsPerHost: 1024,
	}
	if socks5Proxy != "" {
		client.Dial = fasthttpproxy.FasthttpSocksDialer(socks5Proxy)
	}

	return &FastHTTPCaller{Client: client}
}

type RequestParams struct {
	Headers map[string]string // Request headers
	Form    map[string]string // Form-encoded body
}

// Call POSTs params.Form to url. A context deadline becomes the request
// deadline. The caller owns the returned request and response and must hand
// them to ReleaseRequestResources.
func (a FastHTTPCaller) Call(ctx context.Context, url string, params RequestParams) (*fasthttp.Request, *fasthttp.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("request error: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()

	req.Header.SetMethod(fasthttp.MethodPost)
	for key, value := range params.Headers {
		req.Header.Set(key, value)
	}

	args := fasthttp.AcquireArgs()
	for key, value := range params.Form {
		args.Set(key, value)
	}
	req.SetBody(args.QueryString())
	fasthttp.ReleaseArgs(args)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetRequestURI(url)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = a.Client.DoDeadline(req, resp, deadline)
		if errors.Is(err, fasthttp.ErrTimeout) {
			err = fmt.Errorf("%w: %w", err, context.DeadlineExceeded)
		}
	} else {
		err = a.Client.Do(req, resp)
	}

	if err != nil {
		ReleaseRequestResources(req, resp)
		return nil, nil, fmt.Errorf("request error: %w", err)
	}

	return req, resp, nil
}

func ReleaseRequestResources(request *fasthttp.Request, response *fasthttp.Response) {
	if request != nil {
		defer fasthttp.ReleaseRequest(request)
	}
	if response != nil {
		defer fasthttp.ReleaseResponse(response)
	}
}
