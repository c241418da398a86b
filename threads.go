// Package threads is a client for the GraphQL API behind Instagram's Threads app.
//
// Every operation is a single form-encoded POST carrying a fixed document id
// and a JSON variables payload. Responses are decoded strictly into wire
// shapes and then projected into the public types of this package.
package threads

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/ruizlenato/threads-api/internal/config"
	"github.com/ruizlenato/threads-api/internal/logging"
	"github.com/ruizlenato/threads-api/internal/utils"
)

// Client is safe for concurrent use.
type Client struct {
	caller    *utils.FastHTTPCaller
	endpoint  string
	appID     string
	userAgent string
	docIDs    DocIDs
	logger    *slog.Logger
}

func New(opts ...Option) *Client {
	o := options{
		endpoint:  DefaultEndpoint,
		appID:     DefaultAppID,
		userAgent: DefaultUserAgent,
		docIDs:    DefaultDocIDs,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	caller := utils.NewFastHTTPCaller(o.userAgent, o.socks5Proxy)
	if o.httpClient != nil {
		caller = &utils.FastHTTPCaller{Client: o.httpClient}
	}

	return &Client{
		caller:    caller,
		endpoint:  o.endpoint,
		appID:     o.appID,
		userAgent: o.userAgent,
		docIDs:    o.docIDs,
		logger:    o.logger,
	}
}

// NewFromEnv builds a Client from the .env file, THREADS_* environment
// variables and the optional THREADS_CONFIG_FILE. It logs to stderr at LOG_LEVEL.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(logging.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	base := []Option{
		WithEndpoint(cfg.Endpoint),
		WithAppID(cfg.AppID),
		WithUserAgent(cfg.UserAgent),
		WithSocks5Proxy(cfg.Socks5Proxy),
		WithDocIDs(DocIDs(cfg.DocIDs)),
		WithLogger(logger),
	}

	return New(append(base, opts...)...), nil
}

// Profile returns a user's profile.
func (c *Client) Profile(ctx context.Context, userID string) (Profile, error) {
	resp, err := fetch[response[profileResponse]](ctx, c, c.docIDs.Profile, map[string]string{"userID": userID})
	if err != nil {
		return Profile{}, err
	}

	return newProfile(resp.Data.UserData.User), nil
}

// Posts returns a user's threads, in server order.
func (c *Client) Posts(ctx context.Context, userID string) ([]Thread, error) {
	resp, err := fetch[response[threadsResponse]](ctx, c, c.docIDs.Posts, map[string]string{"userID": userID})
	if err != nil {
		return nil, err
	}

	return newThreads(resp.Data.MediaData.Threads), nil
}

// Replies returns the threads a user replied in, in server order.
func (c *Client) Replies(ctx context.Context, userID string) ([]Thread, error) {
	resp, err := fetch[response[threadsResponse]](ctx, c, c.docIDs.Replies, map[string]string{"userID": userID})
	if err != nil {
		return nil, err
	}

	return newThreads(resp.Data.MediaData.Threads), nil
}

// Post returns a post's thread together with its reply threads.
func (c *Client) Post(ctx context.Context, postID string) (PostResponse, error) {
	// The backend wraps this payload in two data envelopes.
	resp, err := fetch[response[response[threadResponse]]](ctx, c, c.docIDs.Post, map[string]string{"postID": postID})
	if err != nil {
		return PostResponse{}, err
	}

	thread := resp.Data.Data
	return PostResponse{
		Post:    newThread(thread.ContainingThread),
		Replies: newThreads(thread.ReplyThreads),
	}, nil
}

// Likes returns the users who liked a post.
func (c *Client) Likes(ctx context.Context, postID string) ([]ProfileDetail, error) {
	resp, err := fetch[response[likersResponse]](ctx, c, c.docIDs.Likers, map[string]string{"mediaID": postID})
	if err != nil {
		return nil, err
	}

	return newProfileDetails(resp.Data.Likers.Users), nil
}

func fetch[T any](ctx context.Context, c *Client, docID string, variables map[string]string) (T, error) {
	var out T

	body, err := c.do(ctx, docID, variables)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{DocID: docID, Err: err}
	}

	return out, nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, docID string, variables map[string]string) ([]byte, error) {
	encoded, err := json.Marshal(variables)
	if err != nil {
		return nil, &TransportError{DocID: docID, Err: err}
	}

	start := time.Now()
	req, resp, err := c.caller.Call(ctx, c.endpoint, utils.RequestParams{
		Headers: map[string]string{
			"User-Agent":  c.userAgent,
			"X-Ig-App-Id": c.appID,
		},
		Form: map[string]string{
			"doc_id":    docID,
			"variables": string(encoded),
		},
	})
	if err != nil {
		return nil, &TransportError{DocID: docID, Err: err}
	}
	defer utils.ReleaseRequestResources(req, resp)

	status := resp.StatusCode()
	c.logger.LogAttrs(ctx, slog.LevelDebug, "graphql request",
		slog.String("doc_id", docID),
		slog.Int("status", status),
		slog.Duration("elapsed", time.Since(start)),
	)

	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		body := resp.Body()
		if len(body) > bodyExcerptSize {
			body = body[:bodyExcerptSize]
		}
		return nil, &HTTPStatusError{
			DocID:      docID,
			StatusCode: status,
			Body:       append([]byte(nil), body...),
		}
	}

	return append([]byte(nil), resp.Body()...), nil
}
