// internal/app/system/gateway/gateway.go

// Package gateway is the outbound GraphQL client for the federation gateway,
// behind which the Users and Events sibling services live. Call sites decide
// failure policy from the explicit Result; the client itself never swallows.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result classifies one outbound call.
type Result int

const (
	// OK: the remote mutation ran and reported success.
	OK Result = iota
	// Failed: the remote answered but reported a GraphQL error or a falsy
	// payload.
	Failed
	// Unreachable: transport-level failure; the remote never answered.
	Unreachable
)

func (r Result) String() string {
	switch r {
	case OK:
		return "ok"
	case Failed:
		return "failed"
	default:
		return "unreachable"
	}
}

// Client talks GraphQL-over-HTTP to the gateway.
type Client struct {
	url    string
	secret string
	httpc  *http.Client
	log    *zap.Logger
}

// New builds a Client. secret is the inter-communication secret attached to
// privileged mutations.
func New(url, secret string, logger *zap.Logger) *Client {
	return &Client{
		url:    url,
		secret: secret,
		httpc:  &http.Client{Timeout: 10 * time.Second},
		log:    logger,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// post runs one GraphQL request, forwarding the caller's cookies header and
// tagging the hop with a correlation id.
func (c *Client) post(ctx context.Context, op string, req gqlRequest) (*gqlResponse, Result) {
	body, err := json.Marshal(req)
	if err != nil {
		c.log.Error("gateway: marshal request", zap.String("op", op), zap.Error(err))
		return nil, Unreachable
	}

	reqID := uuid.NewString()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, Unreachable
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if cookies := identity.CookiesFromContext(ctx); cookies != "" {
		httpReq.Header.Set("cookies", cookies)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		c.log.Warn("gateway: unreachable",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, Unreachable
	}
	defer resp.Body.Close()

	var out gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("gateway: bad response body",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, Unreachable
	}
	if len(out.Errors) > 0 {
		c.log.Warn("gateway: remote error",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.String("message", out.Errors[0].Message))
		return &out, Failed
	}
	return &out, OK
}

// UpdateRole asks the Users service to move uid into the given role category
// ("club", "public", ...). Used when a club is created, deleted, restarted,
// or changes cid.
func (c *Client) UpdateRole(ctx context.Context, uid, role string) Result {
	req := gqlRequest{
		Query: `mutation UpdateRole($roleInput: RoleInput!) {
			updateRole(roleInput: $roleInput)
		}`,
		Variables: map[string]any{
			"roleInput": map[string]any{
				"uid":                      uid,
				"role":                     role,
				"interCommunicationSecret": c.secret,
			},
		},
	}

	resp, res := c.post(ctx, "updateRole", req)
	if res != OK {
		return res
	}

	var data struct {
		UpdateRole bool `json:"updateRole"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || !data.UpdateRole {
		return Failed
	}
	return OK
}

// UpdateEventsCid asks the Events service to rename a club's cid across its
// event documents. The members side of the rename is local to this service.
func (c *Client) UpdateEventsCid(ctx context.Context, oldCid, newCid string) Result {
	req := gqlRequest{
		Query: `mutation UpdateEventsCid($oldCid: String!, $newCid: String!, $interCommunicationSecret: String) {
			updateEventsCid(oldCid: $oldCid, newCid: $newCid, interCommunicationSecret: $interCommunicationSecret)
		}`,
		Variables: map[string]any{
			"oldCid":                   oldCid,
			"newCid":                   newCid,
			"interCommunicationSecret": c.secret,
		},
	}

	resp, res := c.post(ctx, "updateEventsCid", req)
	if res != OK {
		return res
	}

	var data struct {
		UpdateEventsCid bool `json:"updateEventsCid"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || !data.UpdateEventsCid {
		return Failed
	}
	return OK
}

// UserProfile is the subset of the Users service profile this service needs.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	RollNo    string `json:"rollno"`
}

// UserProfile fetches a user's profile from the Users service. Returns
// (nil, Failed) when no such user exists; club creation uses that to reject
// cids without a backing account.
func (c *Client) UserProfile(ctx context.Context, uid string) (*UserProfile, Result) {
	req := gqlRequest{
		Query: `query GetUserProfile($userInput: UserInput!) {
			userProfile(userInput: $userInput) { firstName lastName email rollno }
		}`,
		Variables: map[string]any{
			"userInput": map[string]any{"uid": uid},
		},
	}

	resp, res := c.post(ctx, "userProfile", req)
	if res != OK {
		return nil, res
	}

	var data struct {
		UserProfile *UserProfile `json:"userProfile"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.UserProfile == nil {
		return nil, Failed
	}
	return data.UserProfile, OK
}
