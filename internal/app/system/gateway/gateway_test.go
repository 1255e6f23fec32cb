package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campus-council/clubs/internal/app/system/gateway"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"go.uber.org/zap"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// fakeGateway serves canned GraphQL responses and records the last request.
func fakeGateway(t *testing.T, respond func(capturedRequest) string) (*httptest.Server, *http.Header) {
	t.Helper()

	var lastHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastHeaders = r.Header.Clone()
		var req capturedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(req)))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastHeaders
}

func TestUpdateRole_OK(t *testing.T) {
	srv, headers := fakeGateway(t, func(req capturedRequest) string {
		roleInput, _ := req.Variables["roleInput"].(map[string]any)
		if roleInput["uid"] != "chess" || roleInput["role"] != "club" {
			t.Errorf("unexpected variables: %v", req.Variables)
		}
		if roleInput["interCommunicationSecret"] != "s3cret" {
			t.Errorf("secret not attached: %v", roleInput["interCommunicationSecret"])
		}
		return `{"data":{"updateRole":true}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if res := c.UpdateRole(context.Background(), "chess", "club"); res != gateway.OK {
		t.Errorf("result: got %v, want OK", res)
	}
	if (*headers).Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on outbound call")
	}
}

func TestUpdateRole_FalsyPayloadIsFailed(t *testing.T) {
	srv, _ := fakeGateway(t, func(capturedRequest) string {
		return `{"data":{"updateRole":false}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if res := c.UpdateRole(context.Background(), "chess", "club"); res != gateway.Failed {
		t.Errorf("result: got %v, want Failed", res)
	}
}

func TestUpdateRole_RemoteErrorIsFailed(t *testing.T) {
	srv, _ := fakeGateway(t, func(capturedRequest) string {
		return `{"errors":[{"message":"boom"}]}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if res := c.UpdateRole(context.Background(), "chess", "club"); res != gateway.Failed {
		t.Errorf("result: got %v, want Failed", res)
	}
}

func TestUpdateRole_DeadServerIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before calling

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if res := c.UpdateRole(context.Background(), "chess", "club"); res != gateway.Unreachable {
		t.Errorf("result: got %v, want Unreachable", res)
	}
}

func TestPost_ForwardsCookies(t *testing.T) {
	srv, headers := fakeGateway(t, func(capturedRequest) string {
		return `{"data":{"updateRole":true}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	ctx := identity.WithCookies(context.Background(), "session=abc123")
	c.UpdateRole(ctx, "chess", "club")

	if got := (*headers).Get("cookies"); got != "session=abc123" {
		t.Errorf("cookies header: got %q, want %q", got, "session=abc123")
	}
}

func TestUserProfile(t *testing.T) {
	srv, _ := fakeGateway(t, func(req capturedRequest) string {
		userInput, _ := req.Variables["userInput"].(map[string]any)
		if userInput["uid"] != "chess" {
			t.Errorf("uid: got %v, want chess", userInput["uid"])
		}
		return `{"data":{"userProfile":{"firstName":"Chess","lastName":"Club","email":"chess@clubs.iiit.ac.in","rollno":""}}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	p, res := c.UserProfile(context.Background(), "chess")
	if res != gateway.OK {
		t.Fatalf("result: got %v, want OK", res)
	}
	if p.Email != "chess@clubs.iiit.ac.in" {
		t.Errorf("email: got %q", p.Email)
	}
}

func TestUserProfile_NullProfileIsFailed(t *testing.T) {
	srv, _ := fakeGateway(t, func(capturedRequest) string {
		return `{"data":{"userProfile":null}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if _, res := c.UserProfile(context.Background(), "ghost"); res != gateway.Failed {
		t.Errorf("result: got %v, want Failed", res)
	}
}

func TestUpdateEventsCid(t *testing.T) {
	srv, _ := fakeGateway(t, func(req capturedRequest) string {
		if req.Variables["oldCid"] != "chess" || req.Variables["newCid"] != "shogi" {
			t.Errorf("variables: %v", req.Variables)
		}
		return `{"data":{"updateEventsCid":true}}`
	})

	c := gateway.New(srv.URL, "s3cret", zap.NewNop())
	if res := c.UpdateEventsCid(context.Background(), "chess", "shogi"); res != gateway.OK {
		t.Errorf("result: got %v, want OK", res)
	}
}
