package middleware

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/goatos/goatos/internal/auth"
	"github.com/goatos/goatos/internal/models"
)

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	user := &models.User{
		ID:    "user-1",
		OrgID: "org-1",
		Email: "staff@test.example",
		Role:  models.RoleAdmin,
	}
	token, err := jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotCtx context.Context
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		gotCtx = ctx
		return nil, nil
	})
	interceptor := RequireAuth(jwtManager)(next)

	makeReq := func(header string) connect.AnyRequest {
		req := connect.NewRequest(&struct{}{})
		if header != "" {
			req.Header().Set("Authorization", header)
		}
		return req
	}

	t.Run("valid token populates context", func(t *testing.T) {
		if _, err := interceptor(context.Background(), makeReq("Bearer "+token)); err != nil {
			t.Fatalf("interceptor failed: %v", err)
		}
		if got := GetUserID(gotCtx); got != "user-1" {
			t.Errorf("user ID = %q, want user-1", got)
		}
		if got := GetOrgID(gotCtx); got != "org-1" {
			t.Errorf("org ID = %q, want org-1", got)
		}
		if got := GetRole(gotCtx); got != models.RoleAdmin {
			t.Errorf("role = %q, want admin", got)
		}
		if !IsAdmin(gotCtx) {
			t.Error("expected IsAdmin to be true")
		}
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := interceptor(context.Background(), makeReq(""))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		_, err := interceptor(context.Background(), makeReq("Token abc"))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want unauthenticated", connect.CodeOf(err))
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewJWTManager("other-secret", time.Hour)
		badToken, err := other.Generate(user)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		_, err = interceptor(context.Background(), makeReq("Bearer "+badToken))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want unauthenticated", connect.CodeOf(err))
		}
	})
}

func TestContextHelpersOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	if GetUserID(ctx) != "" || GetOrgID(ctx) != "" || GetEmail(ctx) != "" {
		t.Error("expected empty values on an unauthenticated context")
	}
	if IsAdmin(ctx) {
		t.Error("expected IsAdmin to be false")
	}
}
