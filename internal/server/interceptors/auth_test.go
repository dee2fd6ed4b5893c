package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"issuehub/internal/security"
)

func TestAuthUnary_PublicMethod_SkipsExtraction(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	publicMethods := map[string]bool{
		"/issuehub.IdentityService/Signin": true,
	}
	interceptor := AuthUnary(tokens, publicMethods)

	// A token is present, but public methods must not have identity attached.
	token, _, err := tokens.Issue("alice@example.com", "Alice Smith", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer " + token,
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := GetEmail(ctx); ok {
			t.Error("public method should not have identity attached")
		}
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/issuehub.IdentityService/Signin",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_NoToken_PassesThrough(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := context.Background()
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := GetEmail(ctx); ok {
			t.Error("anonymous request should not have identity attached")
		}
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/issuehub.IssueService/ListIssues",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor should not reject anonymous requests: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ValidToken_AttachesIdentity(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	token, _, err := tokens.Issue("alice@example.com", "Alice Smith", "ADMIN")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer " + token,
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		email, ok := GetEmail(ctx)
		if !ok || email != "alice@example.com" {
			t.Errorf("email = %q, ok = %v, want %q", email, ok, "alice@example.com")
		}
		fullName, ok := GetFullName(ctx)
		if !ok || fullName != "Alice Smith" {
			t.Errorf("full_name = %q, ok = %v, want %q", fullName, ok, "Alice Smith")
		}
		role, ok := GetRole(ctx)
		if !ok || role != "ADMIN" {
			t.Errorf("role = %q, ok = %v, want %q", role, ok, "ADMIN")
		}
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/issuehub.IssueService/ListIssues",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_InvalidToken_PassesThroughWithoutIdentity(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer invalid-token",
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := GetEmail(ctx); ok {
			t.Error("invalid token should not have identity attached")
		}
		return "success", nil
	}

	resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/issuehub.IssueService/ListIssues",
	}, handler)
	if err != nil {
		t.Fatalf("interceptor should not reject on an invalid token: %v", err)
	}
	if resp != "success" {
		t.Errorf("response = %v, want %q", resp, "success")
	}
}

func TestAuthUnary_ExpiredToken_PassesThroughWithoutIdentity(t *testing.T) {
	expired, err := security.NewTestTokenProviderTTL(-1)
	if err != nil {
		t.Fatalf("NewTestTokenProviderTTL: %v", err)
	}
	token, _, err := expired.Issue("alice@example.com", "Alice Smith", "USER")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	interceptor := AuthUnary(tokens, map[string]bool{})

	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer " + token,
	}))
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		if _, ok := GetEmail(ctx); ok {
			t.Error("expired token should not have identity attached")
		}
		return "success", nil
	}

	if _, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{
		FullMethod: "/issuehub.IssueService/ListIssues",
	}, handler); err != nil {
		t.Fatalf("interceptor should not reject on an expired token: %v", err)
	}
}

func TestExtractBearer_Valid(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Bearer token123",
	}))
	token := extractBearer(ctx)
	if token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}

func TestExtractBearer_CaseInsensitive(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "bearer token123",
	}))
	token := extractBearer(ctx)
	if token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}

func TestExtractBearer_Missing(t *testing.T) {
	ctx := context.Background()
	token := extractBearer(ctx)
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestExtractBearer_InvalidPrefix(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "Basic token123",
	}))
	token := extractBearer(ctx)
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestExtractBearer_Whitespace(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.New(map[string]string{
		"authorization": "  Bearer   token123  ",
	}))
	token := extractBearer(ctx)
	if token != "token123" {
		t.Errorf("token = %q, want %q", token, "token123")
	}
}
