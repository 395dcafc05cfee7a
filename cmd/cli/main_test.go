package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/memberledger/internal/adapter/http/dto"
	"github.com/iho/memberledger/internal/adapter/http/middleware"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "lo", truncate("longerstring", 2))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))

	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestHashPasswordCmd(t *testing.T) {
	orig := bcryptGenerate
	bcryptGenerate = func(p []byte, cost int) ([]byte, error) {
		return []byte("hashed-value"), nil
	}
	defer func() { bcryptGenerate = orig }()

	out, err := execute(t, "hash-password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "hashed-value", strings.TrimSpace(out))
}

func TestMemberIncrementCmd(t *testing.T) {
	var (
		gotPath string
		gotKey  string
		gotAuth string
		gotReq  dto.MutationRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get(middleware.IdempotencyKeyHeader)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(dto.MemberResponse{ID: 7, Balance: "112.50", Integral: 60})
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "--token", "tok",
		"member", "increment", "7", "--balance", "12.50", "--integral", "10", "--idempotency-key", "k1")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/members/7/increment", gotPath)
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.NotNil(t, gotReq.Balance)
	assert.True(t, decimal.RequireFromString("12.50").Equal(*gotReq.Balance), "balance %s", gotReq.Balance)
	require.NotNil(t, gotReq.Integral)
	assert.Equal(t, int64(10), *gotReq.Integral)
	assert.Contains(t, out, `"balance": "112.50"`)
}

func TestMemberDecrementCmd_OnlyIntegral(t *testing.T) {
	var gotReq dto.MutationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(dto.MemberResponse{ID: 7})
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "member", "decrement", "7", "--integral", "5")
	require.NoError(t, err)
	assert.Nil(t, gotReq.Balance)
	require.NotNil(t, gotReq.Integral)
	assert.Equal(t, int64(5), *gotReq.Integral)
}

func TestMemberMutationCmd_RejectsMalformedBalance(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "member", "increment", "7", "--balance", "12,50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --balance")
	assert.False(t, called)
}

func TestMemberMutationCmd_RequiresAmount(t *testing.T) {
	_, err := execute(t, "member", "increment", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--balance or --integral")
}

func TestMemberGetCmd_InvalidID(t *testing.T) {
	_, err := execute(t, "member", "get", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid member id")
}

func TestMemberGetCmd_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "not_found", Message: "member not found"})
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "member", "get", "99")

	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "member not found", apiErr.Message)
}

func TestMemberReconcileCmd_Inconsistent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/members/3/reconciliation", r.URL.Path)
		_ = json.NewEncoder(w).Encode(dto.ReconciliationResponse{MemberID: 3, Consistent: false})
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "member", "reconcile", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inconsistent")
	assert.Contains(t, out, `"member_id": 3`)
}

func TestMemberBillsCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "integral", r.URL.Query().Get("kind"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(dto.ListBillsResponse{
			Bills: []*dto.BillResponse{{ID: "01HBILL", Kind: "integral", Direction: "increment", Amount: "10", PreviousValue: "0", CurrentValue: "10"}},
			Total: 1,
		})
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "member", "bills", "1", "--kind", "integral", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "01HBILL")
	assert.Contains(t, out, "total: 1")
}

func TestDictCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/dicts":
			_ = json.NewEncoder(w).Encode(dto.ListDictsResponse{
				Dicts: []*dto.DictResponse{{ID: 1, Name: "Level", Sign: "level"}},
				Total: 1,
			})
		case "/api/v1/dicts/sign/level":
			_ = json.NewEncoder(w).Encode(dto.DictResponse{ID: 1, Name: "Level", Sign: "level"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "dict", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "level")

	out, err = execute(t, "--url", srv.URL, "dict", "get", "level")
	require.NoError(t, err)
	assert.Contains(t, out, `"sign": "level"`)
}

func TestLoginCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "admin@example.com" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "jwt-token"})
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "login", "--email", "admin@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", strings.TrimSpace(out))

	_, err = execute(t, "--url", srv.URL, "login", "--email", "x@example.com", "--password", "pw")
	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

type fakeMigrator struct {
	calls   []string
	version uint
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return nil }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return nil }
func (f *fakeMigrator) Version() (uint, bool, error) {
	f.calls = append(f.calls, "version")
	return f.version, false, nil
}

func TestMigrateCmd(t *testing.T) {
	fake := &fakeMigrator{version: 3}
	orig := newMigrator
	var gotURL string
	newMigrator = func(databaseURL, _ string) migrator {
		gotURL = databaseURL
		return fake
	}
	defer func() { newMigrator = orig }()

	_, err := execute(t, "migrate", "up", "--database-url", "postgres://db")
	require.NoError(t, err)
	_, err = execute(t, "migrate", "down", "--database-url", "postgres://db")
	require.NoError(t, err)
	out, err := execute(t, "migrate", "version", "--database-url", "postgres://db")
	require.NoError(t, err)

	assert.Equal(t, "postgres://db", gotURL)
	assert.Equal(t, []string{"up", "down", "version"}, fake.calls)
	assert.Contains(t, out, "version: 3")
}

func TestMigrateCmd_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
