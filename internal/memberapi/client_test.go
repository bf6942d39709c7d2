package memberapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zerolog.Nop())
}

func TestClient_Login_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "a@b.com" || r.PostForm.Get("password") != "Passw0rd" {
			t.Fatalf("unexpected form: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token123"})
	})

	token, err := client.Login(context.Background(), "a@b.com", "Passw0rd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token: %s", token)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	_, err := client.Login(context.Background(), "a@b.com", "wrongpass1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unauthenticated 401, got %v", err)
	}
}

// A 401 means expired session only when the call carried a token;
// credential checks without one surface as ErrUnauthorized.
func TestClient_UnauthorizedSplitsOnToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.GetMember(context.Background(), "tok", "m1"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired with token, got %v", err)
	}
	if _, err := client.CreateMember(context.Background(), CreateMemberInput{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without token, got %v", err)
	}
	if errors.Is(ErrUnauthorized, ErrSessionExpired) {
		t.Fatalf("sentinels must stay distinct")
	}
}

func TestClient_ListMembers_AttachesBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		_ = json.NewEncoder(w).Encode([]Member{{ID: "m1", Email: "a@b.com", Roles: []string{"ADMIN"}}})
	})

	members, err := client.ListMembers(context.Background(), "tok")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 1 || members[0].ID != "m1" {
		t.Fatalf("unexpected members: %+v", members)
	}
}

func TestClient_CreateMember_NoToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("creation must be unauthenticated, got header %q", got)
		}
		var input CreateMemberInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Member{ID: "m9", Name: input.Name, Email: input.Email})
	})

	m, err := client.CreateMember(context.Background(), CreateMemberInput{
		Name: "Alice Example", Email: "alice@example.com", PhoneNumber: "9876543210", Password: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.ID != "m9" {
		t.Fatalf("unexpected member: %+v", m)
	}
}

func TestClient_UpdateMember_PatchesByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/members/m1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["email"]; ok {
			t.Fatalf("nil fields must be omitted: %v", body)
		}
		_ = json.NewEncoder(w).Encode(Member{ID: "m1", Name: body["name"].(string)})
	})

	name := "Alice Renamed"
	m, err := client.UpdateMember(context.Background(), "tok", "m1", UpdateMemberInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if m.Name != "Alice Renamed" {
		t.Fatalf("unexpected member: %+v", m)
	}
}

func TestClient_SetRoles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/members/m1/roles" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var roles []string
		if err := json.NewDecoder(r.Body).Decode(&roles); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Member{ID: "m1", Roles: roles})
	})

	m, err := client.SetRoles(context.Background(), "tok", "m1", []string{"ADMIN"})
	if err != nil {
		t.Fatalf("set roles: %v", err)
	}
	if len(m.Roles) != 1 || m.Roles[0] != "ADMIN" {
		t.Fatalf("unexpected roles: %v", m.Roles)
	}
}

func TestClient_DeleteMember_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/members/m1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteMember(context.Background(), "tok", "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrSessionExpired},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := client.GetMember(context.Background(), "tok", "m1")
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestClient_UnexpectedStatusCarriesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "database down"})
	})

	_, err := client.GetMember(context.Background(), "tok", "m1")
	if err == nil || !strings.Contains(err.Error(), "database down") || !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected envelope message in error, got %v", err)
	}
}
