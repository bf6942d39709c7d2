package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

type stubMemberService struct {
	registerFn func(ctx context.Context, input ports.CreateMemberInput) (*domain.Member, error)
	listFn     func(ctx context.Context) ([]domain.Member, error)
	getFn      func(ctx context.Context, id string) (*domain.Member, error)
	updateFn   func(ctx context.Context, id string, input ports.UpdateMemberInput) (*domain.Member, error)
	setRolesFn func(ctx context.Context, id string, roles []string) (*domain.Member, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubMemberService) Register(ctx context.Context, input ports.CreateMemberInput) (*domain.Member, error) {
	return s.registerFn(ctx, input)
}

func (s *stubMemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.listFn(ctx)
}

func (s *stubMemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	return s.getFn(ctx, id)
}

func (s *stubMemberService) Update(ctx context.Context, id string, input ports.UpdateMemberInput) (*domain.Member, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubMemberService) SetRoles(ctx context.Context, id string, roles []string) (*domain.Member, error) {
	return s.setRolesFn(ctx, id, roles)
}

func (s *stubMemberService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestMemberHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		registerFn: func(ctx context.Context, input ports.CreateMemberInput) (*domain.Member, error) {
			if input.Email != "alice@example.com" {
				t.Fatalf("unexpected email: %s", input.Email)
			}
			return &domain.Member{
				ID:          "m1",
				Name:        input.Name,
				Email:       input.Email,
				PhoneNumber: input.PhoneNumber,
				Roles:       []string{domain.RoleUser},
			}, nil
		},
	}
	handler := NewMemberHandler(stub)

	body := strings.NewReader(`{"name":"Alice Example","email":"alice@example.com","phoneNumber":"9876543210","password":"Passw0rd"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "m1" || resp["phoneNumber"] != "9876543210" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMemberHandler_Create_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		registerFn: func(ctx context.Context, input ports.CreateMemberInput) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewMemberHandler(stub)

	// Name too short, phone not ten digits, password without a digit.
	body := strings.NewReader(`{"name":"Al","email":"alice@example.com","phoneNumber":"123","password":"abcdefgh"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestMemberHandler_Get_SelfAllowed(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		getFn: func(ctx context.Context, id string) (*domain.Member, error) {
			return &domain.Member{ID: id, Email: "u@example.com", Roles: []string{domain.RoleUser}}, nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/members/m1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	c.Set("member_id", "m1")
	c.Set("role", "user")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMemberHandler_Get_OtherForbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		getFn: func(ctx context.Context, id string) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/members/m2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m2")
	c.Set("member_id", "m1")
	c.Set("role", "user")

	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMemberHandler_Get_AdminAllowed(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		getFn: func(ctx context.Context, id string) (*domain.Member, error) {
			return &domain.Member{ID: id, Email: "other@example.com", Roles: []string{domain.RoleUser}}, nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/members/m2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m2")
	c.Set("member_id", "m1")
	c.Set("role", "admin")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMemberHandler_Update_Partial(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateMemberInput) (*domain.Member, error) {
			if input.Name == nil || *input.Name != "Alice Renamed" {
				t.Fatalf("expected name patch, got %+v", input)
			}
			if input.Email != nil || input.PhoneNumber != nil || input.Password != nil {
				t.Fatalf("unexpected extra patches: %+v", input)
			}
			return &domain.Member{ID: id, Name: *input.Name, Roles: []string{domain.RoleUser}}, nil
		},
	}
	handler := NewMemberHandler(stub)

	body := strings.NewReader(`{"name":"Alice Renamed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/members/m1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	c.Set("member_id", "m1")
	c.Set("role", "user")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMemberHandler_SetRoles_EmptyRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		setRolesFn: func(ctx context.Context, id string, roles []string) (*domain.Member, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/members/m1/roles", strings.NewReader(`[]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	err := handler.SetRoles(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestMemberHandler_SetRoles_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubMemberService{
		setRolesFn: func(ctx context.Context, id string, roles []string) (*domain.Member, error) {
			if len(roles) != 1 || roles[0] != domain.RoleAdmin {
				t.Fatalf("unexpected roles: %v", roles)
			}
			return &domain.Member{ID: id, Roles: roles}, nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/members/m1/roles", strings.NewReader(`["ADMIN"]`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")

	if err := handler.SetRoles(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMemberHandler_Delete_Self(t *testing.T) {
	e := newTestEcho()
	deleted := false
	stub := &stubMemberService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	handler := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/members/m1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	c.Set("member_id", "m1")
	c.Set("role", "user")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted {
		t.Fatalf("delete not invoked")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
