package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/database"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/outbox"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	action outbox.Action
	id     string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (f *fakeRecorder) Record(_ context.Context, action outbox.Action, id string, _ any) {
	f.events = append(f.events, recordedEvent{action: action, id: id})
}

func newRepository(t *testing.T) Repository {
	return NewRepository(database.OpenTestDB(t, &User{}))
}

func newRouter(t *testing.T) (*gin.Engine, *fakeRecorder) {
	gin.SetMode(gin.TestMode)
	rest.UseJSONFieldNames()

	recorder := &fakeRecorder{}
	handler := NewHandler(NewService(newRepository(t), recorder))

	router := gin.New()
	for _, r := range handler.Routes() {
		r.Register(router.Group("/" + r.Group))
	}
	router.NoRoute(rest.NotFoundHandler)
	return router, recorder
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestBuildUpdateStatementTouchesOnlyPresentFields(t *testing.T) {
	stmt, err := BuildUpdateStatement(1, UserPatch{Age: utilities.Some(31)})
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET age = $1 WHERE id = $2 RETURNING id, name, email, age", stmt.SQL)
	assert.Equal(t, []any{31, 1}, stmt.Args)
}

func TestBuildUpdateStatementNoFields(t *testing.T) {
	_, err := BuildUpdateStatement(1, UserPatch{})

	require.ErrorIs(t, err, reasoncodes.ErrNoFields)
	assert.Contains(t, err.Error(), "At least one field (name, email, or age)")
}

func TestRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newRepository(t)

	created, err := repo.Create(ctx, User{Name: "Ada", Email: "ada@x.com", Age: 30})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := repo.Update(ctx, created.ID, UserPatch{Age: utilities.Some(31)})
	require.NoError(t, err)
	assert.Equal(t, User{ID: created.ID, Name: "Ada", Email: "ada@x.com", Age: 31}, updated)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []User{updated}, all)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), reasoncodes.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, reasoncodes.ErrRecordNotFound)
}

func TestRepositoryUpdateMissingUser(t *testing.T) {
	_, err := newRepository(t).Update(context.Background(), 404, UserPatch{Name: utilities.Some("x")})

	assert.ErrorIs(t, err, reasoncodes.ErrRecordNotFound)
	assert.EqualError(t, err, "NotFound: User with ID 404 not found")
}

func TestRepositoryListEmpty(t *testing.T) {
	all, err := newRepository(t).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestValidatePatch(t *testing.T) {
	tests := []struct {
		name  string
		patch UserPatch
		want  error
	}{
		{"single field", UserPatch{Age: utilities.Some(0)}, nil},
		{"all fields", UserPatch{Name: utilities.Some("Ada"), Email: utilities.Some("ada@x.com"), Age: utilities.Some(1)}, nil},
		{"empty", UserPatch{}, reasoncodes.ErrNoFields},
		{"blank name", UserPatch{Name: utilities.Some("  ")}, reasoncodes.ErrValidationFailed},
		{"bad email", UserPatch{Email: utilities.Some("nope")}, reasoncodes.ErrValidationFailed},
		{"negative age", UserPatch{Age: utilities.Some(-1)}, reasoncodes.ErrValidationFailed},
		{"null name", UserPatch{Name: utilities.Optional[string]{Set: true, Null: true}}, reasoncodes.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.patch)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHandlerCreateAndGet(t *testing.T) {
	router, recorder := newRouter(t)

	w := do(router, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","age":30}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[User](t, w)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Ada", created.Name)

	w = do(router, http.MethodGet, "/users/"+created.Key(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[User](t, w))

	require.Len(t, recorder.events, 1)
	assert.Equal(t, recordedEvent{action: outbox.ActionCreated, id: created.Key()}, recorder.events[0])
}

func TestHandlerListEmptyTable(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"No user is found. The table is empty!"}`, w.Body.String())
}

func TestHandlerCreateValidation(t *testing.T) {
	router, recorder := newRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"email":"ada@x.com","age":30}`, "name"},
		{"bad email", `{"name":"Ada","email":"ada","age":30}`, "email"},
		{"missing age", `{"name":"Ada","email":"ada@x.com"}`, "age"},
		{"negative age", `{"name":"Ada","email":"ada@x.com","age":-1}`, "age"},
		{"blank name", `{"name":"   ","email":"ada@x.com","age":1}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/users", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := decode[struct {
				Error   string           `json:"error"`
				Details []rest.FieldError `json:"details"`
			}](t, w)
			assert.Equal(t, "Invalid request body", body.Error)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.field, body.Details[0].Field)
		})
	}
	assert.Empty(t, recorder.events)
}

func TestHandlerUpdate(t *testing.T) {
	router, recorder := newRouter(t)
	w := do(router, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","age":30}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[User](t, w)

	w = do(router, http.MethodPut, "/users/"+created.Key(), `{"age":31}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, User{ID: created.ID, Name: "Ada", Email: "ada@x.com", Age: 31}, decode[User](t, w))

	w = do(router, http.MethodPut, "/users/"+created.Key(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"At least one field (name, email, or age) must be provided for update."}`, w.Body.String())

	w = do(router, http.MethodPut, "/users/"+created.Key(), `{"name":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPut, "/users/999", `{"age":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User with ID 999 not found"}`, w.Body.String())

	require.Len(t, recorder.events, 2)
	assert.Equal(t, outbox.ActionUpdated, recorder.events[1].action)
}

func TestHandlerDeleteTwice(t *testing.T) {
	router, recorder := newRouter(t)
	w := do(router, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","age":30}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[User](t, w)

	w = do(router, http.MethodDelete, "/users/"+created.Key(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User with ID `+created.Key()+` has been successfully deleted"}`, w.Body.String())

	w = do(router, http.MethodDelete, "/users/"+created.Key(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Len(t, recorder.events, 2)
	assert.Equal(t, outbox.ActionDeleted, recorder.events[1].action)
}

func TestHandlerRejectsInvalidID(t *testing.T) {
	router, _ := newRouter(t)

	for _, path := range []string{"/users/abc", "/users/0", "/users/-3"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			w := do(router, method, path, `{"age":1}`)
			assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", method, path)
			assert.Contains(t, w.Body.String(), "Invalid request parameters")
		}
	}
}

type failingRepo struct{ Repository }

func (failingRepo) List(context.Context) ([]User, error) {
	return nil, reasoncodes.Store("An error occurred while fetching the users.", assert.AnError)
}

func TestHandlerStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(failingRepo{}, nil))
	router := gin.New()
	router.GET("/users", handler.GetUsers)

	w := do(router, http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An error occurred while fetching the users.","details":"`+assert.AnError.Error()+`"}`, w.Body.String())
}
