package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/testutil"
	"github.com/sqldojo-labs/sqldojo/internal/ui/features"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
)

func setupTestHandlers(t *testing.T, passcode string) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	h := NewHandlers(fixture.SessionStore, passcode, fixture.Restorer, fixture.Notifier, testutil.NewTestLogger(t))
	return h, fixture
}

func TestLoginSSE_CorrectPasscode(t *testing.T) {
	h, _ := setupTestHandlers(t, "open-sesame")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"passcode":"open-sesame"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.LoginSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "Unlocked.")
	assert.Contains(t, rec.Body.String(), "Reset Database")
	assert.NotEmpty(t, rec.Result().Cookies(), "unlock should set a session cookie")
}

func TestLoginSSE_WrongPasscode(t *testing.T) {
	h, _ := setupTestHandlers(t, "open-sesame")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"passcode":"guess"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.LoginSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "Incorrect passcode.")
	assert.NotContains(t, rec.Body.String(), "Reset Database")
}

func TestResetSSE_GatedWithoutSession(t *testing.T) {
	h, _ := setupTestHandlers(t, "open-sesame")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
	rec := httptest.NewRecorder()

	h.ResetSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "Unlock with the passcode first.")
	assert.NotContains(t, rec.Body.String(), "window.location.reload()")
}

func TestResetSSE_UngatedRestoresData(t *testing.T) {
	h, fixture := setupTestHandlers(t, "")
	ctx := context.Background()

	require.NoError(t, fixture.Gateway.Exec(ctx, "DELETE FROM customers WHERE customerid = 501"))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
	rec := httptest.NewRecorder()

	h.ResetSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "window.location.reload()")

	res, err := fixture.Gateway.Execute(ctx, "SELECT customername FROM customers WHERE customerid = 501")
	require.NoError(t, err)
	require.Equal(t, 1, res.RowCount())
	assert.Equal(t, "Helen Keller", res.Rows[0][0])
}

func TestResetSSE_UnlockedSession(t *testing.T) {
	h, fixture := setupTestHandlers(t, "open-sesame")

	// Unlock first and carry the cookie to the reset request.
	loginReq := httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"passcode":"open-sesame"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	h.LoginSSE(loginRec, loginReq)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	updates := fixture.Notifier.Subscribe()
	defer fixture.Notifier.Unsubscribe(updates)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()

	h.ResetSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "window.location.reload()")

	select {
	case ev := <-updates:
		assert.Equal(t, notifier.DatabaseRestored, ev.Reason)
	default:
		t.Fatal("reset should broadcast to connected browsers")
	}
}
