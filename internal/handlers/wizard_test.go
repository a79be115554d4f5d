package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
)

// The redirect contract lives entirely in the session store, so these tests
// wire the handler with a memory store and no database. The stub middleware
// takes the user id from a header so one router can serve several identities.
func routerDePrueba(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	store := wizard.NewMemoryStore(time.Minute, log)
	ws := services.NewWizardService(nil, log, store, nil, nil, nil, nil, nil)
	wh := NewWizardHandler(ws, 60)

	r := gin.New()
	grupo := r.Group("/api/tramite", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.GetHeader("X-Usuario"))
		c.Set(middleware.CtxUsuarioID, uint(id))
	})
	grupo.GET("/paso1", wh.Paso1)
	grupo.POST("/paso1", wh.Paso1Post)
	grupo.POST("/paso2", wh.Paso2Post)
	return r
}

func cookieDeSesion(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieSesion {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestPaso1AbreSesionYEstampaCookie(t *testing.T) {
	r := routerDePrueba(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tramite/paso1", nil)
	req.Header.Set("X-Usuario", "7")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	cookie := cookieDeSesion(t, w.Result())
	if cookie.Value == "" {
		t.Fatalf("empty session cookie")
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	// A second GET with the cookie reuses the same session.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/tramite/paso1", nil)
	req2.Header.Set("X-Usuario", "7")
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w2.Code)
	}
	var s wizard.Sesion
	if err := json.Unmarshal(w2.Body.Bytes(), &s); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if s.ID != cookie.Value {
		t.Fatalf("session id = %q, want %q", s.ID, cookie.Value)
	}
}

func TestPasoSinSesionRedirigeAPaso1(t *testing.T) {
	r := routerDePrueba(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tramite/paso2", nil)
	req.Header.Set("X-Usuario", "7")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != RutaPaso1 {
		t.Fatalf("location = %q, want %q", loc, RutaPaso1)
	}
}

func TestSesionAjenaRedirigeAPaso1(t *testing.T) {
	r := routerDePrueba(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tramite/paso1", nil)
	req.Header.Set("X-Usuario", "7")
	r.ServeHTTP(w, req)
	cookie := cookieDeSesion(t, w.Result())

	// Another citizen presents the first one's cookie.
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/tramite/paso2", nil)
	req2.Header.Set("X-Usuario", "8")
	req2.AddCookie(cookie)
	r.ServeHTTP(w2, req2)

	if w2.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w2.Code)
	}
	if loc := w2.Header().Get("Location"); loc != RutaPaso1 {
		t.Fatalf("location = %q, want %q", loc, RutaPaso1)
	}
}
