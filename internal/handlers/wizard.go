package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/wizard"
)

// CookieSesion carries the wizard session token between steps.
const CookieSesion = "solicitud_session"

// RutaPaso1 is where a request with a missing or foreign session lands.
const RutaPaso1 = "/api/tramite/paso1"

type WizardHandler struct {
	wizardService services.WizardService
	maxAgeCookie  int
}

func NewWizardHandler(wizardService services.WizardService, maxAgeCookie int) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, maxAgeCookie: maxAgeCookie}
}

func (wh *WizardHandler) stampCookie(c *gin.Context, sesionID string) {
	c.SetCookie(CookieSesion, sesionID, wh.maxAgeCookie, "/", "", false, true)
}

// sesion resolves the cookie and redirects to step 1 when the session is
// missing, expired or owned by someone else. The redirect carries a fresh
// start instead of an error: the citizen just begins again.
func (wh *WizardHandler) sesion(c *gin.Context) (*wizard.Sesion, bool) {
	sesionID, _ := c.Cookie(CookieSesion)
	s, err := wh.wizardService.Obtener(c.Request.Context(), sesionID, middleware.UsuarioID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, RutaPaso1)
			c.Abort()
			return nil, false
		}
		RespondDomainError(c, err)
		return nil, false
	}
	return s, true
}

// Paso1 GET: opens (or reuses) a session and returns its accumulated state.
func (wh *WizardHandler) Paso1(c *gin.Context) {
	usuarioID := middleware.UsuarioID(c)

	if sesionID, err := c.Cookie(CookieSesion); err == nil {
		if s, err := wh.wizardService.Obtener(c.Request.Context(), sesionID, usuarioID); err == nil {
			wh.stampCookie(c, s.ID)
			RespondOK(c, s)
			return
		}
	}

	s, err := wh.wizardService.Iniciar(c.Request.Context(), usuarioID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, s)
}

// Paso1Post classifies the chosen category.
func (wh *WizardHandler) Paso1Post(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	var req struct {
		Rubro string `json:"rubro"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, anexos, err := wh.wizardService.Paso1Clasificar(c.Request.Context(), s.ID, middleware.UsuarioID(c), req.Rubro)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, gin.H{"sesion": s, "anexos_requeridos": anexos, "siguiente": "/api/tramite/paso2"})
}

func (wh *WizardHandler) Paso2Post(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	var req wizard.DatosNegocio
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, err := wh.wizardService.Paso2Negocio(c.Request.Context(), s.ID, middleware.UsuarioID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, gin.H{"sesion": s, "siguiente": "/api/tramite/paso3"})
}

func (wh *WizardHandler) Paso3Post(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	var req wizard.Aceptacion
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, ev, err := wh.wizardService.Paso3Zonificacion(c.Request.Context(), s.ID, middleware.UsuarioID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, gin.H{"sesion": s, "zonificacion": ev, "siguiente": "/api/tramite/paso4"})
}

// Paso4Post submits the application. Re-posting the same session returns
// the expediente created the first time.
func (wh *WizardHandler) Paso4Post(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	s, solicitud, err := wh.wizardService.Paso4Presentar(c.Request.Context(), s.ID, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, gin.H{"sesion": s, "solicitud": solicitud, "siguiente": "/api/tramite/paso5"})
}

func (wh *WizardHandler) Paso5Post(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	var req struct {
		MetodoPago string `json:"metodo_pago"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, pago, err := wh.wizardService.Paso5Pagar(c.Request.Context(), s.ID, middleware.UsuarioID(c), req.MetodoPago)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	wh.stampCookie(c, s.ID)
	RespondOK(c, gin.H{"sesion": s, "pago": pago, "siguiente": "/api/tramite/paso6"})
}

func (wh *WizardHandler) Paso6(c *gin.Context) {
	s, ok := wh.sesion(c)
	if !ok {
		return
	}
	s, solicitud, err := wh.wizardService.Paso6Resumen(c.Request.Context(), s.ID, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"sesion": s, "solicitud": solicitud})
}

func (wh *WizardHandler) LimpiarSesion(c *gin.Context) {
	sesionID, _ := c.Cookie(CookieSesion)
	if err := wh.wizardService.Limpiar(c.Request.Context(), sesionID, middleware.UsuarioID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.SetCookie(CookieSesion, "", -1, "/", "", false, true)
	RespondOK(c, gin.H{"success": true})
}
