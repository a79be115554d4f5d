package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/repos"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
)

// SolicitudHandler serves the citizen-facing application routes plus the
// public license verification.
type SolicitudHandler struct {
	solicitudService services.SolicitudService
	notificaciones   services.NotificacionService
}

func NewSolicitudHandler(solicitudService services.SolicitudService, notificaciones services.NotificacionService) *SolicitudHandler {
	return &SolicitudHandler{solicitudService: solicitudService, notificaciones: notificaciones}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identificador inválido"})
		return 0, false
	}
	return uint(id), true
}

func (sh *SolicitudHandler) MisSolicitudes(c *gin.Context) {
	solicitudes, err := sh.solicitudService.ListarPorUsuario(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"solicitudes": solicitudes})
}

func (sh *SolicitudHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := sh.solicitudService.DetalleDelUsuario(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (sh *SolicitudHandler) Historial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := sh.solicitudService.DetalleDelUsuario(c.Request.Context(), id, middleware.UsuarioID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	historial, err := sh.solicitudService.Historial(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"historial": historial})
}

func (sh *SolicitudHandler) Cancelar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := sh.solicitudService.Cancelar(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (sh *SolicitudHandler) MisNotificaciones(c *gin.Context) {
	notifs, err := sh.notificaciones.ListarPorUsuario(c.Request.Context(), middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"notificaciones": notifs})
}

// VerificarLicencia is public: anyone with the number and verifier printed
// on the document can confirm it.
func (sh *SolicitudHandler) VerificarLicencia(c *gin.Context) {
	numero := c.Query("numero")
	codigo := c.Query("codigo")
	s, err := sh.solicitudService.VerificarLicencia(c.Request.Context(), numero, codigo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"valida":            true,
		"numero_licencia":   s.NumeroLicencia,
		"numero_expediente": s.NumeroExpediente,
		"nombre_negocio":    s.NombreNegocio,
		"direccion":         s.DireccionNegocio,
		"estado":            s.Estado,
		"fecha_emision":     s.FechaEmision,
	})
}

// MunicipalHandler serves the staff back office.
type MunicipalHandler struct {
	solicitudService services.SolicitudService
	reporteService   services.ReporteService
}

func NewMunicipalHandler(solicitudService services.SolicitudService, reporteService services.ReporteService) *MunicipalHandler {
	return &MunicipalHandler{solicitudService: solicitudService, reporteService: reporteService}
}

func (mh *MunicipalHandler) Dashboard(c *gin.Context) {
	d, err := mh.reporteService.Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, d)
}

func (mh *MunicipalHandler) SerieMensual(c *gin.Context) {
	meses, _ := strconv.Atoi(c.DefaultQuery("meses", "6"))
	serie, err := mh.reporteService.SerieMensual(c.Request.Context(), meses)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"serie": serie})
}

func (mh *MunicipalHandler) Listar(c *gin.Context) {
	pagina, _ := strconv.Atoi(c.DefaultQuery("pagina", "1"))
	filtro := repos.FiltroSolicitudes{
		Estado:   c.Query("estado"),
		Riesgo:   c.Query("riesgo"),
		Distrito: c.Query("distrito"),
		Buscar:   c.Query("buscar"),
		Pagina:   pagina,
	}
	solicitudes, total, err := mh.solicitudService.Listar(c.Request.Context(), filtro)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"solicitudes": solicitudes,
		"total":       total,
		"pagina":      filtro.Pagina,
		"por_pagina":  repos.TamanoPagina,
	})
}

func (mh *MunicipalHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := mh.solicitudService.Detalle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (mh *MunicipalHandler) Historial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	historial, err := mh.solicitudService.Historial(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"historial": historial})
}

func (mh *MunicipalHandler) IniciarRevision(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := mh.solicitudService.IniciarRevision(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (mh *MunicipalHandler) Aprobar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Observaciones string `json:"observaciones"`
	}
	_ = c.ShouldBindJSON(&req)
	s, err := mh.solicitudService.Aprobar(c.Request.Context(), id, middleware.UsuarioID(c), req.Observaciones)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (mh *MunicipalHandler) Rechazar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Motivo string `json:"motivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s, err := mh.solicitudService.Rechazar(c.Request.Context(), id, middleware.UsuarioID(c), req.Motivo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (mh *MunicipalHandler) EmitirLicencia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := mh.solicitudService.EmitirLicencia(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}

func (mh *MunicipalHandler) Finalizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	s, err := mh.solicitudService.Finalizar(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, s)
}
