package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
)

type InspeccionHandler struct {
	inspeccionService services.InspeccionService
}

func NewInspeccionHandler(inspeccionService services.InspeccionService) *InspeccionHandler {
	return &InspeccionHandler{inspeccionService: inspeccionService}
}

func (ih *InspeccionHandler) Programar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		InspectorID *uint  `json:"inspector_id"`
		Fecha       string `json:"fecha"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	fecha, err := time.Parse(time.RFC3339, req.Fecha)
	if err != nil {
		RespondDomainError(c, domain.ValidationError("fecha inválida, se espera RFC3339"))
		return
	}
	insp, err := ih.inspeccionService.Programar(c.Request.Context(), id, req.InspectorID, fecha, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, insp)
}

func (ih *InspeccionHandler) Iniciar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	insp, err := ih.inspeccionService.Iniciar(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, insp)
}

func (ih *InspeccionHandler) Registrar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Extintores       bool   `json:"extintores"`
		LucesEmergencia  bool   `json:"luces_emergencia"`
		Senalizacion     bool   `json:"senalizacion"`
		SistemaElectrico bool   `json:"sistema_electrico"`
		ViaEvacuacion    bool   `json:"via_evacuacion"`
		Observaciones    string `json:"observaciones"`
		Recomendaciones  string `json:"recomendaciones"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	checklist := domain.Checklist{
		Extintores:       req.Extintores,
		LucesEmergencia:  req.LucesEmergencia,
		Senalizacion:     req.Senalizacion,
		SistemaElectrico: req.SistemaElectrico,
		ViaEvacuacion:    req.ViaEvacuacion,
	}
	insp, err := ih.inspeccionService.Registrar(c.Request.Context(), id, middleware.UsuarioID(c), checklist, req.Observaciones, req.Recomendaciones)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, insp)
}

func (ih *InspeccionHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	insp, err := ih.inspeccionService.Detalle(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, insp)
}

func (ih *InspeccionHandler) PorSolicitud(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inspecciones, err := ih.inspeccionService.ListarPorSolicitud(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspecciones": inspecciones})
}

// MiAgenda lists the authenticated inspector's visits, optionally filtered
// by inspection status.
func (ih *InspeccionHandler) MiAgenda(c *gin.Context) {
	inspecciones, err := ih.inspeccionService.AgendaDelInspector(c.Request.Context(), middleware.UsuarioID(c), c.Query("estado"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"inspecciones": inspecciones})
}
