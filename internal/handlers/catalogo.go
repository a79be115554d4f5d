package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/classify"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
	"github.com/Yamir213/sistema-licencias-ica/internal/zoning"
)

type CatalogoHandler struct {
	catalogoService services.CatalogoService
}

func NewCatalogoHandler(catalogoService services.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{catalogoService: catalogoService}
}

func (ch *CatalogoHandler) Rubros(c *gin.Context) {
	rubros, err := ch.catalogoService.ListarRubros(c.Request.Context(), true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"rubros": rubros})
}

// Clasificar pre-evaluates a category for the wizard's first screen without
// touching any session.
func (ch *CatalogoHandler) Clasificar(c *gin.Context) {
	rubro := c.Query("rubro")
	if rubro == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falta el parámetro rubro"})
		return
	}
	cl := classify.Clasificar(rubro)
	RespondOK(c, gin.H{
		"nivel_riesgo":         cl.Nivel,
		"requiere_itse_previa": cl.RequiereITSEPrevia,
		"monto":                cl.Monto,
		"anexos_requeridos":    classify.AnexosRequeridos(cl.Nivel),
	})
}

// EvaluarZonificacion is the advisory pre-check behind the wizard's third
// screen.
func (ch *CatalogoHandler) EvaluarZonificacion(c *gin.Context) {
	rubro := c.Query("rubro")
	direccion := c.Query("direccion")
	if rubro == "" || direccion == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "faltan los parámetros rubro y direccion"})
		return
	}
	ev := zoning.Evaluar(rubro, c.DefaultQuery("distrito", "Ica"), direccion)
	RespondOK(c, ev)
}

func (ch *CatalogoHandler) Tarifas(c *gin.Context) {
	tarifas, err := ch.catalogoService.ListarTarifas(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"tarifas": tarifas})
}

func (ch *CatalogoHandler) Zonas(c *gin.Context) {
	zonas, err := ch.catalogoService.ListarZonas(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"zonas": zonas})
}

func (ch *CatalogoHandler) CrearRubro(c *gin.Context) {
	var req struct {
		Codigo      string `json:"codigo"`
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion"`
		NivelRiesgo string `json:"nivel_riesgo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	r, err := ch.catalogoService.CrearRubro(c.Request.Context(), &types.Rubro{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		NivelRiesgo: req.NivelRiesgo,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, r)
}

func (ch *CatalogoHandler) DesactivarRubro(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ch.catalogoService.DesactivarRubro(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ch *CatalogoHandler) CrearZona(c *gin.Context) {
	var req struct {
		Codigo      string `json:"codigo"`
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	z, err := ch.catalogoService.CrearZona(c.Request.Context(), &types.Zona{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, z)
}

func (ch *CatalogoHandler) ActualizarTarifa(c *gin.Context) {
	var req struct {
		NivelRiesgo string  `json:"nivel_riesgo"`
		Monto       float64 `json:"monto"`
		Descripcion string  `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	t, err := ch.catalogoService.ActualizarTarifa(c.Request.Context(), req.NivelRiesgo, req.Monto, req.Descripcion)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, t)
}
