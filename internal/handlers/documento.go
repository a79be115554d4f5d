package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yamir213/sistema-licencias-ica/internal/middleware"
	"github.com/Yamir213/sistema-licencias-ica/internal/services"
	"github.com/Yamir213/sistema-licencias-ica/internal/types"
)

type DocumentoHandler struct {
	documentoService services.DocumentoService
}

func NewDocumentoHandler(documentoService services.DocumentoService) *DocumentoHandler {
	return &DocumentoHandler{documentoService: documentoService}
}

func (dh *DocumentoHandler) Subir(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Tipo           string `json:"tipo"`
		NombreOriginal string `json:"nombre_original"`
		RutaArchivo    string `json:"ruta_archivo"`
		TamanoBytes    int64  `json:"tamano_bytes"`
		MimeType       string `json:"mime_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	d, err := dh.documentoService.Subir(c.Request.Context(), id, middleware.UsuarioID(c), &types.Documento{
		Tipo:           req.Tipo,
		NombreOriginal: req.NombreOriginal,
		RutaArchivo:    req.RutaArchivo,
		TamanoBytes:    req.TamanoBytes,
		MimeType:       req.MimeType,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, d)
}

func (dh *DocumentoHandler) Listar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docs, err := dh.documentoService.Listar(c.Request.Context(), id, middleware.UsuarioID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"documentos": docs})
}

func (dh *DocumentoHandler) ListarParaRevision(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docs, err := dh.documentoService.ListarParaRevision(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"documentos": docs})
}

func (dh *DocumentoHandler) Validar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Validado      bool   `json:"validado"`
		Observaciones string `json:"observaciones"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	d, err := dh.documentoService.Validar(c.Request.Context(), id, middleware.UsuarioID(c), req.Validado, req.Observaciones)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, d)
}
