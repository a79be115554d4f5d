package types

import (
	"time"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
)

// Solicitud is one license application from creation to closure. Its estado
// column only moves through domain.EstadoSolicitud transitions.
type Solicitud struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	NumeroExpediente string `gorm:"size:50;uniqueIndex;column:numero_expediente" json:"numero_expediente"`

	UsuarioID uint  `gorm:"not null;index;column:usuario_id" json:"usuario_id"`
	Usuario   *User `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`

	RubroID uint   `gorm:"not null;column:rubro_id" json:"rubro_id"`
	Rubro   *Rubro `gorm:"foreignKey:RubroID" json:"rubro,omitempty"`

	ZonaID *uint `gorm:"column:zona_id" json:"zona_id,omitempty"`
	Zona   *Zona `gorm:"foreignKey:ZonaID" json:"zona,omitempty"`

	Pagos        []Pago       `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE" json:"pagos,omitempty"`
	Documentos   []Documento  `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE" json:"documentos,omitempty"`
	Auditorias   []Auditoria  `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE" json:"auditorias,omitempty"`
	Inspecciones []Inspeccion `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE" json:"inspecciones,omitempty"`

	// Información del negocio.
	NombreNegocio    string   `gorm:"size:200;not null;column:nombre_negocio" json:"nombre_negocio"`
	DireccionNegocio string   `gorm:"size:255;not null;column:direccion_negocio" json:"direccion_negocio"`
	Referencia       string   `gorm:"size:255;column:referencia" json:"referencia,omitempty"`
	Distrito         string   `gorm:"size:100;not null;default:Ica;column:distrito" json:"distrito"`
	Latitud          *float64 `gorm:"column:latitud" json:"latitud,omitempty"`
	Longitud         *float64 `gorm:"column:longitud" json:"longitud,omitempty"`
	AreaLocal        string   `gorm:"size:50;column:area_local" json:"area_local,omitempty"`
	TelefonoContacto string   `gorm:"size:20;column:telefono_contacto" json:"telefono_contacto,omitempty"`

	// Clasificación y estado.
	NivelRiesgo string                 `gorm:"size:20;not null;column:nivel_riesgo" json:"nivel_riesgo"`
	Estado      domain.EstadoSolicitud `gorm:"size:50;default:borrador;column:estado" json:"estado"`

	// ITSE.
	RequiereITSEPrevia bool       `gorm:"default:false;column:requiere_itse_previa" json:"requiere_itse_previa"`
	ITSEAprobado       bool       `gorm:"default:false;column:itse_aprobado" json:"itse_aprobado"`
	FechaITSE          *time.Time `gorm:"column:fecha_itse" json:"fecha_itse,omitempty"`
	NumeroITSE         string     `gorm:"size:50;column:numero_itse" json:"numero_itse,omitempty"`
	VencimientoITSE    *time.Time `gorm:"column:vencimiento_itse" json:"vencimiento_itse,omitempty"`

	// Zonificación.
	CompatibleZonificacion    bool   `gorm:"default:true;column:compatible_zonificacion" json:"compatible_zonificacion"`
	ObservacionesZonificacion string `gorm:"type:text;column:observaciones_zonificacion" json:"observaciones_zonificacion,omitempty"`

	// Pago (denormalizado para lectura rápida; el detalle vive en pagos).
	MontoPago       *float64   `gorm:"column:monto_pago" json:"monto_pago,omitempty"`
	FechaPago       *time.Time `gorm:"column:fecha_pago" json:"fecha_pago,omitempty"`
	ComprobantePago string     `gorm:"size:255;column:comprobante_pago" json:"comprobante_pago,omitempty"`
	MetodoPago      string     `gorm:"size:50;column:metodo_pago" json:"metodo_pago,omitempty"`

	// Licencia. NumeroLicencia se llena únicamente al emitir.
	NumeroLicencia    string     `gorm:"size:50;uniqueIndex;default:null;column:numero_licencia" json:"numero_licencia,omitempty"`
	FechaEmision      *time.Time `gorm:"column:fecha_emision" json:"fecha_emision,omitempty"`
	FechaVencimiento  *time.Time `gorm:"column:fecha_vencimiento" json:"fecha_vencimiento,omitempty"`
	CodigoVerificador string     `gorm:"size:20;column:codigo_verificador" json:"codigo_verificador,omitempty"`
	LicenciaPDFURL    string     `gorm:"size:500;column:licencia_pdf_url" json:"licencia_pdf_url,omitempty"`

	// Fiscalización.
	FechaUltimaInspeccion *time.Time `gorm:"column:fecha_ultima_inspeccion" json:"fecha_ultima_inspeccion,omitempty"`
	ProximaInspeccion     *time.Time `gorm:"column:proxima_inspeccion" json:"proxima_inspeccion,omitempty"`

	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
	FechaPresentacion *time.Time `gorm:"column:fecha_presentacion" json:"fecha_presentacion,omitempty"`
}

func (Solicitud) TableName() string {
	return "solicitudes"
}
