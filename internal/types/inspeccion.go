package types

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
)

// Inspeccion is one programmed or executed ITSE visit. An application may
// accumulate several (re-inspections); the latest approved one gates license
// issuance.
type Inspeccion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SolicitudID uint       `gorm:"not null;index;column:solicitud_id" json:"solicitud_id"`
	Solicitud   *Solicitud `gorm:"foreignKey:SolicitudID" json:"solicitud,omitempty"`

	InspectorID *uint `gorm:"column:inspector_id" json:"inspector_id,omitempty"`
	Inspector   *User `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`

	FechaProgramada time.Time  `gorm:"not null;column:fecha_programada" json:"fecha_programada"`
	FechaRealizada  *time.Time `gorm:"column:fecha_realizada" json:"fecha_realizada,omitempty"`

	Estado    domain.EstadoInspeccion    `gorm:"size:50;default:programada;column:estado" json:"estado"`
	Resultado domain.ResultadoInspeccion `gorm:"size:50;column:resultado" json:"resultado,omitempty"`

	Observaciones   string `gorm:"type:text;column:observaciones" json:"observaciones,omitempty"`
	Recomendaciones string `gorm:"type:text;column:recomendaciones" json:"recomendaciones,omitempty"`

	// Checklist de seguridad.
	Extintores       bool `gorm:"default:false;column:extintores" json:"extintores"`
	LucesEmergencia  bool `gorm:"default:false;column:luces_emergencia" json:"luces_emergencia"`
	Senalizacion     bool `gorm:"default:false;column:senalizacion" json:"senalizacion"`
	SistemaElectrico bool `gorm:"default:false;column:sistema_electrico" json:"sistema_electrico"`
	ViaEvacuacion    bool `gorm:"default:false;column:via_evacuacion" json:"via_evacuacion"`

	FotosAntes   datatypes.JSON `gorm:"column:fotos_antes" json:"fotos_antes,omitempty"`
	FotosDespues datatypes.JSON `gorm:"column:fotos_despues" json:"fotos_despues,omitempty"`
	InformePDF   string         `gorm:"size:500;column:informe_pdf" json:"informe_pdf,omitempty"`

	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
	FechaVencimiento *time.Time `gorm:"column:fecha_vencimiento" json:"fecha_vencimiento,omitempty"`
}

func (Inspeccion) TableName() string {
	return "inspecciones"
}

// ChecklistDomain projects the stored booleans into the domain checklist.
func (i *Inspeccion) ChecklistDomain() domain.Checklist {
	return domain.Checklist{
		Extintores:       i.Extintores,
		LucesEmergencia:  i.LucesEmergencia,
		Senalizacion:     i.Senalizacion,
		SistemaElectrico: i.SistemaElectrico,
		ViaEvacuacion:    i.ViaEvacuacion,
	}
}
