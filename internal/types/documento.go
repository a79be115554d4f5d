package types

import "time"

// Documento is one uploaded annex attached to an application.
type Documento struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SolicitudID uint       `gorm:"not null;index;column:solicitud_id" json:"solicitud_id"`
	Solicitud   *Solicitud `gorm:"foreignKey:SolicitudID" json:"solicitud,omitempty"`

	Tipo           string `gorm:"size:50;not null;column:tipo" json:"tipo"`
	NombreOriginal string `gorm:"size:255;column:nombre_original" json:"nombre_original"`
	RutaArchivo    string `gorm:"size:500;column:ruta_archivo" json:"ruta_archivo"`
	TamanoBytes    int64  `gorm:"column:tamano_bytes" json:"tamano_bytes,omitempty"`
	MimeType       string `gorm:"size:100;column:mime_type" json:"mime_type,omitempty"`

	EstaValidado  bool   `gorm:"default:false;column:esta_validado" json:"esta_validado"`
	Observaciones string `gorm:"type:text;column:observaciones" json:"observaciones,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Documento) TableName() string {
	return "documentos"
}
