package types

import "time"

// Auditoria records who moved an application and how. One row per status
// transition or relevant staff action.
type Auditoria struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SolicitudID uint       `gorm:"not null;index;column:solicitud_id" json:"solicitud_id"`
	Solicitud   *Solicitud `gorm:"foreignKey:SolicitudID" json:"solicitud,omitempty"`

	UsuarioID *uint `gorm:"column:usuario_id" json:"usuario_id,omitempty"`
	Usuario   *User `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`

	Accion         string `gorm:"size:100;not null;column:accion" json:"accion"`
	EstadoAnterior string `gorm:"size:50;column:estado_anterior" json:"estado_anterior,omitempty"`
	EstadoNuevo    string `gorm:"size:50;column:estado_nuevo" json:"estado_nuevo,omitempty"`
	Detalle        string `gorm:"type:text;column:detalle" json:"detalle,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Auditoria) TableName() string {
	return "auditorias"
}
