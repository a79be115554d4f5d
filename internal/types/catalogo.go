package types

import "time"

// Rubro is one business category of the municipal catalog.
type Rubro struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Codigo      string `gorm:"size:10;uniqueIndex;not null;column:codigo" json:"codigo"`
	Nombre      string `gorm:"size:200;not null;column:nombre" json:"nombre"`
	Descripcion string `gorm:"type:text;column:descripcion" json:"descripcion,omitempty"`

	NivelRiesgo          string `gorm:"size:20;not null;column:nivel_riesgo" json:"nivel_riesgo"`
	RequiereITSEPrevia   bool   `gorm:"default:false;column:requiere_itse_previa" json:"requiere_itse_previa"`
	RequiereDefensaCivil bool   `gorm:"default:false;column:requiere_defensa_civil" json:"requiere_defensa_civil"`
	Observaciones        string `gorm:"type:text;column:observaciones" json:"observaciones,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	IsActive  bool      `gorm:"default:true;column:is_active" json:"is_active"`
}

func (Rubro) TableName() string {
	return "rubros"
}

// Tarifa is the fee charged per risk tier, versioned by validity dates.
type Tarifa struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	NivelRiesgo  string     `gorm:"size:20;uniqueIndex;not null;column:nivel_riesgo" json:"nivel_riesgo"`
	Monto        float64    `gorm:"not null;column:monto" json:"monto"`
	Descripcion  string     `gorm:"size:255;column:descripcion" json:"descripcion,omitempty"`
	VigenteDesde time.Time  `gorm:"not null;column:vigente_desde" json:"vigente_desde"`
	VigenteHasta *time.Time `gorm:"column:vigente_hasta" json:"vigente_hasta,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	IsActive  bool      `gorm:"default:true;column:is_active" json:"is_active"`
}

func (Tarifa) TableName() string {
	return "tarifas"
}

// Zona is one land-use zone of the urban catalog.
type Zona struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Codigo      string `gorm:"size:10;uniqueIndex;not null;column:codigo" json:"codigo"`
	Nombre      string `gorm:"size:100;not null;column:nombre" json:"nombre"`
	Descripcion string `gorm:"type:text;column:descripcion" json:"descripcion,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	IsActive  bool      `gorm:"default:true;column:is_active" json:"is_active"`
}

func (Zona) TableName() string {
	return "zonas"
}
