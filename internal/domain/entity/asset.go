package entity

import "time"

// EquipmentType clasificación del activo.
type EquipmentType string

// Tipos de equipo.
const (
	EquipmentVehicle    EquipmentType = "VEHICLE"
	EquipmentWeapon     EquipmentType = "WEAPON"
	EquipmentAmmunition EquipmentType = "AMMUNITION"
	EquipmentEquipment  EquipmentType = "EQUIPMENT"
	EquipmentOther      EquipmentType = "OTHER"
)

// Valid informa si el tipo es conocido.
func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentVehicle, EquipmentWeapon, EquipmentAmmunition, EquipmentEquipment, EquipmentOther:
		return true
	}
	return false
}

// Condition estado físico del activo.
type Condition string

// Condiciones posibles.
const (
	ConditionGood           Condition = "GOOD"
	ConditionFair           Condition = "FAIR"
	ConditionPoor           Condition = "POOR"
	ConditionNeedsRepair    Condition = "NEEDS_REPAIR"
	ConditionDecommissioned Condition = "DECOMMISSIONED"
)

// Valid informa si la condición es conocida.
func (c Condition) Valid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor, ConditionNeedsRepair, ConditionDecommissioned:
		return true
	}
	return false
}

// Asset fila de inventario: un tipo de activo en una base con su existencia.
// Quantity nunca es negativa y solo cambia a través del libro de inventario.
type Asset struct {
	ID            string
	Name          string
	EquipmentType EquipmentType
	Quantity      int
	Condition     Condition
	BaseID        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
