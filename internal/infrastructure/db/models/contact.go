package models

import "time"

type Contact struct {
	ID        string  `gorm:"size:100;primaryKey"`
	Nombre    *string `gorm:"size:255;index"`
	Direccion *string `gorm:"size:500"`
	Telefono  *string `gorm:"size:100"`
	Correo    *string `gorm:"size:255;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Contact) TableName() string {
	return "contacts"
}
