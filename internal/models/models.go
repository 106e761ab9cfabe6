package models

import (
	"time"

	"gorm.io/datatypes"
)

// Poster — одно мероприятие, извлечённое из афиши. После сохранения не изменяется.
type Poster struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"`
	Title            *string         // Название мероприятия
	Name             *string         // Организатор или спикер
	Location         *string         `gorm:"index"`
	Socials          *string         // Ссылки и аккаунты в соцсетях
	EventDate        *datatypes.Date `gorm:"index"`
	EventTime        *datatypes.Time // nil, если время не указано на афише
	Venue            *string         `gorm:"index"`
	HostedDepartment *string         `gorm:"index"`
	CreatedAt        time.Time       `gorm:"<-:create;autoCreateTime;not null"` // Выставляется один раз при вставке
}

func (Poster) TableName() string {
	return "posters"
}
