package domain

import "time"

type Hotel struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OwnerID     int64     `json:"owner_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"size:255;not null" validate:"required"`
	City        string    `json:"city" gorm:"size:128;index"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}

func (Hotel) TableName() string { return "hotels" }

// Room price is the original, undiscounted nightly rate.
type Room struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	HotelID     int64     `json:"hotel_id" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"size:255;not null" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Capacity    int       `json:"capacity" gorm:"default:1" validate:"gte=1"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null" validate:"gt=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

func (Room) TableName() string { return "rooms" }
