package catalog

type CreateHotelRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	City        string `json:"city" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type RoomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" binding:"omitempty,gte=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}
