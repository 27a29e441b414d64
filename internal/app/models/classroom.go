package models

// ClassRoom is a room identified by its building and room number
type ClassRoom struct {
	ID             int64    `json:"id" db:"id"`
	BuildingNumber int      `json:"buildingNumber" db:"building_number"`
	RoomNumber     int      `json:"roomNumber" db:"room_number"`
	Faculty        *Faculty `json:"faculty,omitempty"` // Owning faculty
}
