package models

import "time"

// Статусы и типы залов хранятся строками, как в БД (CHECK-констрейнты на стороне схемы).
const (
	HallStatusActive      = "active"
	HallStatusMaintenance = "maintenance"
	HallStatusClosed      = "closed"
)

type Hall struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	TotalSeats int       `json:"total_seats"`
	HallType   string    `json:"hall_type"`
	HallStatus string    `json:"hall_status"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateHallRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	TotalSeats int    `json:"total_seats" validate:"required,gte=1,lte=1000"`
	HallType   string `json:"hall_type" validate:"required,oneof=standard imax vip 3d"`
	HallStatus string `json:"hall_status" validate:"omitempty,oneof=active maintenance closed"`
}
