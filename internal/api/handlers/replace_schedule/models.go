package replace_schedule

import "github.com/m04kA/SMC-DetailingBooking/internal/service/shops/models"

// ReplaceScheduleRequest HTTP request model
// Пустой список окон закрывает автомойку на всю неделю
type ReplaceScheduleRequest struct {
	Windows []models.WindowInput `json:"windows"`
}

// ScheduleResponse новое расписание
type ScheduleResponse struct {
	Windows []models.WindowResponse `json:"windows"`
}
